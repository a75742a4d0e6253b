// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Groupcraft Authors

package composer

import (
	"bytes"
	"testing"
)

func TestBoxIdentifier_NameForms(t *testing.T) {
	if got := BoxBytes([]byte{1, 2, 3}).Name(); !bytes.Equal(got, []byte{1, 2, 3}) {
		t.Errorf("BoxBytes name = %v", got)
	}
	if got := BoxText("orders").Name(); string(got) != "orders" {
		t.Errorf("BoxText name = %q", got)
	}
	acct := testAddr(7)
	if got := BoxAccount(acct).Name(); !bytes.Equal(got, acct[:]) {
		t.Errorf("BoxAccount name = %v, want the 32 key bytes", got)
	}
	if got := (BoxIdentifier{}).Name(); len(got) != 0 {
		t.Errorf("zero identifier name = %v, want empty", got)
	}
}

func TestResolveBoxes_MapsAppAndName(t *testing.T) {
	refs := resolveBoxes([]BoxReference{
		{App: 0, Name: BoxText("a")},
		{App: 99, Name: BoxBytes([]byte{0xff})},
	})
	if len(refs) != 2 {
		t.Fatalf("got %d refs, want 2", len(refs))
	}
	if refs[0].AppID != 0 || string(refs[0].Name) != "a" {
		t.Errorf("ref 0 = %+v", refs[0])
	}
	if refs[1].AppID != 99 || !bytes.Equal(refs[1].Name, []byte{0xff}) {
		t.Errorf("ref 1 = %+v", refs[1])
	}
	if resolveBoxes(nil) != nil {
		t.Error("no boxes should resolve to nil")
	}
}
