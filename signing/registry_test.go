// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Groupcraft Authors

package signing

import (
	"errors"
	"testing"

	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/algorand/go-algorand-sdk/v2/types"
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	account := crypto.GenerateAccount()
	r := NewRegistry()
	r.RegisterAccount(account)

	signer, err := r.Signer(account.Address)
	if err != nil {
		t.Fatalf("Signer: %v", err)
	}
	want := transaction.BasicAccountTransactionSigner{Account: account}
	if !signer.Equals(want) {
		t.Error("registered account signer should equal a basic signer for the same account")
	}
}

func TestRegistry_UnknownAddress(t *testing.T) {
	r := NewRegistry()
	var addr types.Address
	addr[0] = 7

	_, err := r.Signer(addr)
	if !errors.Is(err, ErrNoSigner) {
		t.Fatalf("Signer = %v, want ErrNoSigner", err)
	}
}

func TestRegistry_ReplaceExisting(t *testing.T) {
	first := crypto.GenerateAccount()
	second := crypto.GenerateAccount()
	r := NewRegistry()

	// Both signers registered under the first account's address; the later
	// registration wins.
	r.RegisterAccount(first)
	r.Register(first.Address, transaction.BasicAccountTransactionSigner{Account: second})

	signer, err := r.Signer(first.Address)
	if err != nil {
		t.Fatalf("Signer: %v", err)
	}
	if !signer.Equals(transaction.BasicAccountTransactionSigner{Account: second}) {
		t.Error("later registration should replace the earlier one")
	}
}

func TestRegistry_Addresses(t *testing.T) {
	r := NewRegistry()
	if got := r.Addresses(); len(got) != 0 {
		t.Errorf("empty registry has %d addresses", len(got))
	}
	a := crypto.GenerateAccount()
	b := crypto.GenerateAccount()
	r.RegisterAccount(a)
	r.RegisterAccount(b)

	got := r.Addresses()
	if len(got) != 2 {
		t.Fatalf("got %d addresses, want 2", len(got))
	}
	seen := map[types.Address]bool{got[0]: true, got[1]: true}
	if !seen[a.Address] || !seen[b.Address] {
		t.Errorf("Addresses = %v, want both registered accounts", got)
	}
}
