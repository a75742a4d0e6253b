// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Groupcraft Authors

package composer

import (
	"github.com/algorand/go-algorand-sdk/v2/types"
)

// boxIDKind tags the three accepted box identifier forms.
type boxIDKind int

const (
	boxIDBytes boxIDKind = iota
	boxIDText
	boxIDAccount
)

// BoxIdentifier names a contract storage box. Construct with BoxBytes,
// BoxText, or BoxAccount; the zero value names the empty box name (used for
// extra box i/o budget).
type BoxIdentifier struct {
	kind    boxIDKind
	raw     []byte
	text    string
	account types.Address
}

// BoxBytes identifies a box by its raw name bytes.
func BoxBytes(name []byte) BoxIdentifier {
	return BoxIdentifier{kind: boxIDBytes, raw: name}
}

// BoxText identifies a box by a UTF-8 text name.
func BoxText(name string) BoxIdentifier {
	return BoxIdentifier{kind: boxIDText, text: name}
}

// BoxAccount identifies a box named by an account's public key bytes.
func BoxAccount(addr types.Address) BoxIdentifier {
	return BoxIdentifier{kind: boxIDAccount, account: addr}
}

// Name returns the wire-level box name bytes.
func (b BoxIdentifier) Name() []byte {
	switch b.kind {
	case boxIDText:
		return []byte(b.text)
	case boxIDAccount:
		return b.account[:]
	default:
		return b.raw
	}
}

// BoxReference pairs a box identifier with its owning application.
// App 0 means "the application being called".
type BoxReference struct {
	App  uint64
	Name BoxIdentifier
}

// resolveBoxes converts box references into the SDK's app-box form. The
// SDK constructor maps owning app ids onto foreign-app array indices, with
// id 0 (and the called app's own id) resolving to the called app.
func resolveBoxes(boxes []BoxReference) []types.AppBoxReference {
	if len(boxes) == 0 {
		return nil
	}
	refs := make([]types.AppBoxReference, len(boxes))
	for i, b := range boxes {
		refs[i] = types.AppBoxReference{AppID: b.App, Name: b.Name.Name()}
	}
	return refs
}
