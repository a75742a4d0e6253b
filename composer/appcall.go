// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Groupcraft Authors

package composer

import (
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/algorand/go-algorand-sdk/v2/types"
)

// accountArgs renders account references for the SDK constructor.
func accountArgs(accounts []types.Address) []string {
	if len(accounts) == 0 {
		return nil
	}
	out := make([]string, len(accounts))
	for i, a := range accounts {
		out[i] = a.String()
	}
	return out
}

// buildAppCall maps an application-call intent onto the wire constructor.
//
// An application id of 0 always builds a creation transaction; this requires
// both the approval and clear programs. A nonzero id builds a generic call
// with the given on-complete action, carrying the programs only on update.
func buildAppCall(p *AppCallParams, sp types.SuggestedParams, defaultWindow uint64) (types.Transaction, error) {
	onComplete := p.OnComplete
	if p.ApplicationID == 0 {
		if len(p.ApprovalProgram) == 0 || len(p.ClearProgram) == 0 {
			return types.Transaction{}, ErrMissingProgram
		}
	} else if onComplete == types.UpdateApplicationOC {
		if len(p.ApprovalProgram) == 0 || len(p.ClearProgram) == 0 {
			return types.Transaction{}, fmt.Errorf("%w: application update", ErrMissingProgram)
		}
	}

	txn, err := transaction.MakeApplicationCallTxWithBoxes(
		p.ApplicationID,
		p.Args,
		accountArgs(p.Accounts),
		p.ForeignApps,
		p.ForeignAssets,
		resolveBoxes(p.Boxes),
		onComplete,
		p.ApprovalProgram,
		p.ClearProgram,
		p.GlobalSchema,
		p.LocalSchema,
		p.ExtraPages,
		buildParams(sp),
		p.Sender,
		nil,             // note applied by the common build step
		types.Digest{},  // group assigned at assembly
		[32]byte{},      // lease applied by the common build step
		types.Address{}, // rekey applied by the common build step
	)
	if err != nil {
		return types.Transaction{}, fmt.Errorf("failed to create application call transaction: %w", err)
	}

	if err := applyCommonParams(&txn, p.CommonParams, sp, defaultWindow); err != nil {
		return types.Transaction{}, err
	}
	return txn, nil
}
