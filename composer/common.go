// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Groupcraft Authors

package composer

// Common build step: fee, validity window, lease, rekey, and note handling
// shared by every typed builder. Method-call transactions go through this
// step exactly like plain transactions.

import (
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/algorand/go-algorand-sdk/v2/types"
)

// DefaultValidityWindow is how many rounds a transaction stays valid past
// its first-valid round when the intent and the composer specify nothing.
const DefaultValidityWindow uint64 = 10

// DevNetValidityWindow replaces DefaultValidityWindow on recognized local
// development networks, tolerating slow manual testing.
const DevNetValidityWindow uint64 = 1000

// buildParams returns a copy of the network parameters prepared for the wire
// constructors: flat zero fee so no constructor estimates fees on its own.
// The common build step is the single place fees are computed.
func buildParams(sp types.SuggestedParams) types.SuggestedParams {
	sp.FlatFee = true
	sp.Fee = 0
	return sp
}

// applyCommonParams applies the universally shared intent fields to a raw
// transaction skeleton. The skeleton arrives with first/last valid and
// genesis fields populated from the network parameters and a zero fee.
func applyCommonParams(txn *types.Transaction, p CommonParams, sp types.SuggestedParams, defaultWindow uint64) error {
	if p.StaticFee != nil && p.ExtraFee != nil {
		return ErrFeeConflict
	}

	if p.Lease != ([32]byte{}) {
		txn.Lease = p.Lease
	}
	if p.RekeyTo != (types.Address{}) {
		txn.RekeyTo = p.RekeyTo
	}
	if len(p.Note) > 0 {
		txn.Note = p.Note
	}

	if p.FirstValid != nil {
		txn.FirstValid = types.Round(*p.FirstValid)
	}
	if p.LastValid != nil {
		txn.LastValid = types.Round(*p.LastValid)
	} else {
		window := defaultWindow
		if p.ValidityWindow != nil {
			window = *p.ValidityWindow
		}
		txn.LastValid = txn.FirstValid + types.Round(window)
	}

	if p.StaticFee != nil {
		txn.Fee = *p.StaticFee
	} else {
		size, err := transaction.EstimateSize(*txn)
		if err != nil {
			return fmt.Errorf("failed to estimate transaction size: %w", err)
		}
		fee := types.MicroAlgos(size) * sp.Fee
		minFee := types.MicroAlgos(sp.MinFee)
		if minFee == 0 {
			minFee = transaction.MinTxnFee
		}
		if fee < minFee {
			fee = minFee
		}
		if p.ExtraFee != nil {
			fee += *p.ExtraFee
		}
		// The estimate is from an unsigned skeleton, so the fee must be
		// flat: the network may not renegotiate it per byte.
		txn.Fee = fee
	}

	if p.MaxFee != nil && txn.Fee > *p.MaxFee {
		return fmt.Errorf("%w: computed fee %d microAlgos, ceiling %d microAlgos", ErrFeeExceedsMax, txn.Fee, *p.MaxFee)
	}

	return nil
}
