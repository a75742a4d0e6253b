// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Groupcraft Authors

package composer

import (
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/algorand/go-algorand-sdk/v2/types"
)

// buildPayment maps a payment intent onto the wire constructor, then applies
// the common build step.
func buildPayment(p *PaymentParams, sp types.SuggestedParams, defaultWindow uint64) (types.Transaction, error) {
	closeTo := ""
	if p.CloseTo != (types.Address{}) {
		closeTo = p.CloseTo.String()
	}

	txn, err := transaction.MakePaymentTxn(
		p.Sender.String(),
		p.Receiver.String(),
		p.Amount,
		nil, // note applied by the common build step
		closeTo,
		buildParams(sp),
	)
	if err != nil {
		return types.Transaction{}, fmt.Errorf("failed to create payment transaction: %w", err)
	}

	if err := applyCommonParams(&txn, p.CommonParams, sp, defaultWindow); err != nil {
		return types.Transaction{}, err
	}
	return txn, nil
}
