// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Groupcraft Authors

package composer

import (
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/algorand/go-algorand-sdk/v2/types"
)

// buildKeyReg maps a key registration intent onto the wire constructor.
// Online participation is selected by the presence of vote key material;
// an empty intent takes the account offline; NonParticipation permanently
// opts the account out of consensus rewards and participation.
func buildKeyReg(p *KeyRegParams, sp types.SuggestedParams, defaultWindow uint64) (types.Transaction, error) {
	online := p.VoteKey != ""
	if online {
		if p.NonParticipation {
			return types.Transaction{}, fmt.Errorf("non-participation key registration cannot carry vote keys")
		}
		if p.SelectionKey == "" || p.StateProofKey == "" {
			return types.Transaction{}, ErrMissingKeyMaterial
		}
		if p.VoteFirst == 0 || p.VoteLast == 0 {
			return types.Transaction{}, fmt.Errorf("online key registration requires votefirst and votelast > 0")
		}
		if p.VoteLast <= p.VoteFirst {
			return types.Transaction{}, fmt.Errorf("votelast must be greater than votefirst")
		}
	}

	txn, err := transaction.MakeKeyRegTxnWithStateProofKey(
		p.Sender.String(),
		nil,
		buildParams(sp),
		p.VoteKey,
		p.SelectionKey,
		p.StateProofKey,
		p.VoteFirst,
		p.VoteLast,
		p.VoteKeyDilution,
		p.NonParticipation,
	)
	if err != nil {
		return types.Transaction{}, fmt.Errorf("failed to create keyreg transaction: %w", err)
	}

	if err := applyCommonParams(&txn, p.CommonParams, sp, defaultWindow); err != nil {
		return types.Transaction{}, err
	}
	return txn, nil
}
