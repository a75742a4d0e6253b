// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Groupcraft Authors

package composer

// Asset lifecycle builders. Opt-in and opt-out are sugar over the transfer
// builder: opt-in sends zero units to self, opt-out additionally closes the
// remaining balance to the asset's creator.

import (
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/algorand/go-algorand-sdk/v2/types"
)

// addrArg renders an optional role address for the SDK constructors, which
// take empty strings for unset roles.
func addrArg(addr types.Address) string {
	if addr == (types.Address{}) {
		return ""
	}
	return addr.String()
}

func buildAssetCreate(p *AssetCreateParams, sp types.SuggestedParams, defaultWindow uint64) (types.Transaction, error) {
	txn, err := transaction.MakeAssetCreateTxn(
		p.Sender.String(),
		nil,
		buildParams(sp),
		p.Total,
		p.Decimals,
		p.DefaultFrozen,
		addrArg(p.Manager),
		addrArg(p.Reserve),
		addrArg(p.Freeze),
		addrArg(p.Clawback),
		p.UnitName,
		p.AssetName,
		p.URL,
		string(p.MetadataHash),
	)
	if err != nil {
		return types.Transaction{}, fmt.Errorf("failed to create asset creation transaction: %w", err)
	}

	if err := applyCommonParams(&txn, p.CommonParams, sp, defaultWindow); err != nil {
		return types.Transaction{}, err
	}
	return txn, nil
}

func buildAssetConfig(p *AssetConfigParams, sp types.SuggestedParams, defaultWindow uint64) (types.Transaction, error) {
	txn, err := transaction.MakeAssetConfigTxn(
		p.Sender.String(),
		nil,
		buildParams(sp),
		p.AssetID,
		addrArg(p.Manager),
		addrArg(p.Reserve),
		addrArg(p.Freeze),
		addrArg(p.Clawback),
		p.StrictEmptyAddressChecking,
	)
	if err != nil {
		return types.Transaction{}, fmt.Errorf("failed to create asset config transaction: %w", err)
	}

	if err := applyCommonParams(&txn, p.CommonParams, sp, defaultWindow); err != nil {
		return types.Transaction{}, err
	}
	return txn, nil
}

func buildAssetFreeze(p *AssetFreezeParams, sp types.SuggestedParams, defaultWindow uint64) (types.Transaction, error) {
	txn, err := transaction.MakeAssetFreezeTxn(
		p.Sender.String(),
		nil,
		buildParams(sp),
		p.AssetID,
		p.Target.String(),
		p.Frozen,
	)
	if err != nil {
		return types.Transaction{}, fmt.Errorf("failed to create asset freeze transaction: %w", err)
	}

	if err := applyCommonParams(&txn, p.CommonParams, sp, defaultWindow); err != nil {
		return types.Transaction{}, err
	}
	return txn, nil
}

func buildAssetDestroy(p *AssetDestroyParams, sp types.SuggestedParams, defaultWindow uint64) (types.Transaction, error) {
	txn, err := transaction.MakeAssetDestroyTxn(
		p.Sender.String(),
		nil,
		buildParams(sp),
		p.AssetID,
	)
	if err != nil {
		return types.Transaction{}, fmt.Errorf("failed to create asset destroy transaction: %w", err)
	}

	if err := applyCommonParams(&txn, p.CommonParams, sp, defaultWindow); err != nil {
		return types.Transaction{}, err
	}
	return txn, nil
}

func buildAssetTransfer(p *AssetTransferParams, sp types.SuggestedParams, defaultWindow uint64) (types.Transaction, error) {
	txn, err := transaction.MakeAssetTransferTxn(
		p.Sender.String(),
		p.Receiver.String(),
		p.Amount,
		nil,
		buildParams(sp),
		addrArg(p.CloseTo),
		p.AssetID,
	)
	if err != nil {
		return types.Transaction{}, fmt.Errorf("failed to create asset transfer transaction: %w", err)
	}

	if err := applyCommonParams(&txn, p.CommonParams, sp, defaultWindow); err != nil {
		return types.Transaction{}, err
	}
	return txn, nil
}

// buildAssetOptIn builds a zero-unit transfer to self.
func buildAssetOptIn(p *AssetOptInParams, sp types.SuggestedParams, defaultWindow uint64) (types.Transaction, error) {
	xfer := &AssetTransferParams{
		CommonParams: p.CommonParams,
		AssetID:      p.AssetID,
		Receiver:     p.Sender,
		Amount:       0,
	}
	return buildAssetTransfer(xfer, sp, defaultWindow)
}

// buildAssetOptOut builds a zero-unit transfer that closes the holding to
// the asset's creator.
func buildAssetOptOut(p *AssetOptOutParams, sp types.SuggestedParams, defaultWindow uint64) (types.Transaction, error) {
	if p.Creator == (types.Address{}) {
		return types.Transaction{}, fmt.Errorf("asset opt-out requires the asset creator address")
	}
	xfer := &AssetTransferParams{
		CommonParams: p.CommonParams,
		AssetID:      p.AssetID,
		Receiver:     p.Creator,
		Amount:       0,
		CloseTo:      p.Creator,
	}
	return buildAssetTransfer(xfer, sp, defaultWindow)
}
