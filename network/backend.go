// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Groupcraft Authors

package network

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/client/v2/algod"
	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/groupcraft-algo/groupcraft/composer"
	"github.com/groupcraft-algo/groupcraft/internal/util"
)

// Backend adapts an algod client to the composer's collaborator interfaces:
// parameter source, program compiler, and group submitter.
type Backend struct {
	client *algod.Client
}

// NewBackend wraps an algod client.
func NewBackend(client *algod.Client) *Backend {
	return &Backend{client: client}
}

// SuggestedParams fetches current consensus parameters from the node.
func (b *Backend) SuggestedParams(ctx context.Context) (types.SuggestedParams, error) {
	return b.client.SuggestedParams().Do(ctx)
}

// Compile sends TEAL source to the node's compile endpoint, requesting a
// source map.
func (b *Backend) Compile(ctx context.Context, source []byte) (*composer.CompileResult, error) {
	response, err := b.client.TealCompile(source).Sourcemap(true).Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("teal compile failed: %w", err)
	}
	program, err := base64.StdEncoding.DecodeString(response.Result)
	if err != nil {
		return nil, fmt.Errorf("failed to decode compiled program: %w", err)
	}
	result := &composer.CompileResult{
		Program: program,
		Hash:    response.Hash,
	}
	if response.Sourcemap != nil {
		result.SourceMap = *response.Sourcemap
	}
	return result, nil
}

// SubmitGroup broadcasts the concatenated signed transactions and waits up
// to waitRounds rounds for the group to confirm, then collects the
// per-transaction confirmation records.
func (b *Backend) SubmitGroup(ctx context.Context, rawGroup []byte, txIDs []string, waitRounds uint64) (*composer.SubmitResult, error) {
	if len(txIDs) == 0 {
		return nil, fmt.Errorf("no transactions to submit")
	}

	if _, err := b.client.SendRawTransaction(rawGroup).Do(ctx); err != nil {
		return nil, fmt.Errorf("failed to send transaction group: %w", err)
	}
	util.Debug("sent transaction group", "txns", len(txIDs), "first", txIDs[0])

	// The group confirms atomically, so waiting on the first member waits
	// on all of them.
	info, err := transaction.WaitForConfirmation(b.client, txIDs[0], waitRounds, ctx)
	if err != nil {
		return nil, fmt.Errorf("transaction group not confirmed after %d rounds: %w", waitRounds, err)
	}
	if info.PoolError != "" {
		return nil, fmt.Errorf("transaction rejected: %s", info.PoolError)
	}

	result := &composer.SubmitResult{ConfirmedRound: info.ConfirmedRound}
	for _, txid := range txIDs {
		pending, _, err := b.client.PendingTransactionInformation(txid).Do(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to query confirmation for %s: %w", txid, err)
		}
		result.Confirmations = append(result.Confirmations, composer.Confirmation{
			TxID:           txid,
			ConfirmedRound: pending.ConfirmedRound,
			Logs:           pending.Logs,
		})
	}
	return result, nil
}
