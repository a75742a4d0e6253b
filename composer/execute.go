// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Groupcraft Authors

package composer

import (
	"bytes"
	"context"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/abi"

	"github.com/groupcraft-algo/groupcraft/internal/util"
)

// abiReturnPrefix marks a log entry as an ABI return value (the first four
// bytes of sha512/256("return")).
var abiReturnPrefix = []byte{0x15, 0x1f, 0x7c, 0x75}

// ABIResult carries the decoded return value of one method call in an
// executed group. DecodeError is set when the method declares a return type
// but no decodable value was found; the group itself still succeeded.
type ABIResult struct {
	TxID        string
	Method      abi.Method
	RawValue    []byte
	Value       any
	DecodeError error
}

// ExecuteResult is the outcome of submitting a built group and waiting for
// confirmation.
type ExecuteResult struct {
	GroupID        string
	TxIDs          []string
	ConfirmedRound uint64
	MethodResults  []ABIResult
}

// Execute builds the group if needed, gathers signatures, submits the group
// atomically, and waits up to waitRounds rounds for confirmation. A
// waitRounds of 0 derives the budget from the group's own validity window,
// so the wait covers every round in which the group could still land.
//
// Method calls in the group get their ABI return values decoded from the
// confirmation logs, in group order.
func (c *Composer) Execute(ctx context.Context, waitRounds uint64) (*ExecuteResult, error) {
	if c.submitter == nil {
		return nil, ErrNoSubmitter
	}

	built, err := c.Build(ctx)
	if err != nil {
		return nil, err
	}

	signed, err := c.GatherSignatures()
	if err != nil {
		return nil, err
	}

	var raw bytes.Buffer
	for _, stx := range signed {
		raw.Write(stx)
	}

	if waitRounds == 0 {
		waitRounds = built.WaitRounds()
	}

	util.Debug("submitting atomic group", "txns", len(built.TxIDs), "waitRounds", waitRounds)

	submitted, err := c.submitter.SubmitGroup(ctx, raw.Bytes(), built.TxIDs, waitRounds)
	if err != nil {
		return nil, fmt.Errorf("failed to submit transaction group: %w", err)
	}

	confirmations := make(map[string]Confirmation, len(submitted.Confirmations))
	for _, conf := range submitted.Confirmations {
		confirmations[conf.TxID] = conf
	}

	var methodResults []ABIResult
	for _, txid := range built.TxIDs {
		method, ok := built.MethodForTxID(txid)
		if !ok {
			continue
		}
		result := ABIResult{TxID: txid, Method: method}
		if method.Returns.Type != "void" {
			conf, found := confirmations[txid]
			if !found {
				result.DecodeError = fmt.Errorf("no confirmation record for transaction %s", txid)
			} else {
				result.RawValue, result.Value, result.DecodeError = decodeMethodReturn(method, conf.Logs)
			}
		}
		methodResults = append(methodResults, result)
	}

	return &ExecuteResult{
		GroupID:        fmt.Sprintf("%x", built.GroupID[:]),
		TxIDs:          built.TxIDs,
		ConfirmedRound: submitted.ConfirmedRound,
		MethodResults:  methodResults,
	}, nil
}

// decodeMethodReturn extracts the ABI return value from a transaction's
// logs. The return value is the last log entry carrying the ABI return
// prefix; earlier prefixed entries are treated as ordinary logs.
func decodeMethodReturn(method abi.Method, logs [][]byte) ([]byte, any, error) {
	for i := len(logs) - 1; i >= 0; i-- {
		if !bytes.HasPrefix(logs[i], abiReturnPrefix) {
			continue
		}
		raw := logs[i][len(abiReturnPrefix):]
		retType, err := abi.TypeOf(method.Returns.Type)
		if err != nil {
			return raw, nil, fmt.Errorf("invalid return type %q: %w", method.Returns.Type, err)
		}
		value, err := retType.Decode(raw)
		if err != nil {
			return raw, nil, fmt.Errorf("failed to decode return value: %w", err)
		}
		return raw, value, nil
	}
	return nil, nil, fmt.Errorf("no return value logged for method %s", method.Name)
}
