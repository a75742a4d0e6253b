// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Groupcraft Authors

package composer

// ABI method-call argument resolution. A method call's arguments may be
// plain ABI values, already-signed transactions, transaction-producing
// intents, or nested method calls; nested arguments resolve depth-first into
// an ordered transaction list that precedes the call in the atomic group.

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/algorand/go-algorand-sdk/v2/abi"
	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/algorand/go-algorand-sdk/v2/types"
)

// methodArgKind tags the closed set of method argument variants.
type methodArgKind int

const (
	argValue methodArgKind = iota
	argSignedTxn
	argIntent
	argMethodCall
)

// MethodArg is one argument to an ABI method call. Construct with ABIValue,
// SignedTxnArg, IntentArg, MethodCallArg, or the classifying Arg.
type MethodArg struct {
	kind   methodArgKind
	value  any
	txn    transaction.TransactionWithSigner
	intent any
	call   *MethodCallParams
}

// ABIValue wraps a plain ABI-encodable value.
func ABIValue(v any) MethodArg {
	return MethodArg{kind: argValue, value: v}
}

// SignedTxnArg wraps an already-built transaction with its signer.
func SignedTxnArg(ts transaction.TransactionWithSigner) MethodArg {
	return MethodArg{kind: argSignedTxn, txn: ts}
}

// IntentArg wraps an unresolved transaction-producing intent (one of the
// *Params intent types). The intent is resolved, and a signer attached,
// while the enclosing method call resolves.
func IntentArg(intent any) MethodArg {
	return MethodArg{kind: argIntent, intent: intent}
}

// MethodCallArg wraps a nested method call whose transactions are spliced
// into the group before the enclosing call.
func MethodCallArg(p *MethodCallParams) MethodArg {
	return MethodArg{kind: argMethodCall, call: p}
}

// Arg classifies an arbitrary value structurally, the way arguments arrive
// at the construction boundary: transactions and intents are told apart
// from ABI values by shape, everything else is treated as an ABI value.
func Arg(v any) MethodArg {
	switch a := v.(type) {
	case MethodArg:
		return a
	case transaction.TransactionWithSigner:
		return SignedTxnArg(a)
	case *MethodCallParams:
		return MethodCallArg(a)
	case *PaymentParams, *AssetCreateParams, *AssetConfigParams,
		*AssetFreezeParams, *AssetDestroyParams, *AssetTransferParams,
		*AssetOptInParams, *AssetOptOutParams, *KeyRegParams, *AppCallParams:
		return IntentArg(a)
	default:
		return ABIValue(v)
	}
}

// IsABIValue reports whether a value structurally qualifies as an ABI value:
// a recognized scalar kind, or an array/slice whose every element qualifies.
func IsABIValue(v any) bool {
	switch v.(type) {
	case bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		[]byte, types.Address, *big.Int:
		return true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return false
	}
	for i := 0; i < rv.Len(); i++ {
		if !IsABIValue(rv.Index(i).Interface()) {
			return false
		}
	}
	return true
}

// txTypeForABIName maps an ABI transaction argument type to the concrete
// wire transaction type it admits. The generic "txn" admits anything.
func txTypeForABIName(name string) (types.TxType, bool) {
	switch name {
	case "pay", "keyreg", "acfg", "axfer", "afrz", "appl":
		return types.TxType(name), true
	default:
		return "", false
	}
}

// abiSlot is one pending application argument: its declared type and the
// value to encode.
type abiSlot struct {
	typ   abi.Type
	value any
}

// maxAppArgSlots is the number of application argument slots available to
// encoded ABI values: 16 app args minus the method selector.
const maxAppArgSlots = 15

// resolveMethodCall is the recursive core of the composer. It resolves each
// argument in order, producing the ordered transaction list that must enter
// the group before (and including) the method call's own transaction, plus a
// map from relative transaction index to the ABI method it invokes.
func (c *Composer) resolveMethodCall(p *MethodCallParams, sp types.SuggestedParams, defaultWindow uint64) ([]transaction.TransactionWithSigner, map[int]abi.Method, error) {
	if len(p.Args) != len(p.Method.Args) {
		return nil, nil, fmt.Errorf("%w: method %s takes %d arguments, got %d",
			ErrArgumentMismatch, p.Method.Name, len(p.Method.Args), len(p.Args))
	}

	signer, err := c.signerFor(p.Signer, p.Sender)
	if err != nil {
		return nil, nil, err
	}

	var preceding []transaction.TransactionWithSigner
	methods := make(map[int]abi.Method)
	var slots []abiSlot

	// Working copies of the reference arrays; reference-typed arguments
	// grow them and encode as indexes.
	accounts := append([]types.Address(nil), p.Accounts...)
	foreignApps := append([]uint64(nil), p.ForeignApps...)
	foreignAssets := append([]uint64(nil), p.ForeignAssets...)

	for i, methodArg := range p.Method.Args {
		arg := p.Args[i]

		if abi.IsTransactionType(methodArg.Type) {
			txns, nested, err := c.resolveTxnArgument(p, arg, sp, defaultWindow)
			if err != nil {
				return nil, nil, fmt.Errorf("method %s argument %d: %w", p.Method.Name, i, err)
			}
			if want, ok := txTypeForABIName(methodArg.Type); ok {
				last := txns[len(txns)-1].Txn
				if last.Type != want {
					return nil, nil, fmt.Errorf("%w: argument %d of %s expects a %s transaction, got %s",
						ErrArgumentMismatch, i, p.Method.Name, want, last.Type)
				}
			}
			for rel, m := range nested {
				methods[len(preceding)+rel] = m
			}
			preceding = append(preceding, txns...)
			continue
		}

		if arg.kind != argValue {
			return nil, nil, fmt.Errorf("%w: argument %d of %s is declared %s but a transaction was supplied",
				ErrArgumentMismatch, i, p.Method.Name, methodArg.Type)
		}

		if abi.IsReferenceType(methodArg.Type) {
			idx, err := resolveReference(methodArg.Type, arg.value, p, &accounts, &foreignApps, &foreignAssets)
			if err != nil {
				return nil, nil, fmt.Errorf("method %s argument %d: %w", p.Method.Name, i, err)
			}
			uint8Type, err := abi.TypeOf("uint8")
			if err != nil {
				return nil, nil, err
			}
			slots = append(slots, abiSlot{typ: uint8Type, value: idx})
			continue
		}

		if !IsABIValue(arg.value) {
			return nil, nil, fmt.Errorf("%w: argument %d of %s (%T)", ErrNotABIValue, i, p.Method.Name, arg.value)
		}
		typ, err := abi.TypeOf(methodArg.Type)
		if err != nil {
			return nil, nil, fmt.Errorf("method %s argument %d: invalid ABI type %q: %w", p.Method.Name, i, methodArg.Type, err)
		}
		slots = append(slots, abiSlot{typ: typ, value: coerceABIValue(arg.value)})
	}

	appArgs, err := encodeAppArgs(p.Method, slots)
	if err != nil {
		return nil, nil, err
	}

	call := &AppCallParams{
		CommonParams:    p.CommonParams,
		ApplicationID:   p.ApplicationID,
		OnComplete:      p.OnComplete,
		ApprovalProgram: p.ApprovalProgram,
		ClearProgram:    p.ClearProgram,
		GlobalSchema:    p.GlobalSchema,
		LocalSchema:     p.LocalSchema,
		ExtraPages:      p.ExtraPages,
		Args:            appArgs,
		Accounts:        accounts,
		ForeignApps:     foreignApps,
		ForeignAssets:   foreignAssets,
		Boxes:           p.Boxes,
	}
	txn, err := buildAppCall(call, sp, defaultWindow)
	if err != nil {
		return nil, nil, fmt.Errorf("method %s: %w", p.Method.Name, err)
	}

	out := append(preceding, transaction.TransactionWithSigner{Txn: txn, Signer: signer})
	methods[len(out)-1] = p.Method
	return out, methods, nil
}

// resolveTxnArgument turns one transaction-typed argument into the ordered
// transactions it contributes to the group. Signers are resolved eagerly so
// nested transactions stay individually signable.
func (c *Composer) resolveTxnArgument(outer *MethodCallParams, arg MethodArg, sp types.SuggestedParams, defaultWindow uint64) ([]transaction.TransactionWithSigner, map[int]abi.Method, error) {
	switch arg.kind {
	case argSignedTxn:
		return []transaction.TransactionWithSigner{arg.txn}, nil, nil

	case argMethodCall:
		return c.resolveMethodCall(arg.call, sp, defaultWindow)

	case argIntent:
		txn, common, err := buildIntentTxn(arg.intent, sp, defaultWindow)
		if err != nil {
			return nil, nil, err
		}
		// Per-argument signer wins, then the outer call's explicit signer,
		// then a registry lookup for the nested transaction's own sender.
		signer := common.Signer
		if signer == nil {
			signer = outer.Signer
		}
		if signer == nil {
			signer, err = c.signerFor(nil, txn.Sender)
			if err != nil {
				return nil, nil, err
			}
		}
		return []transaction.TransactionWithSigner{{Txn: txn, Signer: signer}}, nil, nil

	default:
		return nil, nil, fmt.Errorf("%w: a transaction-typed parameter needs a transaction argument", ErrArgumentMismatch)
	}
}

// resolveReference maps an account/asset/application reference value onto
// its foreign-array index. The sender and the called application occupy
// implicit index 0 of their arrays.
func resolveReference(refType string, value any, p *MethodCallParams, accounts *[]types.Address, foreignApps, foreignAssets *[]uint64) (uint8, error) {
	switch refType {
	case "account":
		addr, err := addressValue(value)
		if err != nil {
			return 0, err
		}
		if addr == p.Sender {
			return 0, nil
		}
		for i, a := range *accounts {
			if a == addr {
				return uint8(i + 1), nil
			}
		}
		*accounts = append(*accounts, addr)
		return uint8(len(*accounts)), nil

	case "application":
		id, err := uint64Value(value)
		if err != nil {
			return 0, err
		}
		if id == p.ApplicationID {
			return 0, nil
		}
		for i, a := range *foreignApps {
			if a == id {
				return uint8(i + 1), nil
			}
		}
		*foreignApps = append(*foreignApps, id)
		return uint8(len(*foreignApps)), nil

	case "asset":
		id, err := uint64Value(value)
		if err != nil {
			return 0, err
		}
		for i, a := range *foreignAssets {
			if a == id {
				return uint8(i), nil
			}
		}
		*foreignAssets = append(*foreignAssets, id)
		return uint8(len(*foreignAssets) - 1), nil

	default:
		return 0, fmt.Errorf("unknown reference type %q", refType)
	}
}

func addressValue(v any) (types.Address, error) {
	switch a := v.(type) {
	case types.Address:
		return a, nil
	case string:
		addr, err := types.DecodeAddress(a)
		if err != nil {
			return types.Address{}, fmt.Errorf("invalid account reference: %w", err)
		}
		return addr, nil
	default:
		return types.Address{}, fmt.Errorf("account reference must be an address, got %T", v)
	}
}

func uint64Value(v any) (uint64, error) {
	switch n := v.(type) {
	case uint64:
		return n, nil
	case uint:
		return uint64(n), nil
	case int:
		if n < 0 {
			return 0, fmt.Errorf("reference id cannot be negative")
		}
		return uint64(n), nil
	default:
		return 0, fmt.Errorf("reference must be a uint64 id, got %T", v)
	}
}

// coerceABIValue adapts Go-native values the encoder does not take directly.
func coerceABIValue(v any) any {
	if addr, ok := v.(types.Address); ok {
		return addr // [32]byte, accepted for the address type
	}
	return v
}

// encodeAppArgs encodes the method selector plus every value slot. When the
// method takes more than 15 non-transaction arguments, the 15th and later
// values pack into a single trailing tuple, per ARC-4.
func encodeAppArgs(method abi.Method, slots []abiSlot) ([][]byte, error) {
	appArgs := [][]byte{method.GetSelector()}

	if len(slots) > maxAppArgSlots {
		head := slots[:maxAppArgSlots-1]
		tail := slots[maxAppArgSlots-1:]

		for _, s := range head {
			enc, err := s.typ.Encode(s.value)
			if err != nil {
				return nil, fmt.Errorf("failed to encode argument: %w", err)
			}
			appArgs = append(appArgs, enc)
		}

		tailTypes := make([]abi.Type, len(tail))
		tailValues := make([]any, len(tail))
		for i, s := range tail {
			tailTypes[i] = s.typ
			tailValues[i] = s.value
		}
		tupleType, err := abi.MakeTupleType(tailTypes)
		if err != nil {
			return nil, fmt.Errorf("failed to build argument tuple type: %w", err)
		}
		enc, err := tupleType.Encode(tailValues)
		if err != nil {
			return nil, fmt.Errorf("failed to encode argument tuple: %w", err)
		}
		appArgs = append(appArgs, enc)
		return appArgs, nil
	}

	for _, s := range slots {
		enc, err := s.typ.Encode(s.value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode argument: %w", err)
		}
		appArgs = append(appArgs, enc)
	}
	return appArgs, nil
}
