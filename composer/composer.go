// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Groupcraft Authors

// Package composer assembles heterogeneous transaction intents into one
// atomic Algorand transaction group.
//
// Callers append intents (payments, asset lifecycle operations, key
// registrations, application calls, ABI method calls, prebuilt sub-groups)
// in any order, then Build resolves every intent against live network
// parameters, attaches signers, and links the group. A built composer is an
// immutable snapshot until Rebuild discards it and replays the same pending
// intents with fresh lookups.
package composer

import (
	"context"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/abi"
	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/groupcraft-algo/groupcraft/internal/util"
)

// MaxGroupSize is the protocol ceiling on atomic group membership.
const MaxGroupSize = 16

// State is the composer lifecycle state.
type State int

const (
	// StateBuilding accepts intents.
	StateBuilding State = iota
	// StateBuilt is an immutable snapshot; Rebuild returns to StateBuilding.
	StateBuilt
)

// ParamsSource supplies current network parameters: fee-per-byte, minimum
// fee, first-valid round, and genesis identity.
type ParamsSource interface {
	SuggestedParams(ctx context.Context) (types.SuggestedParams, error)
}

// SignerRegistry looks up the signing capability for an account address.
// It must be total over every sender address used in a group.
type SignerRegistry interface {
	Signer(addr types.Address) (transaction.TransactionSigner, error)
}

// Compiler turns program source text into deployable bytecode.
type Compiler interface {
	Compile(ctx context.Context, source []byte) (*CompileResult, error)
}

// Submitter sends a signed group to the network and waits for confirmation
// within the given rounds budget.
type Submitter interface {
	SubmitGroup(ctx context.Context, rawGroup []byte, txIDs []string, waitRounds uint64) (*SubmitResult, error)
}

// CompileResult is the outcome of compiling one program source text.
type CompileResult struct {
	Program   []byte         // Compiled bytecode
	Hash      string         // Content hash of the program
	SourceMap map[string]any // Source map when the backend provides one
}

// Confirmation is the per-transaction confirmation record from submission.
type Confirmation struct {
	TxID           string
	ConfirmedRound uint64
	Logs           [][]byte
}

// SubmitResult is what the submission collaborator reports for a group.
type SubmitResult struct {
	ConfirmedRound uint64
	Confirmations  []Confirmation
}

// BuiltGroup is the immutable product of a successful Build.
type BuiltGroup struct {
	Transactions []transaction.TransactionWithSigner
	TxIDs        []string
	GroupID      types.Digest

	methodsByTxID     map[string]abi.Method
	networkFirstValid types.Round
}

// MethodForTxID returns the ABI method recorded for a transaction id, for
// return-value decoding.
func (g *BuiltGroup) MethodForTxID(txid string) (abi.Method, bool) {
	m, ok := g.methodsByTxID[txid]
	return m, ok
}

// WaitRounds is the group's worst-case validity window: the highest member
// last-valid round minus the network-reported first-valid round, plus one.
func (g *BuiltGroup) WaitRounds() uint64 {
	var maxLast types.Round
	for _, ts := range g.Transactions {
		if ts.Txn.LastValid > maxLast {
			maxLast = ts.Txn.LastValid
		}
	}
	if maxLast <= g.networkFirstValid {
		return 1
	}
	return uint64(maxLast-g.networkFirstValid) + 1
}

// Composer accumulates transaction intents and assembles them into one
// atomic group. Not safe for concurrent use; each instance is single-owner.
type Composer struct {
	state   State
	pending []any
	built   *BuiltGroup

	params    ParamsSource
	signers   SignerRegistry
	submitter Submitter
	compiler  Compiler

	compileCache map[string]*CompileResult

	defaultWindow uint64
	windowSet     bool
}

// Option is a functional option for configuring the Composer
type Option func(*Composer) error

// NewComposer creates a composer with the given collaborators.
func NewComposer(opts ...Option) (*Composer, error) {
	c := &Composer{
		compileCache: make(map[string]*CompileResult),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// WithParamsSource sets the network parameter source
func WithParamsSource(src ParamsSource) Option {
	return func(c *Composer) error {
		c.params = src
		return nil
	}
}

// WithSignerRegistry sets the address-to-signer lookup
func WithSignerRegistry(reg SignerRegistry) Option {
	return func(c *Composer) error {
		c.signers = reg
		return nil
	}
}

// WithSubmitter sets the group submission collaborator
func WithSubmitter(s Submitter) Option {
	return func(c *Composer) error {
		c.submitter = s
		return nil
	}
}

// WithCompiler sets the program compiler
func WithCompiler(comp Compiler) Option {
	return func(c *Composer) error {
		c.compiler = comp
		return nil
	}
}

// WithDefaultValidityWindow overrides the composer-wide validity window
// applied when an intent has no explicit rounds. Setting it also disables
// the extended dev-network default.
func WithDefaultValidityWindow(rounds uint64) Option {
	return func(c *Composer) error {
		c.defaultWindow = rounds
		c.windowSet = true
		return nil
	}
}

// State returns the current lifecycle state.
func (c *Composer) State() State {
	return c.state
}

// Count returns the number of pending intents (not resolved transactions;
// a method call with nested arguments counts once).
func (c *Composer) Count() int {
	return len(c.pending)
}

func (c *Composer) add(intent any) error {
	if c.state != StateBuilding {
		return ErrComposerBuilt
	}
	c.pending = append(c.pending, intent)
	return nil
}

// AddPayment queues an ALGO payment.
func (c *Composer) AddPayment(p *PaymentParams) error { return c.add(p) }

// AddAssetCreate queues an asset creation.
func (c *Composer) AddAssetCreate(p *AssetCreateParams) error { return c.add(p) }

// AddAssetConfig queues an asset reconfiguration.
func (c *Composer) AddAssetConfig(p *AssetConfigParams) error { return c.add(p) }

// AddAssetFreeze queues an asset freeze or unfreeze.
func (c *Composer) AddAssetFreeze(p *AssetFreezeParams) error { return c.add(p) }

// AddAssetDestroy queues an asset destroy.
func (c *Composer) AddAssetDestroy(p *AssetDestroyParams) error { return c.add(p) }

// AddAssetTransfer queues an asset transfer.
func (c *Composer) AddAssetTransfer(p *AssetTransferParams) error { return c.add(p) }

// AddAssetOptIn queues an asset opt-in (zero-unit self transfer).
func (c *Composer) AddAssetOptIn(p *AssetOptInParams) error { return c.add(p) }

// AddAssetOptOut queues an asset opt-out (close remaining balance to creator).
func (c *Composer) AddAssetOptOut(p *AssetOptOutParams) error { return c.add(p) }

// AddKeyReg queues a participation key registration.
func (c *Composer) AddKeyReg(p *KeyRegParams) error { return c.add(p) }

// AddAppCall queues a raw application call (or creation when the id is 0).
func (c *Composer) AddAppCall(p *AppCallParams) error { return c.add(p) }

// AddMethodCall queues an ARC-4 ABI method call. Transaction-producing
// arguments resolve into the group ahead of the call itself.
func (c *Composer) AddMethodCall(p *MethodCallParams) error { return c.add(p) }

// AddSignedTransaction queues an externally built transaction with its
// signer attached. The transaction must not carry a group id.
func (c *Composer) AddSignedTransaction(ts transaction.TransactionWithSigner) error {
	if ts.Txn.Group != (types.Digest{}) {
		return fmt.Errorf("transaction already belongs to a group")
	}
	return c.add(signedTxnIntent{txn: ts})
}

// AddPrebuiltGroup queues the members of a previously assembled sub-group.
// Their group ids are discarded; the members are re-linked with the rest of
// the composer's transactions at build time.
func (c *Composer) AddPrebuiltGroup(txns []transaction.TransactionWithSigner) error {
	if len(txns) == 0 {
		return fmt.Errorf("prebuilt group has no transactions")
	}
	if len(txns) > MaxGroupSize {
		return fmt.Errorf("%w: prebuilt group has %d transactions (max %d)", ErrGroupSizeExceeded, len(txns), MaxGroupSize)
	}
	members := make([]transaction.TransactionWithSigner, len(txns))
	copy(members, txns)
	for i := range members {
		members[i].Txn.Group = types.Digest{}
	}
	return c.add(prebuiltGroupIntent{txns: members})
}

// signerFor resolves the signing capability for a sender: an explicit
// signer wins, otherwise the registry is consulted.
func (c *Composer) signerFor(explicit transaction.TransactionSigner, sender types.Address) (transaction.TransactionSigner, error) {
	if explicit != nil {
		return explicit, nil
	}
	if c.signers == nil {
		return nil, ErrNoSignerRegistry
	}
	return c.signers.Signer(sender)
}

// buildIntentTxn dispatches a single-transaction intent to its typed
// builder, returning the finished transaction and the intent's common
// parameters (for signer attachment by the caller).
func buildIntentTxn(intent any, sp types.SuggestedParams, defaultWindow uint64) (types.Transaction, CommonParams, error) {
	switch p := intent.(type) {
	case *PaymentParams:
		txn, err := buildPayment(p, sp, defaultWindow)
		return txn, p.CommonParams, err
	case *AssetCreateParams:
		txn, err := buildAssetCreate(p, sp, defaultWindow)
		return txn, p.CommonParams, err
	case *AssetConfigParams:
		txn, err := buildAssetConfig(p, sp, defaultWindow)
		return txn, p.CommonParams, err
	case *AssetFreezeParams:
		txn, err := buildAssetFreeze(p, sp, defaultWindow)
		return txn, p.CommonParams, err
	case *AssetDestroyParams:
		txn, err := buildAssetDestroy(p, sp, defaultWindow)
		return txn, p.CommonParams, err
	case *AssetTransferParams:
		txn, err := buildAssetTransfer(p, sp, defaultWindow)
		return txn, p.CommonParams, err
	case *AssetOptInParams:
		txn, err := buildAssetOptIn(p, sp, defaultWindow)
		return txn, p.CommonParams, err
	case *AssetOptOutParams:
		txn, err := buildAssetOptOut(p, sp, defaultWindow)
		return txn, p.CommonParams, err
	case *KeyRegParams:
		txn, err := buildKeyReg(p, sp, defaultWindow)
		return txn, p.CommonParams, err
	case *AppCallParams:
		txn, err := buildAppCall(p, sp, defaultWindow)
		return txn, p.CommonParams, err
	default:
		return types.Transaction{}, CommonParams{}, fmt.Errorf("%w: %T", ErrUnknownIntent, intent)
	}
}

// validatePending surfaces intent-local conflicts before any network lookup.
func validatePending(intents []any) error {
	for i, intent := range intents {
		if err := validateIntent(intent); err != nil {
			return fmt.Errorf("intent %d: %w", i, err)
		}
	}
	return nil
}

func validateIntent(intent any) error {
	switch p := intent.(type) {
	case *MethodCallParams:
		if err := p.validateFees(); err != nil {
			return err
		}
		for _, arg := range p.Args {
			switch arg.kind {
			case argMethodCall:
				if err := validateIntent(arg.call); err != nil {
					return err
				}
			case argIntent:
				if err := validateIntent(arg.intent); err != nil {
					return err
				}
			}
		}
		return nil
	case signedTxnIntent, prebuiltGroupIntent:
		return nil
	default:
		if h, ok := intent.(hasCommonParams); ok {
			return h.commonParams().validateFees()
		}
		return nil
	}
}

// resolveIntent turns one pending entry into its ordered transactions with
// signers attached, plus any method records keyed by relative index.
func (c *Composer) resolveIntent(intent any, sp types.SuggestedParams, defaultWindow uint64) ([]transaction.TransactionWithSigner, map[int]abi.Method, error) {
	switch p := intent.(type) {
	case *MethodCallParams:
		return c.resolveMethodCall(p, sp, defaultWindow)
	case signedTxnIntent:
		return []transaction.TransactionWithSigner{p.txn}, nil, nil
	case prebuiltGroupIntent:
		return p.txns, nil, nil
	default:
		txn, common, err := buildIntentTxn(intent, sp, defaultWindow)
		if err != nil {
			return nil, nil, err
		}
		signer, err := c.signerFor(common.Signer, txn.Sender)
		if err != nil {
			return nil, nil, err
		}
		return []transaction.TransactionWithSigner{{Txn: txn, Signer: signer}}, nil, nil
	}
}

// devGenesisIDs are the genesis identifiers of disposable local development
// networks, which get the extended default validity window.
var devGenesisIDs = map[string]bool{
	"devnet-v1":    true,
	"sandnet-v1":   true,
	"dockernet-v1": true,
}

// IsDevNet reports whether a genesis id belongs to a local development or
// sandbox network.
func IsDevNet(genesisID string) bool {
	return devGenesisIDs[genesisID]
}

// Build resolves every pending intent in declaration order into an atomic
// group. It is idempotent: calling Build on a built composer returns the
// existing snapshot unchanged. Use Rebuild to force fresh resolution.
//
// No intent resolution has externally visible effects; either the whole
// group resolves or Build fails with nothing submitted.
func (c *Composer) Build(ctx context.Context) (*BuiltGroup, error) {
	if c.state == StateBuilt {
		return c.built, nil
	}
	if len(c.pending) == 0 {
		return nil, ErrEmptyGroup
	}
	if c.params == nil {
		return nil, ErrNoParamsSource
	}
	if err := validatePending(c.pending); err != nil {
		return nil, err
	}

	sp, err := c.params.SuggestedParams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get suggested params: %w", err)
	}

	defaultWindow := DefaultValidityWindow
	if c.windowSet {
		defaultWindow = c.defaultWindow
	} else if IsDevNet(sp.GenesisID) {
		defaultWindow = DevNetValidityWindow
	}

	var group []transaction.TransactionWithSigner
	methods := make(map[int]abi.Method)

	for i, intent := range c.pending {
		txns, ms, err := c.resolveIntent(intent, sp, defaultWindow)
		if err != nil {
			return nil, fmt.Errorf("intent %d: %w", i, err)
		}
		for rel, m := range ms {
			methods[len(group)+rel] = m
		}
		group = append(group, txns...)
	}

	if len(group) > MaxGroupSize {
		return nil, fmt.Errorf("%w: resolved to %d transactions (max %d)", ErrGroupSizeExceeded, len(group), MaxGroupSize)
	}

	// A transaction is excluded from group-link computation until all
	// members are known; single transactions stay ungrouped.
	var groupID types.Digest
	if len(group) > 1 {
		txns := make([]types.Transaction, len(group))
		for i := range group {
			txns[i] = group[i].Txn
		}
		groupID, err = crypto.ComputeGroupID(txns)
		if err != nil {
			return nil, fmt.Errorf("failed to compute group ID: %w", err)
		}
		for i := range group {
			group[i].Txn.Group = groupID
		}
	}

	txIDs := make([]string, len(group))
	for i := range group {
		txIDs[i] = crypto.GetTxID(group[i].Txn)
	}

	// The method map is rebuilt from scratch on every build; transaction
	// ids change whenever fees or rounds differ between attempts.
	methodsByTxID := make(map[string]abi.Method, len(methods))
	for idx, m := range methods {
		methodsByTxID[txIDs[idx]] = m
	}

	c.built = &BuiltGroup{
		Transactions:      group,
		TxIDs:             txIDs,
		GroupID:           groupID,
		methodsByTxID:     methodsByTxID,
		networkFirstValid: sp.FirstRoundValid,
	}
	c.state = StateBuilt

	util.Debug("built atomic group", "size", len(group), "groupID", fmt.Sprintf("%x", groupID[:]))
	return c.built, nil
}

// Rebuild discards the built snapshot and returns the composer to the
// building state. The pending intent list is kept: the next Build replays it
// with fresh signer and network-parameter lookups, and more intents may be
// added before then.
func (c *Composer) Rebuild() {
	c.built = nil
	c.state = StateBuilding
}

// GatherSignatures invokes each distinct signer once over the built group
// and returns the encoded signed transactions in group order.
func (c *Composer) GatherSignatures() ([][]byte, error) {
	if c.state != StateBuilt {
		return nil, ErrComposerNotBuilt
	}
	group := c.built.Transactions

	txns := make([]types.Transaction, len(group))
	for i := range group {
		txns[i] = group[i].Txn
	}

	signed := make([][]byte, len(group))
	visited := make([]bool, len(group))

	for i := range group {
		if visited[i] {
			continue
		}
		signer := group[i].Signer
		indexes := []int{i}
		visited[i] = true
		for j := i + 1; j < len(group); j++ {
			if !visited[j] && signer.Equals(group[j].Signer) {
				indexes = append(indexes, j)
				visited[j] = true
			}
		}

		sigs, err := signer.SignTransactions(txns, indexes)
		if err != nil {
			return nil, fmt.Errorf("failed to sign transaction group: %w", err)
		}
		for k, idx := range indexes {
			signed[idx] = sigs[k]
		}
	}

	return signed, nil
}
