// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Groupcraft Authors

package composer

// Intent parameter types, one per transaction kind. Each carries the shared
// CommonParams plus kind-specific fields. Addresses are typed addresses, not
// strings; amounts are in base units (microAlgos for payments).

import (
	"github.com/algorand/go-algorand-sdk/v2/abi"
	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/algorand/go-algorand-sdk/v2/types"
)

// CommonParams are the fields shared by every transaction intent.
//
// Fee policy: StaticFee and ExtraFee are mutually exclusive; setting both is
// a construction-time error at build. MaxFee, when set, caps the fee that
// build is allowed to produce. Pointer fields distinguish "unset" from an
// explicit zero.
type CommonParams struct {
	Sender types.Address                 // Sender address (required)
	Signer transaction.TransactionSigner // Optional; registry lookup by sender when nil

	RekeyTo types.Address // Optional rekey target (zero address = none)
	Note    []byte        // Optional pre-encoded note
	Lease   [32]byte      // Optional mutual-exclusion token (zero = none)

	StaticFee *types.MicroAlgos // Exact flat fee, used verbatim
	ExtraFee  *types.MicroAlgos // Fee added on top of the computed fee
	MaxFee    *types.MicroAlgos // Ceiling on the resulting fee

	FirstValid     *uint64 // Explicit first-valid round (default: network-reported)
	LastValid      *uint64 // Explicit last-valid round (wins over ValidityWindow)
	ValidityWindow *uint64 // Rounds of validity past first-valid
}

// commonParams lets every embedding intent type expose its shared fields
// without per-type accessors.
func (p CommonParams) commonParams() CommonParams { return p }

// hasCommonParams is satisfied by every intent type through embedding.
type hasCommonParams interface {
	commonParams() CommonParams
}

// validateFees checks the intent-local fee fields for conflicts. This runs
// before any network lookup so a conflicting intent never costs a round trip.
func (p CommonParams) validateFees() error {
	if p.StaticFee != nil && p.ExtraFee != nil {
		return ErrFeeConflict
	}
	return nil
}

// PaymentParams describes an ALGO payment.
type PaymentParams struct {
	CommonParams
	Receiver types.Address
	Amount   uint64        // microAlgos
	CloseTo  types.Address // Optional; closes the account and sends remainder here
}

// AssetCreateParams describes the creation of a new asset.
type AssetCreateParams struct {
	CommonParams
	Total         uint64
	Decimals      uint32
	DefaultFrozen bool
	Manager       types.Address
	Reserve       types.Address
	Freeze        types.Address
	Clawback      types.Address
	UnitName      string
	AssetName     string
	URL           string
	MetadataHash  []byte // 32 bytes when present
}

// AssetConfigParams describes a reconfiguration of an existing asset.
// Omitted role addresses are cleared permanently by the network unless
// StrictEmptyAddressChecking rejects them first.
type AssetConfigParams struct {
	CommonParams
	AssetID                    uint64
	Manager                    types.Address
	Reserve                    types.Address
	Freeze                     types.Address
	Clawback                   types.Address
	StrictEmptyAddressChecking bool
}

// AssetFreezeParams freezes or unfreezes an account's asset holding.
type AssetFreezeParams struct {
	CommonParams
	AssetID uint64
	Target  types.Address
	Frozen  bool
}

// AssetDestroyParams destroys an asset whose supply sits entirely with its creator.
type AssetDestroyParams struct {
	CommonParams
	AssetID uint64
}

// AssetTransferParams describes an asset transfer.
type AssetTransferParams struct {
	CommonParams
	AssetID  uint64
	Receiver types.Address
	Amount   uint64        // base units
	CloseTo  types.Address // Optional; closes the holding and sends remainder here
}

// AssetOptInParams opts the sender into an asset (zero-unit self transfer).
type AssetOptInParams struct {
	CommonParams
	AssetID uint64
}

// AssetOptOutParams opts the sender out of an asset, closing any remaining
// balance to the asset's creator.
type AssetOptOutParams struct {
	CommonParams
	AssetID uint64
	Creator types.Address // The asset creator receives the closed-out balance
}

// KeyRegParams describes a participation key registration.
//
// Online registration is selected by the presence of vote key material and
// requires the selection and state proof keys plus the vote round range.
// With no key material the account goes offline; NonParticipation
// permanently marks the account as never participating.
type KeyRegParams struct {
	CommonParams
	VoteKey          string // Base64 encoded vote key
	SelectionKey     string // Base64 encoded selection key
	StateProofKey    string // Base64 encoded state proof key
	VoteFirst        uint64
	VoteLast         uint64
	VoteKeyDilution  uint64
	NonParticipation bool
}

// AppCallParams describes a raw (non-ABI) application call.
//
// ApplicationID 0 always builds a creation transaction and requires both
// approval and clear programs. Nonzero ids build a call carrying the given
// on-complete action; update calls carry the new programs.
type AppCallParams struct {
	CommonParams
	ApplicationID   uint64
	OnComplete      types.OnCompletion
	ApprovalProgram []byte
	ClearProgram    []byte
	GlobalSchema    types.StateSchema
	LocalSchema     types.StateSchema
	ExtraPages      uint32
	Args            [][]byte
	Accounts        []types.Address
	ForeignApps     []uint64
	ForeignAssets   []uint64
	Boxes           []BoxReference
}

// MethodCallParams describes an ARC-4 ABI method call. Args must line up
// positionally with Method's declared arguments; transaction-typed
// parameters consume transaction-producing arguments, reference-typed
// parameters consume address/id values, and everything else is an ABI value.
type MethodCallParams struct {
	CommonParams
	ApplicationID   uint64 // 0 for a method call that creates the application
	Method          abi.Method
	Args            []MethodArg
	OnComplete      types.OnCompletion
	ApprovalProgram []byte
	ClearProgram    []byte
	GlobalSchema    types.StateSchema
	LocalSchema     types.StateSchema
	ExtraPages      uint32
	Accounts        []types.Address
	ForeignApps     []uint64
	ForeignAssets   []uint64
	Boxes           []BoxReference
}

// signedTxnIntent wraps an externally built and signer-attached transaction
// added directly to the pending list.
type signedTxnIntent struct {
	txn transaction.TransactionWithSigner
}

// prebuiltGroupIntent wraps a previously assembled sub-group. Members are
// re-grouped with the rest of the composer's transactions at build time.
type prebuiltGroupIntent struct {
	txns []transaction.TransactionWithSigner
}
