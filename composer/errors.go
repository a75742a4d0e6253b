// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Groupcraft Authors

package composer

import "errors"

var (
	// ErrFeeConflict indicates an intent set both a static fee and an extra fee
	ErrFeeConflict = errors.New("static fee and extra fee are mutually exclusive")

	// ErrFeeExceedsMax indicates the computed fee is above the intent's fee ceiling
	ErrFeeExceedsMax = errors.New("fee exceeds ceiling")

	// ErrGroupSizeExceeded indicates the resolved group is larger than MaxGroupSize
	ErrGroupSizeExceeded = errors.New("atomic group size exceeded")

	// ErrEmptyGroup indicates Build was called with no pending intents
	ErrEmptyGroup = errors.New("cannot build an empty group")

	// ErrComposerBuilt indicates a mutation was attempted on a built composer
	ErrComposerBuilt = errors.New("composer is already built; call Rebuild to start over")

	// ErrComposerNotBuilt indicates an operation requires a built group
	ErrComposerNotBuilt = errors.New("composer has not been built")

	// ErrUnknownIntent indicates an unrecognized intent kind in the pending list
	ErrUnknownIntent = errors.New("unrecognized transaction intent")

	// ErrMissingProgram indicates an application creation without both programs
	ErrMissingProgram = errors.New("application creation requires approval and clear programs")

	// ErrMissingKeyMaterial indicates an online key registration without full participation keys
	ErrMissingKeyMaterial = errors.New("online key registration requires vote, selection, and state proof keys")

	// ErrNotABIValue indicates a method argument that does not qualify as an ABI value
	ErrNotABIValue = errors.New("value is not an ABI-encodable value")

	// ErrArgumentMismatch indicates method arguments that do not line up with the signature
	ErrArgumentMismatch = errors.New("method arguments do not match method signature")

	// ErrNoParamsSource indicates the composer has no network parameter source
	ErrNoParamsSource = errors.New("no network parameter source configured")

	// ErrNoSignerRegistry indicates the composer has no signer registry
	ErrNoSignerRegistry = errors.New("no signer registry configured")

	// ErrNoSubmitter indicates the composer has no submission collaborator
	ErrNoSubmitter = errors.New("no submitter configured")

	// ErrNoCompiler indicates the composer has no program compiler
	ErrNoCompiler = errors.New("no program compiler configured")
)
