// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Groupcraft Authors

package signing

import "errors"

var (
	// ErrNoSigner indicates no signing key is available for an address
	ErrNoSigner = errors.New("no signer registered for address")
)
