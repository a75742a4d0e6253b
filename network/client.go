// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Groupcraft Authors

// Package network provides the algod-backed collaborators consumed by the
// composer: suggested-parameter fetch, TEAL compilation, and atomic group
// submission with confirmation polling.
package network

import (
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/client/v2/algod"

	"github.com/groupcraft-algo/groupcraft/internal/util"
)

// MakeClient returns an algod client using config settings.
// Returns an error if config is nil or algod URL is not configured for the network.
func MakeClient(network string, config *util.Config) (*algod.Client, error) {
	if config == nil {
		return nil, fmt.Errorf("algod not configured: no config provided")
	}
	algodConfig, err := config.GetAlgodConfig(network)
	if err != nil {
		return nil, fmt.Errorf("algod not configured for %s: %w", network, err)
	}
	if algodConfig.Server == "" {
		return nil, fmt.Errorf("algod not configured: %s_algod_server is empty in config.yaml", network)
	}
	return algod.MakeClient(algodConfig.Address(), algodConfig.Token)
}
