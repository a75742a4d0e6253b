// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Groupcraft Authors

// Package signing maps account addresses to transaction signing capabilities.
//
// The composer resolves every sender it encounters through a SignerRegistry;
// the registry must be total over all senders used in a group or resolution
// fails. Registered signers implement the SDK's transaction.TransactionSigner
// interface, so ed25519 accounts, LogicSig accounts, and multisig accounts
// all plug in the same way.
package signing

import (
	"fmt"
	"sync"

	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/algorand/go-algorand-sdk/v2/types"
)

// Registry maps addresses to signing capabilities.
// The zero value is not usable; call NewRegistry.
type Registry struct {
	mu      sync.RWMutex
	signers map[types.Address]transaction.TransactionSigner
}

// NewRegistry creates an empty signer registry.
func NewRegistry() *Registry {
	return &Registry{
		signers: make(map[types.Address]transaction.TransactionSigner),
	}
}

// Register associates a signer with an address, replacing any previous entry.
func (r *Registry) Register(addr types.Address, signer transaction.TransactionSigner) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.signers[addr] = signer
}

// RegisterAccount registers a basic ed25519 account under its own address.
func (r *Registry) RegisterAccount(account crypto.Account) {
	r.Register(account.Address, transaction.BasicAccountTransactionSigner{Account: account})
}

// Signer returns the signing capability registered for an address.
func (r *Registry) Signer(addr types.Address) (transaction.TransactionSigner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	signer, ok := r.signers[addr]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSigner, addr.String())
	}
	return signer, nil
}

// Addresses returns all addresses with a registered signer.
func (r *Registry) Addresses() []types.Address {
	r.mu.RLock()
	defer r.mu.RUnlock()
	addrs := make([]types.Address, 0, len(r.signers))
	for addr := range r.signers {
		addrs = append(addrs, addr)
	}
	return addrs
}
