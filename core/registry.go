package core

import "sync"

// Registry is a read-side wrapper over a StateFacade: a thin manager holding
// a lock around a handful of convenience accessors, used by the REST
// gateway's listing endpoints. The lock is only ever read-locked, so it does
// not exclude writers that reach the facade directly (core.Apply); each
// accessor is a single StateStore Get or PrefixScan, so a listing is as
// consistent as that one store call.
type Registry struct {
	mu    sync.RWMutex
	state *StateFacade
}

// NewRegistry constructs a Registry bound to the given facade.
func NewRegistry(state *StateFacade) *Registry {
	return &Registry{state: state}
}

// Accounts lists every registered account.
func (r *Registry) Accounts() ([]Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state.ListAccounts()
}

// Tokens lists every issued token.
func (r *Registry) Tokens() ([]Token, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state.ListTokens()
}

// HoldersOf lists every balance held against the named token.
func (r *Registry) HoldersOf(identifier string) ([]Balance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state.HoldersOf(identifier)
}

// TokensHeldBy lists every balance a given public key holds.
func (r *Registry) TokensHeldBy(pkey string) ([]Balance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state.TokensHeldBy(pkey)
}

// Balance returns a single (account, token) balance.
func (r *Registry) Balance(pkey, identifier string) (Balance, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state.GetBalance(pkey, identifier)
}
