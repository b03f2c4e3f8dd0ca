package application

import (
	"sync"
	"time"
)

// RevocationStore records signed-out credentials. Membership is consulted
// synchronously on every session validation, so an insert is effective for
// all subsequent validations immediately.
type RevocationStore interface {
	Revoke(token string, expiresAt time.Time)
	IsRevoked(token string) bool
}

// TokenRevocations is an in-memory RevocationStore keyed by the raw token.
// Entries live until the token's own expiry, after which the natural expiry
// check makes the entry redundant; stale entries are swept lazily on insert
// and lookup. The store is process-local: a restart forgets revocations and
// multiple instances do not share state, which mirrors the deployment this
// service replaces.
type TokenRevocations struct {
	mu      sync.RWMutex
	now     func() time.Time
	entries map[string]time.Time
}

// NewTokenRevocations constructs an empty store. A nil now falls back to
// time.Now.
func NewTokenRevocations(now func() time.Time) *TokenRevocations {
	if now == nil {
		now = time.Now
	}
	return &TokenRevocations{
		now:     now,
		entries: make(map[string]time.Time),
	}
}

// Revoke marks the token as signed out until expiresAt. A zero expiry keeps
// the entry for the remaining process lifetime.
func (s *TokenRevocations) Revoke(token string, expiresAt time.Time) {
	if s == nil || token == "" {
		return
	}
	s.mu.Lock()
	s.sweepLocked()
	s.entries[token] = expiresAt
	s.mu.Unlock()
}

// IsRevoked reports whether the token has been signed out.
func (s *TokenRevocations) IsRevoked(token string) bool {
	if s == nil || token == "" {
		return false
	}

	s.mu.RLock()
	expiresAt, ok := s.entries[token]
	s.mu.RUnlock()
	if !ok {
		return false
	}

	if !expiresAt.IsZero() && !expiresAt.After(s.now()) {
		s.mu.Lock()
		delete(s.entries, token)
		s.mu.Unlock()
		return false
	}
	return true
}

// Len reports the number of live entries, sweeping expired ones first.
func (s *TokenRevocations) Len() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	s.sweepLocked()
	n := len(s.entries)
	s.mu.Unlock()
	return n
}

func (s *TokenRevocations) sweepLocked() {
	now := s.now()
	for token, expiresAt := range s.entries {
		if !expiresAt.IsZero() && !expiresAt.After(now) {
			delete(s.entries, token)
		}
	}
}
