// Package inmemory provides a thread-safe in-memory implementation of
// [identity.CredentialStore].
//
// It is intended for use in tests and prototyping. Do not use it in production.
package inmemory

import (
	"context"
	"sync"

	"github.com/hasbyte1/bcrypt-identity/identity"
)

// Store is a thread-safe in-memory implementation of [identity.CredentialStore].
type Store struct {
	mu     sync.RWMutex
	hashes map[string]string // keyed by user ID
}

var _ identity.CredentialStore = (*Store)(nil)

// New creates an empty [Store].
func New() *Store {
	return &Store{hashes: make(map[string]string)}
}

// Get returns the hash stored for userID. Returns [identity.ErrCredentialNotFound] when absent.
func (s *Store) Get(_ context.Context, userID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.hashes[userID]
	if !ok {
		return "", identity.ErrCredentialNotFound
	}
	return h, nil
}

// Put stores hash for userID.
func (s *Store) Put(_ context.Context, userID, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hashes[userID] = hash
	return nil
}

// CompareAndSwap replaces the hash for userID when it still equals oldHash.
func (s *Store) CompareAndSwap(_ context.Context, userID, oldHash, newHash string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.hashes[userID]
	if !ok {
		return false, identity.ErrCredentialNotFound
	}
	if cur != oldHash {
		return false, nil
	}
	s.hashes[userID] = newHash
	return true, nil
}

// Delete removes the credential for userID. Deleting a missing user is a no-op.
func (s *Store) Delete(_ context.Context, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.hashes, userID)
}

// Len returns the number of stored credentials.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.hashes)
}
