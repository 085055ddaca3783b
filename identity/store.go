package identity

import (
	"context"
	"errors"
	"strings"
)

// ErrCredentialNotFound is returned by a [CredentialStore] when no hash is
// stored for the requested user.
var ErrCredentialNotFound = errors.New("identity: credential not found")

// CredentialStore persists encoded password hashes keyed by user ID.
// Callers must provide their own implementation for their chosen storage
// backend.  Reference implementations live in identity/inmemory and
// identity/redisstore.
type CredentialStore interface {
	// Get returns the stored hash for userID, or [ErrCredentialNotFound].
	Get(ctx context.Context, userID string) (string, error)

	// Put stores hash for userID, replacing any previous value.
	Put(ctx context.Context, userID, hash string) error

	// CompareAndSwap replaces the hash for userID with newHash only if the
	// current value equals oldHash.  It reports whether the swap happened.
	CompareAndSwap(ctx context.Context, userID, oldHash, newHash string) (bool, error)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
