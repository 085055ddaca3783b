// Package redisstore implements [identity.CredentialStore] on Redis.
//
// Each credential is a plain string key holding the encoded hash.
// CompareAndSwap uses WATCH/MULTI so that an upgrade never overwrites a
// password changed by another request.
package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/hasbyte1/bcrypt-identity/identity"
)

// DefaultPrefix is the key prefix used when none is configured.
const DefaultPrefix = "bcrypt-identity:credential"

// maxRetries bounds CompareAndSwap attempts when the watched key changes
// between WATCH and EXEC.
const maxRetries = 4

var (
	// ErrUnavailable wraps Redis transport and server errors.
	ErrUnavailable = errors.New("redisstore: redis unavailable")

	// ErrContended is returned by CompareAndSwap when every attempt was
	// aborted by writes to the key between WATCH and EXEC.
	ErrContended = errors.New("redisstore: credential modified during every swap attempt")
)

// Store is a Redis-backed [identity.CredentialStore].
type Store struct {
	redis  redis.UniversalClient
	prefix string
}

var _ identity.CredentialStore = (*Store)(nil)

// New returns a Store using client.  An empty prefix selects [DefaultPrefix].
func New(client redis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{redis: client, prefix: prefix}
}

func (s *Store) key(userID string) string {
	return s.prefix + ":" + userID
}

// Get returns the hash stored for userID, or [identity.ErrCredentialNotFound].
func (s *Store) Get(ctx context.Context, userID string) (string, error) {
	hash, err := s.redis.Get(ctx, s.key(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", identity.ErrCredentialNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return hash, nil
}

// Put stores hash for userID without expiry.
func (s *Store) Put(ctx context.Context, userID, hash string) error {
	if err := s.redis.Set(ctx, s.key(userID), hash, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// CompareAndSwap replaces the hash for userID when it still equals oldHash.
// It retries a bounded number of times when the key is modified mid-transaction
// and reports false once the stored value no longer matches.  When the
// retries run out it returns [ErrContended].
func (s *Store) CompareAndSwap(ctx context.Context, userID, oldHash, newHash string) (bool, error) {
	key := s.key(userID)

	for i := 0; i < maxRetries; i++ {
		swapped := false

		err := s.redis.Watch(ctx, func(tx *redis.Tx) error {
			cur, err := tx.Get(ctx, key).Result()
			if err != nil {
				return err
			}
			if cur != oldHash {
				return nil
			}
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, newHash, 0)
				return nil
			})
			if err != nil {
				return err
			}
			swapped = true
			return nil
		}, key)

		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return false, identity.ErrCredentialNotFound
			}
			return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return swapped, nil
	}

	return false, fmt.Errorf("%w: %s after %d attempts", ErrContended, key, maxRetries)
}

// Delete removes the credential for userID.
func (s *Store) Delete(ctx context.Context, userID string) error {
	if err := s.redis.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
