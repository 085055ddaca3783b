package hashing

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is the longest input bcrypt consumes.
const maxPasswordBytes = 72

// BcryptHasher hashes and verifies passwords with bcrypt under a fixed policy.
//
// Bcrypt internally generates and stores a 128-bit (16-byte) random salt,
// so callers never need to manage salts explicitly.
//
// # Rehash signalling
//
// [BcryptHasher.Verify] returns [SuccessRehashNeeded] when a correct password
// was hashed with a different cost than the hasher's.  Re-hash and persist on
// that outcome and a cost change rolls out one login at a time, without a
// bulk migration.
//
// # Thread safety
//
// BcryptHasher is immutable after construction and safe for concurrent use.
// Make and Verify are CPU-bound and block for as long as the cost demands;
// see [MakeContext] and [VerifyContext] for abandoning slow calls.
type BcryptHasher struct {
	opts Options
}

var _ Hasher = (*BcryptHasher)(nil)

// New constructs a BcryptHasher with the provided options.  Zero fields fall
// back to their defaults.  Returns [ErrInvalidOption] if Cost is outside
// [bcrypt.MinCost, bcrypt.MaxCost] or if EnhancedEntropy is set together
// with a different Strategy.
//
// The Options of an existing hasher are accepted unchanged, so
// New(h.Options()) builds an equivalent hasher.
func New(opts Options) (*BcryptHasher, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &BcryptHasher{opts: opts}, nil
}

// NewDefault constructs a BcryptHasher with [DefaultOptions].
func NewDefault() *BcryptHasher {
	return MustNew(DefaultOptions())
}

// MustNew is like [New] but panics on invalid options.  It is intended for
// package-level variables with constant options.
func MustNew(opts Options) *BcryptHasher {
	h, err := New(opts)
	if err != nil {
		panic(err)
	}
	return h
}

// Cost returns the configured bcrypt work factor.
func (h *BcryptHasher) Cost() int { return h.opts.Cost }

// Strategy returns the configured password transform.
func (h *BcryptHasher) Strategy() Strategy { return h.opts.Strategy }

// Options returns the fully populated options the hasher was built with.
func (h *BcryptHasher) Options() Options { return h.opts }

// Make hashes password with bcrypt and returns the modular crypt string
// (e.g., "$2a$11$...").  A fresh random salt is generated for every call.
//
// A blank password yields an [*ArgumentError].  Under the [Plain] strategy
// a password longer than 72 bytes yields [ErrPasswordTooLong].
func (h *BcryptHasher) Make(password string) (string, error) {
	if blank(password) {
		return "", &ArgumentError{Param: "password"}
	}
	input := h.opts.Strategy.Prepare(password)
	if len(input) > maxPasswordBytes {
		return "", fmt.Errorf("%w: got %d bytes after %s transform",
			ErrPasswordTooLong, len(input), h.opts.Strategy.Name())
	}
	hash, err := bcrypt.GenerateFromPassword(input, h.opts.Cost)
	if err != nil {
		return "", fmt.Errorf("hashing: bcrypt: failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify checks password against hash.
//
// Blank arguments yield an [*ArgumentError] naming the parameter, with the
// password checked first.  A hash that is not a valid bcrypt string yields
// ([Failed], [ErrMalformedHash]).  A wrong password is ([Failed], nil).
// A correct password is [Success], or [SuccessRehashNeeded] when the cost
// embedded in hash differs from the hasher's.
//
// The configured strategy is always applied; it is never inferred from hash.
func (h *BcryptHasher) Verify(password, hash string) (Outcome, error) {
	if blank(password) {
		return Failed, &ArgumentError{Param: "password"}
	}
	if blank(hash) {
		return Failed, &ArgumentError{Param: "hash"}
	}
	info, err := ParseHash(hash)
	if err != nil {
		return Failed, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(hash), h.opts.Strategy.Prepare(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return Failed, nil
	}
	if err != nil {
		return Failed, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}

	if info.Cost != h.opts.Cost {
		return SuccessRehashNeeded, nil
	}
	return Success, nil
}

// NeedsRehash reports whether the work factor encoded in hash differs from
// the hasher's configured cost.  A lower stored cost means the hash is less
// secure than the current configuration; a higher stored cost means the
// configuration was intentionally dialled back.
func (h *BcryptHasher) NeedsRehash(hash string) (bool, error) {
	if blank(hash) {
		return false, &ArgumentError{Param: "hash"}
	}
	info, err := ParseHash(hash)
	if err != nil {
		return false, err
	}
	return info.Cost != h.opts.Cost, nil
}

// Info parses hash and returns its fields.  It is [ParseHash] with the
// blank-argument check applied.
func (h *BcryptHasher) Info(hash string) (HashInfo, error) {
	if blank(hash) {
		return HashInfo{}, &ArgumentError{Param: "hash"}
	}
	return ParseHash(hash)
}
