package hashing

import (
	"crypto/sha512"
	"encoding/base64"
	"hash"
)

// Strategy transforms a plaintext password into the bytes handed to bcrypt.
//
// A hash produced under one strategy only verifies under the same strategy;
// strategies are never inferred from the stored hash.  Implementations must
// be deterministic and safe for concurrent use.
type Strategy interface {
	// Name identifies the strategy in configuration and diagnostics.
	Name() string

	// Prepare returns the bcrypt input for password.
	Prepare(password string) []byte
}

// Plain passes the password to bcrypt unchanged.  It is the default.
var Plain Strategy = plainStrategy{}

// EnhancedEntropy pre-hashes the password with SHA-384 before bcrypt so that
// input beyond bcrypt's 72-byte limit still contributes to the hash.
//
// Deprecated: hashes made with EnhancedEntropy never verify under [Plain] and
// vice versa, and mixing both across a credential population gives an
// attacker holding a plaintext from one configuration an oracle against the
// other.  Do not switch it on or off for existing hashes without a migration
// plan.  It remains for verifying credentials that already depend on it.
var EnhancedEntropy = PreHashed("sha384", sha512.New384)

type plainStrategy struct{}

func (plainStrategy) Name() string { return "plain" }

func (plainStrategy) Prepare(password string) []byte { return []byte(password) }

// PreHashed returns a Strategy that digests the password with digest and
// hands the standard Base64 encoding of the sum to bcrypt.  The encoded sum
// must stay within 72 bytes, which holds for digests up to 54 bytes.
//
// Strategies compare by identity: each call returns a distinct value.
func PreHashed(name string, digest func() hash.Hash) Strategy {
	return &preHashedStrategy{name: name, digest: digest}
}

type preHashedStrategy struct {
	name   string
	digest func() hash.Hash
}

func (s *preHashedStrategy) Name() string { return s.name }

func (s *preHashedStrategy) Prepare(password string) []byte {
	h := s.digest()
	h.Write([]byte(password))
	sum := h.Sum(nil)
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum)
	return out
}
