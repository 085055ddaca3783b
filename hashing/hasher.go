package hashing

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Hasher is the interface satisfied by [BcryptHasher] and accepted by the
// identity adapters, so tests and callers can substitute their own.
//
// All implementations must be safe for concurrent use by multiple goroutines.
type Hasher interface {
	// Make hashes a plaintext password and returns the encoded hash string.
	// A fresh cryptographic salt is generated for every call, so two calls
	// with the same password will produce different outputs.
	Make(password string) (string, error)

	// Verify checks password against a previously encoded hash and reports
	// one of [Failed], [Success] or [SuccessRehashNeeded].
	//
	// Comparison is performed in constant time to prevent timing attacks.
	Verify(password, hash string) (Outcome, error)

	// NeedsRehash reports whether hash was produced with parameters that
	// differ from the hasher's current configuration.
	NeedsRehash(hash string) (bool, error)

	// Info extracts metadata from an encoded hash string without verifying it.
	// Useful for auditing, migration tooling, or logging.
	Info(hash string) (HashInfo, error)
}

// HashInfo carries the fields of a bcrypt modular crypt string:
//
//	$<version>$<cost>$<22-char salt><31-char checksum>
type HashInfo struct {
	// Version is the algorithm revision without dollar signs, e.g. "2a" or "2b".
	Version string

	// Cost is the embedded work factor.
	Cost int

	// Salt is the 22-character bcrypt-base64 salt.
	Salt string

	// Checksum is the 31-character bcrypt-base64 hash output.
	Checksum string
}

const (
	encodedSaltLen     = 22
	encodedChecksumLen = 31

	// bcryptAlphabet is bcrypt's base64 alphabet, which differs from RFC 4648.
	bcryptAlphabet = "./ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// ParseHash splits a bcrypt modular crypt string into its fields.
//
// It checks structure only and does not verify anything.  Any deviation from
// the format returns an error wrapping [ErrMalformedHash].
func ParseHash(hash string) (HashInfo, error) {
	// "$2a$10$<53 chars>" splits into "", "2a", "10", "<53 chars>".
	parts := strings.Split(hash, "$")
	if len(parts) != 4 || parts[0] != "" {
		return HashInfo{}, fmt.Errorf("%w: expected $<version>$<cost>$<salt+hash>", ErrMalformedHash)
	}

	version := parts[1]
	switch version {
	case "2", "2a", "2b", "2x", "2y":
	default:
		return HashInfo{}, fmt.Errorf("%w: unsupported version %q", ErrMalformedHash, version)
	}

	c := parts[2]
	if len(c) != 2 || !isDigit(c[0]) || !isDigit(c[1]) {
		return HashInfo{}, fmt.Errorf("%w: cost must be two digits, got %q", ErrMalformedHash, c)
	}
	cost := int(c[0]-'0')*10 + int(c[1]-'0')
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return HashInfo{}, fmt.Errorf("%w: cost %d outside [%d, %d]",
			ErrMalformedHash, cost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	payload := parts[3]
	if len(payload) != encodedSaltLen+encodedChecksumLen {
		return HashInfo{}, fmt.Errorf("%w: salt and checksum must be %d characters, got %d",
			ErrMalformedHash, encodedSaltLen+encodedChecksumLen, len(payload))
	}
	if i := strings.IndexFunc(payload, notBcryptBase64); i >= 0 {
		return HashInfo{}, fmt.Errorf("%w: invalid character %q at offset %d",
			ErrMalformedHash, payload[i], i)
	}

	return HashInfo{
		Version:  version,
		Cost:     cost,
		Salt:     payload[:encodedSaltLen],
		Checksum: payload[encodedSaltLen:],
	}, nil
}

// IsBcrypt reports whether hash parses as a bcrypt modular crypt string.
func IsBcrypt(hash string) bool {
	_, err := ParseHash(hash)
	return err == nil
}

func notBcryptBase64(r rune) bool {
	return !strings.ContainsRune(bcryptAlphabet, r)
}

// blank reports whether s is empty or whitespace only.
func isDigit(b byte) bool { return '0' <= b && b <= '9' }

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
