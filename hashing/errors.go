package hashing

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by hashing operations.
//
// Use [errors.Is] for comparisons:
//
//	outcome, err := hasher.Verify(password, hash)
//	if errors.Is(err, hashing.ErrMalformedHash) {
//	    // stored hash is corrupted, not a wrong password
//	}
var (
	// ErrInvalidArgument is returned when a password or stored hash is empty
	// or consists only of whitespace.  It signals a programming error in the
	// caller and is always raised before any cryptographic work begins.
	// The concrete error is an [*ArgumentError] naming the offending parameter.
	ErrInvalidArgument = errors.New("hashing: invalid argument")

	// ErrMalformedHash is returned when a stored hash string is not a
	// structurally valid bcrypt modular crypt string.  Verification returns
	// [Failed] alongside it so that callers that only branch on the outcome
	// still deny access.
	ErrMalformedHash = errors.New("hashing: malformed bcrypt hash")

	// ErrInvalidOption is returned when a constructor is called with a
	// parameter value that falls outside the allowed range (e.g., a bcrypt
	// cost below 4 or above 31).
	ErrInvalidOption = errors.New("hashing: invalid option value")

	// ErrPasswordTooLong is returned by Make when the password handed to
	// bcrypt exceeds 72 bytes.  bcrypt would otherwise silently ignore the
	// remainder.
	ErrPasswordTooLong = errors.New("hashing: password exceeds 72 bytes")

	// ErrPolicyNotFound is returned by [Manager.Policy] or indirectly by
	// [Manager.Make] / [Manager.Verify] when the requested policy has not
	// been registered.
	ErrPolicyNotFound = errors.New("hashing: policy not found")

	// ErrEmptyPolicyName is returned by [Manager.Register] when the supplied
	// policy name is an empty string.
	ErrEmptyPolicyName = errors.New("hashing: policy name must not be empty")

	// ErrNilHasher is returned by [Manager.Register] when a nil hasher is
	// supplied.
	ErrNilHasher = errors.New("hashing: hasher must not be nil")
)

// ArgumentError reports a blank password or hash argument.
//
// It matches [ErrInvalidArgument] under [errors.Is]; use [errors.As] to find
// out which parameter was rejected.
type ArgumentError struct {
	// Param is the name of the rejected parameter ("password" or "hash").
	Param string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("hashing: invalid argument %q: must not be empty or whitespace", e.Param)
}

// Unwrap returns [ErrInvalidArgument].
func (e *ArgumentError) Unwrap() error { return ErrInvalidArgument }
