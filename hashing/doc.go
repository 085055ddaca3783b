// Package hashing is a bcrypt password-hashing policy layer for identity
// systems.
//
// bcrypt itself comes from golang.org/x/crypto/bcrypt.  This package decides
// how it is parameterised and reports when a stored hash should be upgraded.
//
// # Architecture
//
// [Options] is the policy: a work factor and a password [Strategy].
// [BcryptHasher] binds one immutable Options value and exposes Make and
// Verify.  Verify returns an [Outcome] rather than a bool:
//
//   - [Failed]: wrong password (never an error)
//   - [Success]: correct password, hash follows current policy
//   - [SuccessRehashNeeded]: correct password, hash made with another cost
//
// The [Manager] is a named policy registry for applications with more than
// one credential population.
//
// # Quick start
//
//	h := hashing.NewDefault() // cost 11, plain strategy
//
//	hash, _ := h.Make("my-secret-password")
//	outcome, _ := h.Verify("my-secret-password", hash) // Success
//
// # Cost migration
//
// Re-hash on every [SuccessRehashNeeded] and persist the result.  Raising the
// configured cost then upgrades each credential at its owner's next login:
//
//	outcome, err := h.Verify(password, storedHash)
//	switch {
//	case err != nil:
//	    return err // blank input or corrupted hash
//	case !outcome.OK():
//	    return errWrongPassword
//	case outcome.NeedsRehash():
//	    if newHash, err := h.Make(password); err == nil {
//	        persist(userID, newHash)
//	    }
//	}
//
// # Errors
//
// Blank passwords and hashes are rejected with [ErrInvalidArgument] before
// any hashing happens.  Hashes that do not parse as modular crypt strings
// yield [ErrMalformedHash] together with [Failed], so monitoring can tell
// corrupted data from wrong passwords.
//
// bcrypt reads at most 72 bytes of input.  Under [Plain], Make rejects a
// longer password with [ErrPasswordTooLong] instead of truncating it, so
// every password Make accepts verifies as [Success] against its own hash.
// Verify applies no length limit.  Choose a [PreHashed] strategy, or cap
// password length at registration, when longer passwords must be accepted.
//
// # Entropy extension
//
// [EnhancedEntropy] pre-hashes passwords with SHA-384.  It is deprecated:
// a hash made with it never verifies without it, and the reverse.  The
// strategy is taken from the hasher's Options, never from the stored hash.
//
// # Blocking
//
// Make and Verify block for tens to hundreds of milliseconds by design and
// cannot be cancelled.  [MakeContext], [VerifyContext] and [Limiter] run them
// on separate goroutines and give up waiting when a context ends.
package hashing
