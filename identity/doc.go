// Package identity adapts the hashing policy layer to identity frameworks.
//
// [PasswordHasher] is the two-method contract such frameworks consume.  The
// user argument exists for frameworks that key hashing per user; the bcrypt
// implementation ignores it.
//
// [Authenticator] is an optional login helper on top of a [CredentialStore].
// It performs the opportunistic upgrade that [hashing.SuccessRehashNeeded]
// asks for, using a compare-and-swap so that a concurrent password change
// is never overwritten by a stale upgrade.
//
// # What this package must NOT do
//
//   - Log plaintext passwords or encoded hashes.
//   - Infer the hashing strategy from stored hashes.
package identity
