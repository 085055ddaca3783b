package identity

import (
	"github.com/hasbyte1/bcrypt-identity/hashing"
)

// PasswordHasher is the contract identity frameworks call to hash and verify
// user passwords.  U is the framework's user type; implementations may key
// hashing per user but are not required to.
type PasswordHasher[U any] interface {
	// HashPassword returns an encoded hash of password for user.
	HashPassword(user U, password string) (string, error)

	// VerifyHashedPassword checks providedPassword against hashedPassword,
	// the value previously returned by HashPassword.
	VerifyHashedPassword(user U, hashedPassword, providedPassword string) (hashing.Outcome, error)
}

// BcryptPasswordHasher implements [PasswordHasher] with a [hashing.Hasher].
// The user argument is accepted for compatibility and ignored.
type BcryptPasswordHasher[U any] struct {
	hasher hashing.Hasher
}

var _ PasswordHasher[string] = (*BcryptPasswordHasher[string])(nil)

// NewBcryptPasswordHasher builds a BcryptPasswordHasher from opts.  Nil opts
// selects [hashing.DefaultOptions].
func NewBcryptPasswordHasher[U any](opts *hashing.Options) (*BcryptPasswordHasher[U], error) {
	o := hashing.DefaultOptions()
	if opts != nil {
		o = *opts
	}
	h, err := hashing.New(o)
	if err != nil {
		return nil, err
	}
	return &BcryptPasswordHasher[U]{hasher: h}, nil
}

// WrapHasher adapts an existing hasher, such as a policy taken from a
// [hashing.Manager].
func WrapHasher[U any](h hashing.Hasher) *BcryptPasswordHasher[U] {
	return &BcryptPasswordHasher[U]{hasher: h}
}

// HashPassword hashes password.  A blank password yields an error matching
// [hashing.ErrInvalidArgument].
func (b *BcryptPasswordHasher[U]) HashPassword(_ U, password string) (string, error) {
	return b.hasher.Make(password)
}

// VerifyHashedPassword verifies providedPassword against hashedPassword.
//
// The stored hash is validated before the password, so a call with both
// blank reports the "hash" parameter.
func (b *BcryptPasswordHasher[U]) VerifyHashedPassword(_ U, hashedPassword, providedPassword string) (hashing.Outcome, error) {
	if isBlank(hashedPassword) {
		return hashing.Failed, &hashing.ArgumentError{Param: "hash"}
	}
	return b.hasher.Verify(providedPassword, hashedPassword)
}
