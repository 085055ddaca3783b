package identity

import (
	"context"
	"errors"
	"fmt"

	logging "github.com/op/go-logging"

	"github.com/hasbyte1/bcrypt-identity/hashing"
)

const logModule = "identity"

var log = logging.MustGetLogger(logModule)

// Authenticator verifies passwords against a [CredentialStore] and upgrades
// hashes that no longer follow the current policy.
//
// On [hashing.SuccessRehashNeeded] Login hashes the password again and
// swaps it into the store, provided the stored hash has not changed in the
// meantime.  Upgrade failures are logged and never fail the login.
type Authenticator[U any] struct {
	hasher PasswordHasher[U]
	store  CredentialStore
	userID func(U) string

	// dummyHash is verified against for unknown users.
	dummyHash string
}

// NewAuthenticator returns an Authenticator.  userID maps a user to the key
// used in store.
//
// It hashes a placeholder password once, at the hasher's cost, so that
// logins for unknown users can be made as slow as real ones.
func NewAuthenticator[U any](hasher PasswordHasher[U], store CredentialStore, userID func(U) string) *Authenticator[U] {
	var zero U
	dummy, err := hasher.HashPassword(zero, "identity-timing-placeholder")
	if err != nil {
		log.Warningf("cannot prepare timing placeholder hash: %v", err)
	}
	return &Authenticator[U]{hasher: hasher, store: store, userID: userID, dummyHash: dummy}
}

// SetPassword hashes password and stores it for user.
func (a *Authenticator[U]) SetPassword(ctx context.Context, user U, password string) error {
	hash, err := a.hasher.HashPassword(user, password)
	if err != nil {
		return err
	}
	if err := a.store.Put(ctx, a.userID(user), hash); err != nil {
		return fmt.Errorf("identity: store credential: %w", err)
	}
	return nil
}

// Login verifies password for user.
//
// The returned outcome is the verification result; when it is
// [hashing.SuccessRehashNeeded] the upgrade has already been attempted.
// A user without a stored credential yields [hashing.Failed] with
// [ErrCredentialNotFound], after the same amount of hashing work as a wrong
// password.
func (a *Authenticator[U]) Login(ctx context.Context, user U, password string) (hashing.Outcome, error) {
	if isBlank(password) {
		return hashing.Failed, &hashing.ArgumentError{Param: "password"}
	}
	id := a.userID(user)
	stored, err := a.store.Get(ctx, id)
	if errors.Is(err, ErrCredentialNotFound) {
		a.equalizeTiming(user, password)
		return hashing.Failed, err
	}
	if err != nil {
		return hashing.Failed, fmt.Errorf("identity: load credential: %w", err)
	}

	outcome, err := a.hasher.VerifyHashedPassword(user, stored, password)
	if err != nil {
		if errors.Is(err, hashing.ErrMalformedHash) {
			log.Warningf("stored credential for user %s is malformed", id)
		}
		return outcome, err
	}
	if outcome.NeedsRehash() {
		a.upgrade(ctx, user, id, stored, password)
	}
	return outcome, nil
}

func (a *Authenticator[U]) upgrade(ctx context.Context, user U, id, stored, password string) {
	upgraded, err := a.hasher.HashPassword(user, password)
	if err != nil {
		log.Errorf("password hash upgrade generation failed for user %s: %v", id, err)
		return
	}
	swapped, err := a.store.CompareAndSwap(ctx, id, stored, upgraded)
	if err != nil {
		log.Errorf("password hash upgrade update failed for user %s: %v", id, err)
		return
	}
	if !swapped {
		log.Debugf("credential for user %s changed during login; upgrade skipped", id)
		return
	}
	log.Debugf("upgraded password hash for user %s", id)
}

// equalizeTiming runs a verification against a throwaway hash so that
// unknown users cost as much as known ones.
func (a *Authenticator[U]) equalizeTiming(user U, password string) {
	if a.dummyHash == "" || isBlank(password) {
		return
	}
	_, _ = a.hasher.VerifyHashedPassword(user, a.dummyHash, password)
}
