package hashing

// Outcome is the result of verifying a password against a stored hash.
//
// A wrong password is an Outcome, not an error.  Callers must handle all
// three values: on [SuccessRehashNeeded] the password is correct and the
// caller should hash it again with [BcryptHasher.Make] and persist the result.
type Outcome int

const (
	// Failed means the password does not match the stored hash.
	Failed Outcome = iota
	// Success means the password matches and the hash follows current policy.
	Success
	// SuccessRehashNeeded means the password matches but the hash was made
	// with a different work factor than the current policy.
	SuccessRehashNeeded
)

// String returns "failed", "success" or "success_rehash_needed".
func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case SuccessRehashNeeded:
		return "success_rehash_needed"
	default:
		return "failed"
	}
}

// OK reports whether the password was accepted.
func (o Outcome) OK() bool { return o == Success || o == SuccessRehashNeeded }

// NeedsRehash reports whether o is [SuccessRehashNeeded].
func (o Outcome) NeedsRehash() bool { return o == SuccessRehashNeeded }
