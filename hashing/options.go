package hashing

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the bcrypt work factor used when none is configured.
	//
	// Earlier releases defaulted to [LegacyDefaultCost].  Hashes created
	// under that default verify as [SuccessRehashNeeded] under this one and
	// are upgraded as users log in.
	DefaultCost = 11

	// LegacyDefaultCost is the default work factor of earlier releases.
	// Configure it explicitly to keep the old behaviour.
	LegacyDefaultCost = 10
)

// Options configures a [BcryptHasher].
//
// Options is a plain value.  [New] copies it, so changing an Options after
// construction has no effect on the hasher.
type Options struct {
	// Cost is the bcrypt work factor (logarithmic).
	// Valid range: [bcrypt.MinCost (4), bcrypt.MaxCost (31)].
	// Zero selects [DefaultCost] (11).
	Cost int

	// EnhancedEntropy selects the [EnhancedEntropy] strategy.
	//
	// Deprecated: see [EnhancedEntropy].  Set Strategy instead when a
	// pre-hash is genuinely required.
	EnhancedEntropy bool

	// Strategy overrides the password transform.  Nil selects [Plain], or
	// [EnhancedEntropy] when the EnhancedEntropy flag is set.  With the flag
	// set, any Strategy other than [EnhancedEntropy] is rejected with
	// [ErrInvalidOption].
	Strategy Strategy
}

// DefaultOptions returns Options with [DefaultCost].  Strategy is left nil
// and resolves to [Plain] at construction unless EnhancedEntropy is set.
func DefaultOptions() Options {
	return Options{Cost: DefaultCost}
}

// withDefaults returns a fully populated copy of o.
func (o Options) withDefaults() Options {
	if o.Cost == 0 {
		o.Cost = DefaultCost
	}
	if o.Strategy == nil {
		if o.EnhancedEntropy {
			o.Strategy = EnhancedEntropy
		} else {
			o.Strategy = Plain
		}
	}
	return o
}

func (o Options) validate() error {
	if o.Cost < bcrypt.MinCost || o.Cost > bcrypt.MaxCost {
		return fmt.Errorf("%w: bcrypt cost %d must be in [%d, %d]",
			ErrInvalidOption, o.Cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if o.EnhancedEntropy && o.Strategy != nil && o.Strategy != EnhancedEntropy {
		return fmt.Errorf("%w: EnhancedEntropy conflicts with strategy %s", ErrInvalidOption, o.Strategy.Name())
	}
	return nil
}
