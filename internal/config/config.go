// Package config loads hashing policies from a YAML file and the environment.
//
// A configuration file names one or more policies and a default:
//
//	default: users
//	policies:
//	  users:
//	    cost: 11
//	  legacy:
//	    cost: 10
//	    pre_hash: sha384
//
// BCRYPT_IDENTITY_POLICY overrides the default policy name and
// BCRYPT_IDENTITY_COST overrides the cost of the default policy.
package config

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"

	"gopkg.in/yaml.v2"

	"github.com/hasbyte1/bcrypt-identity/hashing"
)

const (
	// DefaultPolicyName names the policy used when a file declares none.
	DefaultPolicyName = "default"

	// EnvPolicy overrides the default policy name.
	EnvPolicy = "BCRYPT_IDENTITY_POLICY"
	// EnvCost overrides the cost of the default policy.
	EnvCost = "BCRYPT_IDENTITY_COST"
)

// ErrInvalidConfig is returned for configuration that cannot produce a
// working set of policies.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Policy is the YAML form of [hashing.Options].
type Policy struct {
	Cost int `yaml:"cost"`

	// EnhancedEntropy is kept for files written against earlier releases.
	// It is equivalent to pre_hash: sha384.
	EnhancedEntropy bool `yaml:"enhanced_entropy"`

	// PreHash selects the password transform: "plain" (default), "sha256"
	// or "sha384".
	PreHash string `yaml:"pre_hash"`
}

// Config is a set of named policies with a default.
type Config struct {
	Default  string            `yaml:"default"`
	Policies map[string]Policy `yaml:"policies"`
}

// Default returns a Config with a single policy using [hashing.DefaultOptions].
func Default() *Config {
	return &Config{
		Default: DefaultPolicyName,
		Policies: map[string]Policy{
			DefaultPolicyName: {Cost: hashing.DefaultCost},
		},
	}
}

// Load reads the file at path, applies environment overrides and validates
// the result.  An empty path yields [Default] with environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if cfg, err = Parse(data); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML.  Unknown keys are rejected.  A document without
// policies yields [Default].  Parse does not validate; call [Config.Validate].
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if len(cfg.Policies) == 0 {
		def := Default()
		if cfg.Default != "" {
			def.Policies = map[string]Policy{cfg.Default: def.Policies[DefaultPolicyName]}
			def.Default = cfg.Default
		}
		return def, nil
	}
	if cfg.Default == "" && len(cfg.Policies) == 1 {
		for name := range cfg.Policies {
			cfg.Default = name
		}
	}
	return &cfg, nil
}

// ApplyEnv applies [EnvPolicy] and [EnvCost] using lookup, typically
// [os.LookupEnv].
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if name, ok := lookup(EnvPolicy); ok && name != "" {
		c.Default = name
	}
	if raw, ok := lookup(EnvCost); ok && raw != "" {
		cost, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, EnvCost, raw)
		}
		if c.Policies == nil {
			c.Policies = make(map[string]Policy)
		}
		p := c.Policies[c.Default]
		p.Cost = cost
		c.Policies[c.Default] = p
	}
	return nil
}

// Validate checks that the default policy exists and every policy builds.
func (c *Config) Validate() error {
	if c.Default == "" {
		return fmt.Errorf("%w: no default policy named", ErrInvalidConfig)
	}
	if _, ok := c.Policies[c.Default]; !ok {
		return fmt.Errorf("%w: default policy %q is not defined", ErrInvalidConfig, c.Default)
	}
	for _, name := range c.names() {
		if _, err := c.Policies[name].hasher(); err != nil {
			return fmt.Errorf("%w: policy %q: %v", ErrInvalidConfig, name, err)
		}
	}
	return nil
}

// Manager builds a [hashing.Manager] holding every policy.
func (c *Config) Manager() (*hashing.Manager, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	m := hashing.NewManager(c.Default)
	for _, name := range c.names() {
		h, _ := c.Policies[name].hasher()
		if err := m.Register(name, h); err != nil {
			return nil, fmt.Errorf("%w: policy %q: %v", ErrInvalidConfig, name, err)
		}
	}
	return m, nil
}

func (c *Config) names() []string {
	names := make([]string, 0, len(c.Policies))
	for name := range c.Policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Options converts p to [hashing.Options].
func (p Policy) Options() (hashing.Options, error) {
	opts := hashing.Options{Cost: p.Cost}
	switch p.PreHash {
	case "":
		if p.EnhancedEntropy {
			opts.Strategy = hashing.EnhancedEntropy
		}
	case "sha384":
		opts.Strategy = hashing.EnhancedEntropy
	case "plain", "sha256":
		if p.EnhancedEntropy {
			return hashing.Options{}, fmt.Errorf("enhanced_entropy conflicts with pre_hash %s", p.PreHash)
		}
		opts.Strategy = hashing.Plain
		if p.PreHash == "sha256" {
			opts.Strategy = hashing.PreHashed("sha256", sha256.New)
		}
	default:
		return hashing.Options{}, fmt.Errorf("unknown pre_hash %q", p.PreHash)
	}
	return opts, nil
}

func (p Policy) hasher() (*hashing.BcryptHasher, error) {
	opts, err := p.Options()
	if err != nil {
		return nil, err
	}
	return hashing.New(opts)
}
