package hashing

import (
	"fmt"
	"sort"
	"sync"
)

// Manager is a thread-safe registry of named hashing policies.
//
// Applications with more than one credential population (for example
// end users and service accounts) register one [BcryptHasher] per
// population, nominate a default, and route Make / Verify through the
// Manager or through [Manager.Policy].
//
// # Thread safety
//
// All Manager methods are safe for concurrent use by multiple goroutines.
// A [sync.RWMutex] serialises writes (Register, SetDefault) while allowing
// concurrent reads.  Hashing itself runs outside the lock.
type Manager struct {
	mu       sync.RWMutex
	policies map[string]*BcryptHasher
	def      string
}

// NewManager creates an empty Manager with the given default policy name.
// Policies must be registered with [Manager.Register] before any hashing
// operation is invoked through the Manager.
func NewManager(defaultPolicy string) *Manager {
	return &Manager{
		policies: make(map[string]*BcryptHasher),
		def:      defaultPolicy,
	}
}

// Register adds or replaces a named policy.
func (m *Manager) Register(name string, h *BcryptHasher) error {
	if name == "" {
		return ErrEmptyPolicyName
	}
	if h == nil {
		return ErrNilHasher
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.policies[name] = h
	return nil
}

// Policy returns the hasher registered under name, or [ErrPolicyNotFound].
func (m *Manager) Policy(name string) (*BcryptHasher, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.policies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPolicyNotFound, name)
	}
	return h, nil
}

// SetDefault changes the policy used by [Manager.Make] and [Manager.Verify].
// The named policy must already be registered.
func (m *Manager) SetDefault(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.policies[name]; !ok {
		return fmt.Errorf("%w: %q is not registered; call Register first",
			ErrPolicyNotFound, name)
	}
	m.def = name
	return nil
}

// DefaultName returns the name of the current default policy.
func (m *Manager) DefaultName() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.def
}

// Default returns the hasher of the current default policy.
func (m *Manager) Default() (*BcryptHasher, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.policies[m.def]
	if !ok {
		return nil, fmt.Errorf("%w: default policy %q has not been registered",
			ErrPolicyNotFound, m.def)
	}
	return h, nil
}

// Names returns the registered policy names in sorted order.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.policies))
	for name := range m.policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Make hashes password under the default policy.
func (m *Manager) Make(password string) (string, error) {
	h, err := m.Default()
	if err != nil {
		return "", err
	}
	return h.Make(password)
}

// Verify checks password against hash under the default policy.
//
// To verify under a specific policy, use [Manager.Policy] first:
//
//	h, err := m.Policy("service-accounts")
//	outcome, err := h.Verify(password, hash)
func (m *Manager) Verify(password, hash string) (Outcome, error) {
	h, err := m.Default()
	if err != nil {
		return Failed, err
	}
	return h.Verify(password, hash)
}
