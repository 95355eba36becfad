package memory

import (
	"context"
	"sync"
	"time"

	customErrors "github.com/drivelane/carmarket/internal/domain/auth/errors"
)

// MemoryTokenRegistry is the in-process registry used in tests and
// single-node development. State does not survive a restart: a restart
// invalidates all outstanding refresh tokens.
type MemoryTokenRegistry struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func NewMemoryTokenRegistry() *MemoryTokenRegistry {
	return &MemoryTokenRegistry{entries: make(map[string]time.Time)}
}

func (m *MemoryTokenRegistry) Record(_ context.Context, jti string, exp time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[jti] = exp
	return nil
}

func (m *MemoryTokenRegistry) IsValid(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.live(jti), nil
}

func (m *MemoryTokenRegistry) Rotate(_ context.Context, oldJTI, newJTI string, exp time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.live(oldJTI) {
		return customErrors.ErrTokenRevoked
	}
	delete(m.entries, oldJTI)
	m.entries[newJTI] = exp
	return nil
}

func (m *MemoryTokenRegistry) Revoke(_ context.Context, jti string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, jti)
	return nil
}

// live reports membership and sweeps the entry if its deadline passed.
// Caller holds mu.
func (m *MemoryTokenRegistry) live(jti string) bool {
	exp, ok := m.entries[jti]
	if !ok {
		return false
	}
	if time.Now().After(exp) {
		delete(m.entries, jti)
		return false
	}
	return true
}
