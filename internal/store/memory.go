package store

import (
	"context"
	"sync"
	"time"
)

type Memory struct {
	mu     sync.Mutex
	claims map[string]time.Time // key -> expiry
	now    func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		claims: make(map[string]time.Time),
		now:    time.Now,
	}
}

func (m *Memory) Claim(_ context.Context, key string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if exp, ok := m.claims[key]; ok && now.Before(exp) {
		return false, nil
	}
	m.claims[key] = now.Add(ttl)
	m.sweep(now)
	return true, nil
}

func (m *Memory) Release(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.claims, key)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Close() error { return nil }

// sweep drops expired claims. Callers hold m.mu.
func (m *Memory) sweep(now time.Time) {
	for k, exp := range m.claims {
		if !now.Before(exp) {
			delete(m.claims, k)
		}
	}
}
