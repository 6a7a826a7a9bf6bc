package session

import (
	"context"
	"sync"

	"github.com/matchme/matchme-web/internal/core/ports"
)

// MemoryBackend keeps sessions in process memory. Sessions do not survive a
// restart; use it for development and tests.
type MemoryBackend struct {
	mu     sync.RWMutex
	values map[string]string
}

var _ ports.SessionBackend = (*MemoryBackend)(nil)

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string]string)}
}

func (m *MemoryBackend) Load(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryBackend) Save(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryBackend) Ping(context.Context) error { return nil }
