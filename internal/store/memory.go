package store

import (
	"context"
	"sync"
)

// memoryStateRepository keeps snapshots in process. It backs the ":memory:"
// DSN and tests.
type memoryStateRepository struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryStateRepository returns an empty in-process [StateRepository].
func NewMemoryStateRepository() StateRepository {
	return &memoryStateRepository{values: make(map[string][]byte)}
}

func (m *memoryStateRepository) Load(_ context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return nil, ErrStateNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *memoryStateRepository) Save(_ context.Context, key string, value []byte) error {
	if key == "" {
		return ErrEmptyKey
	}

	m.mu.Lock()
	m.values[key] = append([]byte(nil), value...)
	m.mu.Unlock()
	return nil
}

func (m *memoryStateRepository) Delete(_ context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	m.mu.Lock()
	delete(m.values, key)
	m.mu.Unlock()
	return nil
}
