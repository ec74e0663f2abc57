package store

import (
	"context"
	"sync"

	"shinz/internal/domain"
)

// Memory is an in-process Store. State is lost on restart.
type Memory struct {
	values sync.Map
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Get retrieves a value.
func (m *Memory) Get(ctx context.Context, key string) (string, error) {
	value, ok := m.values.Load(key)
	if !ok {
		return "", domain.ErrNotFound
	}
	return value.(string), nil
}

// Set stores a value.
func (m *Memory) Set(ctx context.Context, key, value string) error {
	m.values.Store(key, value)
	return nil
}

// Delete removes a key.
func (m *Memory) Delete(ctx context.Context, key string) error {
	m.values.Delete(key)
	return nil
}
