package store

import (
	"context"
	"fmt"
	"sync"
)

// Memory is an in-process store. It backs one-shot pipeline
// invocations and serves as the test fake for store consumers.
type Memory struct {
	mu      sync.RWMutex
	records map[string]Record
	order   []string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		records: make(map[string]Record),
	}
}

func (m *Memory) Put(_ context.Context, rec Record) error {
	if rec.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.records[rec.Name]; !exists {
		m.order = append(m.order, rec.Name)
	}
	m.records[rec.Name] = rec
	return nil
}

func (m *Memory) Get(_ context.Context, name string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[name]
	if !ok {
		return Record{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return rec, nil
}

func (m *Memory) List(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, len(m.order))
	copy(out, m.order)
	return out, nil
}
