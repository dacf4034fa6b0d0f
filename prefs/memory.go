package prefs

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store. Values last for the process lifetime.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]map[string]bool
	scope  string
}

// NewMemoryStore creates an empty store in the default scope.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string]map[string]bool),
		scope:  DefaultScope,
	}
}

// Scope returns a view of the same data partitioned under name.
func (m *MemoryStore) Scope(name string) Store {
	return &memoryScope{m: m, scope: name}
}

// Get implements Store.
func (m *MemoryStore) Get(ctx context.Context, key string) (bool, bool, error) {
	return m.get(m.scope, key)
}

// Set implements Store.
func (m *MemoryStore) Set(ctx context.Context, key string, value bool) error {
	return m.set(m.scope, key, value)
}

// Delete implements Store.
func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	return m.delete(m.scope, key)
}

func (m *MemoryStore) get(scope, key string) (bool, bool, error) {
	if err := checkKey(key); err != nil {
		return false, false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[scope][key]
	return v, ok, nil
}

func (m *MemoryStore) set(scope, key string, value bool) error {
	if err := checkKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.values[scope]
	if !ok {
		s = make(map[string]bool)
		m.values[scope] = s
	}
	s[key] = value
	return nil
}

func (m *MemoryStore) delete(scope, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values[scope], key)
	return nil
}

type memoryScope struct {
	m     *MemoryStore
	scope string
}

func (s *memoryScope) Get(ctx context.Context, key string) (bool, bool, error) {
	return s.m.get(s.scope, key)
}

func (s *memoryScope) Set(ctx context.Context, key string, value bool) error {
	return s.m.set(s.scope, key, value)
}

func (s *memoryScope) Delete(ctx context.Context, key string) error {
	return s.m.delete(s.scope, key)
}
