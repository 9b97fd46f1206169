package leaderboard

import (
	"context"
	"sync"
)

// MemoryStore is an in-process RosterStore. It backs the scoring server's
// "memory" backend and the tests.
type MemoryStore struct {
	mu     sync.Mutex
	roster Roster
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns a copy of the stored roster.
func (m *MemoryStore) Load(context.Context) (Roster, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.roster.Clone(), nil
}

// Save replaces the stored roster with a copy of r.
func (m *MemoryStore) Save(_ context.Context, r Roster) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roster = r.Clone()
	return nil
}

// Clear empties the store.
func (m *MemoryStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roster = nil
	return nil
}

var _ RosterStore = (*MemoryStore)(nil)
