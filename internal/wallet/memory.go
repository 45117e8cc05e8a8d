package wallet

import (
	"context"
	"sync"
)

// MemoryStore keeps bindings in process memory. This is the default store
// when no Redis address is configured; state is lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	bindings map[string]*Binding
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{bindings: make(map[string]*Binding)}
}

// Get returns the binding for a user, or nil when none exists.
func (s *MemoryStore) Get(_ context.Context, userID string) (*Binding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	binding, ok := s.bindings[userID]
	if !ok {
		return nil, nil
	}
	copied := *binding
	return &copied, nil
}

// Set stores the binding for a user.
func (s *MemoryStore) Set(_ context.Context, userID string, binding *Binding) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *binding
	s.bindings[userID] = &copied
	return nil
}

// Remove deletes the binding for a user.
func (s *MemoryStore) Remove(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bindings, userID)
	return nil
}
