package session

import (
	"context"
	"sync"

	"github.com/tourmesh/tourmesh/core"
)

// InMemoryStore is a volatile HistoryStore keeping per-session turn
// histories in a process local map. It is safe for concurrent access and
// best suited for tests or ephemeral demo servers. Histories are copied on
// the way in and out to prevent external mutation of internal state.
type InMemoryStore struct {
	mu        sync.RWMutex
	histories map[string][]core.Turn
}

// NewInMemoryStore constructs an empty in-memory history store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{histories: make(map[string][]core.Turn)}
}

// Get returns a copy of the stored history, or an empty one for unknown sessions.
func (s *InMemoryStore) Get(_ context.Context, sessionID string) ([]core.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return core.CloneHistory(s.histories[sessionID]), nil
}

// Save stores a copy of the provided history snapshot.
func (s *InMemoryStore) Save(_ context.Context, sessionID string, history []core.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.histories[sessionID] = core.CloneHistory(history)
	return nil
}
