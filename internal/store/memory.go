// internal/store/memory.go
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/philliparaujo/everdell/engine"
)

// MemoryStore is an in-process Store for tests and single-node dev runs.
// Documents still round-trip through JSON so callers never share pointers
// with the store.
type MemoryStore struct {
	mu   sync.Mutex
	docs map[uuid.UUID][]byte
	subs map[uuid.UUID]map[int]func(*engine.GameState)
	next int
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: make(map[uuid.UUID][]byte),
		subs: make(map[uuid.UUID]map[int]func(*engine.GameState)),
	}
}

// Load implements Store.
func (s *MemoryStore) Load(ctx context.Context, gameID uuid.UUID) (*engine.GameState, error) {
	s.mu.Lock()
	data, ok := s.docs[gameID]
	s.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	state := &engine.GameState{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("store: unmarshal state for %s: %w", gameID, err)
	}
	return state, nil
}

// Save implements Store.
func (s *MemoryStore) Save(ctx context.Context, gameID uuid.UUID, state *engine.GameState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("store: marshal state for %s: %w", gameID, err)
	}

	s.mu.Lock()
	s.docs[gameID] = data
	fns := make([]func(*engine.GameState), 0, len(s.subs[gameID]))
	for _, fn := range s.subs[gameID] {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		copyState := &engine.GameState{}
		if err := json.Unmarshal(data, copyState); err != nil {
			return fmt.Errorf("store: re-unmarshal for subscriber: %w", err)
		}
		fn(copyState)
	}
	return nil
}

// Subscribe implements Store. Delivery is synchronous with Save, which
// keeps test assertions simple.
func (s *MemoryStore) Subscribe(ctx context.Context, gameID uuid.UUID, fn func(*engine.GameState)) (CancelFunc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subs[gameID] == nil {
		s.subs[gameID] = make(map[int]func(*engine.GameState))
	}
	id := s.next
	s.next++
	s.subs[gameID][id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs[gameID], id)
	}, nil
}
