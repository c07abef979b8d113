// internal/store/store.go

// Package store persists game states as whole JSON documents keyed by game
// ID. The engine state is small enough that document-at-a-time replacement
// is simpler and safer than incremental updates: every Save writes the full
// state, every Load reads it back, and Subscribe streams full documents.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/philliparaujo/everdell/engine"
)

// ErrNotFound is returned by Load when no document exists for the game.
var ErrNotFound = errors.New("store: game state not found")

// CancelFunc stops a subscription and releases its resources.
type CancelFunc func()

// Store is the game-state document store.
type Store interface {
	// Load fetches the current state document, or ErrNotFound.
	Load(ctx context.Context, gameID uuid.UUID) (*engine.GameState, error)

	// Save replaces the state document wholesale.
	Save(ctx context.Context, gameID uuid.UUID, state *engine.GameState) error

	// Subscribe invokes fn with every state saved for the game after the
	// call, until the returned CancelFunc runs. fn is called from the
	// store's delivery goroutine and must not block for long.
	Subscribe(ctx context.Context, gameID uuid.UUID, fn func(*engine.GameState)) (CancelFunc, error)
}
