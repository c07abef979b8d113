// internal/game/manager.go
package game

import (
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/philliparaujo/everdell/engine"
	"github.com/philliparaujo/everdell/internal/store"
)

// Manager owns every live game on this node.
type Manager struct {
	mu    sync.RWMutex
	games map[uuid.UUID]*Game
	store store.Store
}

// NewManager returns an empty manager backed by the given store.
func NewManager(st store.Store) *Manager {
	return &Manager{
		games: make(map[uuid.UUID]*Game),
		store: st,
	}
}

// CreateGame sets up a fresh game and registers it.
func (m *Manager) CreateGame(opts engine.SetupOptions) *Game {
	g := NewGame(m.store, opts)
	g.OnGameEnd = func(gameID uuid.UUID, winner uuid.UUID, scores map[uuid.UUID]int) {
		// Retire the game once its end event has gone out.
		m.RemoveGame(gameID)
	}
	m.mu.Lock()
	m.games[g.ID] = g
	m.mu.Unlock()
	logrus.Infof("manager: created game %s", g.ID)
	return g
}

// GetGame returns a live game, or nil.
func (m *Manager) GetGame(gameID uuid.UUID) *Game {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.games[gameID]
}

// RemoveGame closes and forgets a game.
func (m *Manager) RemoveGame(gameID uuid.UUID) {
	m.mu.Lock()
	g, ok := m.games[gameID]
	if ok {
		delete(m.games, gameID)
	}
	m.mu.Unlock()
	if ok {
		g.Close()
		logrus.Infof("manager: removed game %s", gameID)
	}
}

// Count returns how many games are live.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}
