// internal/store/memory_test.go
package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philliparaujo/everdell/engine"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	gameID := uuid.New()

	_, err := s.Load(ctx, gameID)
	assert.ErrorIs(t, err, ErrNotFound)

	state := engine.SetupGame(engine.DefaultCatalog(), engine.SetupOptions{Seed: 13})
	require.NoError(t, s.Save(ctx, gameID, state))

	got, err := s.Load(ctx, gameID)
	require.NoError(t, err)
	assert.Equal(t, state.Turn, got.Turn)
	assert.Equal(t, len(state.Deck), len(got.Deck))
	assert.Equal(t, len(state.Meadow), len(got.Meadow))

	// The stored document is independent of the caller's pointer.
	state.Turn = engine.ColorBlue
	got2, err := s.Load(ctx, gameID)
	require.NoError(t, err)
	assert.Equal(t, engine.ColorRed, got2.Turn)
}

func TestMemoryStoreSubscribe(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	gameID := uuid.New()

	var seen []*engine.GameState
	cancel, err := s.Subscribe(ctx, gameID, func(st *engine.GameState) {
		seen = append(seen, st)
	})
	require.NoError(t, err)

	state := engine.SetupGame(engine.DefaultCatalog(), engine.SetupOptions{Seed: 13})
	require.NoError(t, s.Save(ctx, gameID, state))
	require.Len(t, seen, 1)
	assert.Equal(t, state.Turn, seen[0].Turn)

	// Other games never reach this subscriber.
	require.NoError(t, s.Save(ctx, uuid.New(), state))
	assert.Len(t, seen, 1)

	cancel()
	require.NoError(t, s.Save(ctx, gameID, state))
	assert.Len(t, seen, 1)
}

func TestStateSurvivesJSONRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	gameID := uuid.New()

	state := engine.SetupGame(engine.DefaultCatalog(), engine.SetupOptions{Seed: 7, PowersEnabled: true})
	state = state.ClaimSeat(engine.ColorRed, "red-session", "Red")
	state = state.VisitLocation("red-session", 0, 1)
	require.NoError(t, s.Save(ctx, gameID, state))

	got, err := s.Load(ctx, gameID)
	require.NoError(t, err)

	assert.Equal(t, state.Players[engine.ColorRed].Resources, got.Players[engine.ColorRed].Resources)
	assert.Equal(t, state.Locations[0].Workers, got.Locations[0].Workers)
	assert.Equal(t, state.Players[engine.ColorRed].Power.Name, got.Players[engine.ColorRed].Power.Name)
	assert.Equal(t, state.RNG, got.RNG)

	// A loaded state keeps functioning as a live engine state.
	next := got.ClaimSeat(engine.ColorBlue, "blue-session", "Blue")
	require.NotSame(t, got, next)
	assert.True(t, next.SanityCheck())
}
