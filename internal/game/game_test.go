// internal/game/game_test.go
package game

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philliparaujo/everdell/engine"
	"github.com/philliparaujo/everdell/internal/models"
	"github.com/philliparaujo/everdell/internal/store"
)

// mockBroadcaster captures game events for testing assertions.
type mockBroadcaster struct {
	mu           sync.Mutex
	allEvents    []GameEvent
	playerEvents map[uuid.UUID][]GameEvent
}

func newMockBroadcaster() *mockBroadcaster {
	return &mockBroadcaster{playerEvents: make(map[uuid.UUID][]GameEvent)}
}

func (mb *mockBroadcaster) broadcastFn(ev GameEvent) {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	mb.allEvents = append(mb.allEvents, ev)
}

func (mb *mockBroadcaster) broadcastToPlayerFn(playerID uuid.UUID, ev GameEvent) {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	mb.playerEvents[playerID] = append(mb.playerEvents[playerID], ev)
}

func (mb *mockBroadcaster) findEventByType(eventType GameEventType) *GameEvent {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	for i := len(mb.allEvents) - 1; i >= 0; i-- {
		if mb.allEvents[i].Type == eventType {
			return &mb.allEvents[i]
		}
	}
	return nil
}

func (mb *mockBroadcaster) lastPlayerEvent(playerID uuid.UUID) *GameEvent {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	events := mb.playerEvents[playerID]
	if len(events) == 0 {
		return nil
	}
	return &events[len(events)-1]
}

func (mb *mockBroadcaster) countByType(eventType GameEventType) int {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	n := 0
	for _, ev := range mb.allEvents {
		if ev.Type == eventType {
			n++
		}
	}
	return n
}

// setupTestGame builds a game with two seated, connected players and a
// memory-backed store.
func setupTestGame(t *testing.T) (*Game, []*models.Player, *mockBroadcaster) {
	t.Helper()

	mem := store.NewMemoryStore()
	g := NewGame(mem, engine.SetupOptions{Seed: 42})
	t.Cleanup(g.Close)

	mb := newMockBroadcaster()
	g.BroadcastFn = mb.broadcastFn
	g.BroadcastToPlayerFn = mb.broadcastToPlayerFn

	players := make([]*models.Player, 2)
	colors := []string{"Red", "Blue"}
	names := []string{"Alice", "Bob"}
	for i := range players {
		p := &models.Player{
			ID:        uuid.New(),
			Connected: true,
			User:      &models.User{ID: uuid.New(), Username: names[i]},
		}
		players[i] = p

		g.Mu.Lock()
		g.AddPlayer(p)
		g.applyAction(p.ID, models.GameAction{
			ActionType: ActionClaimSeat,
			Payload:    map[string]interface{}{"color": colors[i], "name": names[i]},
		})
		g.Mu.Unlock()
	}

	g.Mu.Lock()
	require.Equal(t, "Red", players[0].Seat)
	require.Equal(t, "Blue", players[1].Seat)
	g.Start()
	g.Mu.Unlock()
	return g, players, mb
}

func TestClaimSeatBindsSession(t *testing.T) {
	g, players, mb := setupTestGame(t)

	ev := mb.findEventByType(EventSeatClaimed)
	require.NotNil(t, ev)

	g.Mu.Lock()
	defer g.Mu.Unlock()
	color, ok := g.seatOf(players[0].ID)
	assert.True(t, ok)
	assert.Equal(t, engine.ColorRed, color)
	assert.Equal(t, players[0].ID, g.playerForColor(engine.ColorRed))
}

func TestApplyActionAdvancesState(t *testing.T) {
	g, players, mb := setupTestGame(t)

	g.Mu.Lock()
	handBefore := len(g.State.Players[engine.ColorRed].Hand)
	g.applyAction(players[0].ID, models.GameAction{ActionType: ActionDrawCard})
	handAfter := len(g.State.Players[engine.ColorRed].Hand)
	g.Mu.Unlock()

	assert.Equal(t, handBefore+1, handAfter)
	ev := mb.findEventByType(EventGameState)
	require.NotNil(t, ev)
	require.NotNil(t, ev.State)
	assert.Equal(t, g.ID, ev.State.GameID)
}

func TestRefusedActionNotifiesActorOnly(t *testing.T) {
	g, players, mb := setupTestGame(t)

	stateEvents := mb.countByType(EventGameState)

	// Blue acts on Red's turn: the engine refuses, the actor hears about
	// it privately, nothing is broadcast.
	g.Mu.Lock()
	g.applyAction(players[1].ID, models.GameAction{ActionType: ActionDrawCard})
	g.Mu.Unlock()

	ev := mb.lastPlayerEvent(players[1].ID)
	require.NotNil(t, ev)
	assert.Equal(t, EventActionRefused, ev.Type)
	assert.Equal(t, ActionDrawCard, ev.Payload["actionType"])
	assert.Equal(t, stateEvents, mb.countByType(EventGameState))
}

func TestMalformedColorPayloadRefused(t *testing.T) {
	g, players, mb := setupTestGame(t)

	// Colors arrive unvalidated from client JSON; a bogus one must come
	// back as a refusal, never crash the queue.
	bad := []models.GameAction{
		{ActionType: ActionVisitCard, Payload: map[string]interface{}{"owner": "Green", "index": float64(0), "workersVisiting": float64(1)}},
		{ActionType: ActionGiveResources, Payload: map[string]interface{}{"target": "Green", "amount": map[string]interface{}{"berries": float64(1)}}},
		{ActionType: ActionAddResourcesCard, Payload: map[string]interface{}{"owner": "purple", "index": float64(0), "amount": map[string]interface{}{"twigs": float64(1)}}},
		{ActionType: ActionGiveSelected, Payload: map[string]interface{}{"target": ""}},
	}
	for _, action := range bad {
		g.Mu.Lock()
		g.applyAction(players[0].ID, action)
		g.Mu.Unlock()

		ev := mb.lastPlayerEvent(players[0].ID)
		require.NotNil(t, ev)
		assert.Equal(t, EventActionRefused, ev.Type, "action %s", action.ActionType)
	}
}

func TestUnknownActionRefused(t *testing.T) {
	g, players, mb := setupTestGame(t)

	g.Mu.Lock()
	g.applyAction(players[0].ID, models.GameAction{ActionType: "action_juggle"})
	g.Mu.Unlock()

	ev := mb.lastPlayerEvent(players[0].ID)
	require.NotNil(t, ev)
	assert.Equal(t, EventActionRefused, ev.Type)
}

func TestEndTurnBroadcastsTurnEvent(t *testing.T) {
	g, players, mb := setupTestGame(t)

	g.Mu.Lock()
	g.applyAction(players[0].ID, models.GameAction{ActionType: ActionEndTurn})
	turn := g.State.Turn
	g.Mu.Unlock()

	require.Equal(t, engine.ColorBlue, turn)
	ev := mb.findEventByType(EventPlayerTurn)
	require.NotNil(t, ev)
	assert.Equal(t, "Blue", ev.Payload["turn"])
	assert.Equal(t, players[1].ID, ev.User.ID)
}

func TestTransitionsPersistToStore(t *testing.T) {
	mem := store.NewMemoryStore()
	g := NewGame(mem, engine.SetupOptions{Seed: 42})
	t.Cleanup(g.Close)
	mb := newMockBroadcaster()
	g.BroadcastFn = mb.broadcastFn
	g.BroadcastToPlayerFn = mb.broadcastToPlayerFn

	p := &models.Player{ID: uuid.New(), Connected: true, User: &models.User{Username: "Alice"}}
	g.Mu.Lock()
	g.AddPlayer(p)
	g.applyAction(p.ID, models.GameAction{
		ActionType: ActionClaimSeat,
		Payload:    map[string]interface{}{"color": "Red", "name": "Alice"},
	})
	g.Mu.Unlock()

	loaded, err := mem.Load(t.Context(), g.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID.String(), loaded.Players[engine.ColorRed].ID)
}

func TestQueueAppliesActionsInOrder(t *testing.T) {
	g, players, _ := setupTestGame(t)

	var mu sync.Mutex
	var deckSizes []int
	cancel, err := g.Store.Subscribe(t.Context(), g.ID, func(st *engine.GameState) {
		mu.Lock()
		deckSizes = append(deckSizes, len(st.Deck))
		mu.Unlock()
	})
	require.NoError(t, err)
	defer cancel()

	// Three draws fill the hand to its limit; the fourth is refused and
	// must not produce a save.
	for i := 0; i < 4; i++ {
		require.True(t, g.EnqueueAction(players[0].ID, models.GameAction{ActionType: ActionDrawCard}))
	}

	require.Eventually(t, func() bool {
		g.Mu.Lock()
		defer g.Mu.Unlock()
		return len(g.State.Players[engine.ColorRed].Hand) == engine.MaxHandSize
	}, 2*time.Second, 10*time.Millisecond)

	// Give the refused fourth action time to drain through the queue.
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, deckSizes, 3)
	for i := 1; i < len(deckSizes); i++ {
		assert.Equal(t, deckSizes[i-1]-1, deckSizes[i], "saves out of order")
	}
}

func TestEnqueueAfterCloseFails(t *testing.T) {
	g, players, _ := setupTestGame(t)
	g.Close()
	assert.False(t, g.EnqueueAction(players[0].ID, models.GameAction{ActionType: ActionDrawCard}))
}

func TestResourcePayloadDecoding(t *testing.T) {
	g, players, _ := setupTestGame(t)

	g.Mu.Lock()
	g.applyAction(players[0].ID, models.GameAction{
		ActionType: ActionAddResourcesSelf,
		Payload: map[string]interface{}{
			"amount": map[string]interface{}{"twigs": float64(2), "berries": float64(1)},
		},
	})
	twigs := g.State.Players[engine.ColorRed].Resources.Get(engine.Twigs)
	berries := g.State.Players[engine.ColorRed].Resources.Get(engine.Berries)
	g.Mu.Unlock()

	assert.Equal(t, 2, twigs)
	assert.Equal(t, 1, berries)
}

func TestGameEndScoring(t *testing.T) {
	g, players, mb := setupTestGame(t)

	var endedWinner uuid.UUID
	var endedScores map[uuid.UUID]int
	g.OnGameEnd = func(gameID uuid.UUID, winner uuid.UUID, scores map[uuid.UUID]int) {
		endedWinner = winner
		endedScores = scores
	}

	g.Mu.Lock()
	// Put both seats at the end of the season track with no workers left,
	// give Red a city worth more than Blue's.
	for _, color := range []engine.Color{engine.ColorRed, engine.ColorBlue} {
		p := g.State.Players[color]
		p.Season = engine.Autumn
		p.Workers.WorkersLeft = 0
	}
	g.State.Players[engine.ColorRed].City = []engine.Card{{Name: "Queen", Value: 4}}
	g.State.Players[engine.ColorRed].Resources.Set(engine.Coins, 3)
	g.State.Players[engine.ColorBlue].City = []engine.Card{{Name: "Farm", Value: 1}}
	g.EndGame()
	g.Mu.Unlock()

	require.True(t, g.GameOver)
	assert.Equal(t, players[0].ID, endedWinner)
	assert.Equal(t, 7, endedScores[players[0].ID])
	assert.Equal(t, 1, endedScores[players[1].ID])

	ev := mb.findEventByType(EventGameEnd)
	require.NotNil(t, ev)
	assert.Equal(t, players[0].ID.String(), ev.Payload["winner"])

	// Nothing further applies once the game is over.
	g.Mu.Lock()
	g.applyAction(players[0].ID, models.GameAction{ActionType: ActionDrawCard})
	g.Mu.Unlock()
	ev2 := mb.lastPlayerEvent(players[0].ID)
	require.NotNil(t, ev2)
	assert.Equal(t, EventActionRefused, ev2.Type)
}

func TestDisconnectKeepsSeat(t *testing.T) {
	g, players, _ := setupTestGame(t)

	g.Mu.Lock()
	g.HandleDisconnect(players[0].ID)
	_, stillSeated := g.seatOf(players[0].ID)
	connected := g.getPlayerByID(players[0].ID).Connected
	g.Mu.Unlock()

	assert.True(t, stillSeated, "disconnect must not vacate the engine seat")
	assert.False(t, connected)

	g.Mu.Lock()
	g.HandleReconnect(players[0].ID)
	connected = g.getPlayerByID(players[0].ID).Connected
	g.Mu.Unlock()
	assert.True(t, connected)
}

func TestManagerLifecycle(t *testing.T) {
	m := NewManager(store.NewMemoryStore())
	g := m.CreateGame(engine.SetupOptions{Seed: 1})
	require.NotNil(t, m.GetGame(g.ID))
	assert.Equal(t, 1, m.Count())

	m.RemoveGame(g.ID)
	assert.Nil(t, m.GetGame(g.ID))
	assert.Equal(t, 0, m.Count())
}
