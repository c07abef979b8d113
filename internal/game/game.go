// internal/game/game.go
package game

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/philliparaujo/everdell/engine"
	"github.com/philliparaujo/everdell/internal/cache"
	"github.com/philliparaujo/everdell/internal/database"
	"github.com/philliparaujo/everdell/internal/models"
	"github.com/philliparaujo/everdell/internal/store"
)

// OnGameEndFunc is the callback executed when a game ends. It receives the
// game ID, the winner's session ID (Nil on a tie) and the final scores.
type OnGameEndFunc func(gameID uuid.UUID, winner uuid.UUID, scores map[uuid.UUID]int)

// queuedAction is one pending entry of the serialization queue.
type queuedAction struct {
	playerID uuid.UUID
	action   models.GameAction
}

// Game wraps one engine state with everything the service layer adds:
// session identity, persistence, broadcast and the single-flight action
// queue. Engine transitions happen only on the queue goroutine, so actions
// apply strictly in arrival order.
type Game struct {
	ID uuid.UUID

	// State is the authoritative engine state. Guarded by Mu.
	State *engine.GameState

	Players []*models.Player

	Store store.Store

	Started  bool
	GameOver bool

	// PasswordHash gates joining when non-nil. Set once at creation,
	// immutable afterwards.
	PasswordHash []byte

	Mu sync.Mutex

	queue  chan queuedAction
	done   chan struct{}
	closed sync.Once

	actionIndex int
	turnIndex   int

	// Communication callbacks.
	BroadcastFn         func(ev GameEvent)
	BroadcastToPlayerFn func(playerID uuid.UUID, ev GameEvent)
	OnGameEnd           OnGameEndFunc

	lastSeen map[uuid.UUID]time.Time
}

// queueDepth bounds how many actions may wait; a full queue drops the
// action rather than blocking the transport goroutine.
const queueDepth = 64

// NewGame creates a game around a freshly set-up engine state.
func NewGame(st store.Store, opts engine.SetupOptions) *Game {
	id, _ := uuid.NewRandom()
	g := &Game{
		ID:       id,
		State:    engine.SetupGame(engine.DefaultCatalog(), opts),
		Store:    st,
		queue:    make(chan queuedAction, queueDepth),
		done:     make(chan struct{}),
		lastSeen: make(map[uuid.UUID]time.Time),
	}
	go g.runQueue()
	return g
}

// Close stops the queue goroutine. Queued actions not yet applied are
// dropped.
func (g *Game) Close() {
	g.closed.Do(func() { close(g.done) })
}

// runQueue is the single-flight worker: it applies exactly one action at a
// time, in arrival order, holding the lock only across the transition and
// its fan-out.
func (g *Game) runQueue() {
	for {
		select {
		case <-g.done:
			return
		case qa := <-g.queue:
			g.Mu.Lock()
			g.applyAction(qa.playerID, qa.action)
			g.Mu.Unlock()
		}
	}
}

// EnqueueAction adds an action to the serialization queue. Returns false
// when the queue is full or the game is closed.
func (g *Game) EnqueueAction(playerID uuid.UUID, action models.GameAction) bool {
	select {
	case <-g.done:
		return false
	default:
	}
	select {
	case g.queue <- queuedAction{playerID: playerID, action: action}:
		return true
	default:
		logrus.Warnf("game %s: action queue full, dropping %s from %s", g.ID, action.ActionType, playerID)
		return false
	}
}

// AddPlayer registers a session with the game, or marks a known session as
// reconnected. Assumes lock is held by caller.
func (g *Game) AddPlayer(p *models.Player) {
	for i, pl := range g.Players {
		if pl.ID == p.ID {
			g.Players[i].Conn = p.Conn
			g.Players[i].Connected = true
			g.Players[i].User = p.User
			g.lastSeen[p.ID] = time.Now()
			logrus.Infof("game %s: player %s reconnected", g.ID, p.ID)
			g.logAction(p.ID, "player_reconnect", nil)
			return
		}
	}
	g.Players = append(g.Players, p)
	g.lastSeen[p.ID] = time.Now()
	logrus.Infof("game %s: player %s joined", g.ID, p.ID)
	g.logAction(p.ID, "player_join", nil)
}

// HandleDisconnect marks a session as disconnected. The seat stays bound:
// the engine keeps the identity, so a later reconnect resumes seamlessly.
// Assumes lock is held by caller.
func (g *Game) HandleDisconnect(playerID uuid.UUID) {
	for i := range g.Players {
		if g.Players[i].ID == playerID {
			if !g.Players[i].Connected {
				return
			}
			g.Players[i].Connected = false
			g.Players[i].Conn = nil
			g.logAction(playerID, "player_disconnect", nil)
			logrus.Infof("game %s: player %s disconnected", g.ID, playerID)
			return
		}
	}
}

// HandleReconnect marks a session connected and pushes it a private full
// state sync. Assumes lock is held by caller.
func (g *Game) HandleReconnect(playerID uuid.UUID) {
	for i := range g.Players {
		if g.Players[i].ID == playerID {
			g.Players[i].Connected = true
			g.lastSeen[playerID] = time.Now()
			g.logAction(playerID, "player_reconnect", nil)
			g.sendPrivateState(playerID)
			return
		}
	}
	logrus.Warnf("game %s: reconnect from unknown player %s", g.ID, playerID)
}

// Start marks the game live, persists the initial snapshot and announces
// the first turn. Assumes lock is held by caller.
func (g *Game) Start() {
	if g.Started || g.GameOver {
		return
	}
	g.Started = true
	g.logAction(uuid.Nil, string(EventGameStart), nil)
	g.persistState()
	g.persistInitialSnapshot()
	g.fireEvent(GameEvent{Type: EventGameStart})
	g.broadcastTurn()
	logrus.Infof("game %s: started", g.ID)
}

// seatOf resolves a session to its engine color, if the seat is claimed.
// Assumes lock is held by caller.
func (g *Game) seatOf(playerID uuid.UUID) (engine.Color, bool) {
	return g.State.ColorOf(playerID.String())
}

// playerForColor resolves an engine color back to the session holding the
// seat. Assumes lock is held by caller.
func (g *Game) playerForColor(color engine.Color) uuid.UUID {
	p, ok := g.State.Players[color]
	if !ok || p.ID == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(p.ID)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// getPlayerByID finds a registered session. Assumes lock is held by caller.
func (g *Game) getPlayerByID(playerID uuid.UUID) *models.Player {
	for _, p := range g.Players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

// fireEvent broadcasts an event to all connected players via BroadcastFn.
// Assumes lock is held by caller.
func (g *Game) fireEvent(ev GameEvent) {
	if g.BroadcastFn == nil {
		logrus.Warnf("game %s: BroadcastFn is nil, dropping event %s", g.ID, ev.Type)
		return
	}
	g.BroadcastFn(ev)
}

// fireEventToPlayer sends an event to a single connected player. Assumes
// lock is held by caller.
func (g *Game) fireEventToPlayer(playerID uuid.UUID, ev GameEvent) {
	if g.BroadcastToPlayerFn == nil {
		logrus.Warnf("game %s: BroadcastToPlayerFn is nil, dropping event %s", g.ID, ev.Type)
		return
	}
	p := g.getPlayerByID(playerID)
	if p == nil || !p.Connected {
		return
	}
	g.BroadcastToPlayerFn(playerID, ev)
}

// sendPrivateState pushes the full client view to a single player. Assumes
// lock is held by caller.
func (g *Game) sendPrivateState(playerID uuid.UUID) {
	view := g.BuildClientState()
	g.fireEventToPlayer(playerID, GameEvent{Type: EventPrivateState, State: &view})
}

// ResyncPlayer pushes the current full view to one session, typically on
// connect or reconnect. Assumes lock is held by caller.
func (g *Game) ResyncPlayer(playerID uuid.UUID) {
	g.sendPrivateState(playerID)
}

// broadcastState fans the post-transition state out to everyone. Assumes
// lock is held by caller.
func (g *Game) broadcastState() {
	view := g.BuildClientState()
	g.fireEvent(stateEvent(&view))
}

// broadcastTurn announces the current turn. Assumes lock is held by caller.
func (g *Game) broadcastTurn() {
	turn := g.State.Turn
	g.fireEvent(turnEvent(turn, g.playerForColor(turn)))
}

// persistState saves the authoritative document. A failed save is logged
// but does not roll back the transition; the next save replaces the whole
// document anyway. Assumes lock is held by caller.
func (g *Game) persistState() {
	if g.Store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := g.Store.Save(ctx, g.ID, g.State); err != nil {
		logrus.Errorf("game %s: failed to persist state: %v", g.ID, err)
	}
}

// persistInitialSnapshot archives the post-setup position for replay.
// Assumes lock is held by caller.
func (g *Game) persistInitialSnapshot() {
	if database.DB == nil {
		return
	}
	snapshot := map[string]interface{}{
		"state": g.State,
		"seats": g.seatBindings(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := database.UpsertInitialGameState(ctx, g.ID, snapshot); err != nil {
			logrus.Errorf("game %s: failed to archive initial state: %v", g.ID, err)
		}
	}()
}

// seatBindings maps engine colors to session IDs for archival. Assumes
// lock is held by caller.
func (g *Game) seatBindings() map[string]string {
	seats := make(map[string]string, len(g.State.Players))
	for color, p := range g.State.Players {
		seats[string(color)] = p.ID
	}
	return seats
}

// logAction sends action details to the historian via the Redis queue.
// Assumes lock is held by caller.
func (g *Game) logAction(actorID uuid.UUID, actionType string, payload map[string]interface{}) {
	g.actionIndex++
	if payload == nil {
		payload = make(map[string]interface{})
	}
	record := cache.GameActionRecord{
		GameID:        g.ID,
		ActionIndex:   g.actionIndex,
		ActorID:       actorID,
		ActionType:    actionType,
		ActionPayload: payload,
		Timestamp:     time.Now().UnixMilli(),
	}
	go func(rec cache.GameActionRecord) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if cache.Rdb == nil {
			return
		}
		if err := cache.PublishGameAction(ctx, rec); err != nil {
			logrus.Errorf("game %s: failed publishing action %d (%s): %v", g.ID, rec.ActionIndex, rec.ActionType, err)
		}
	}(record)
}

// recordCompletedTurn archives a turn boundary to the database. Assumes
// lock is held by caller.
func (g *Game) recordCompletedTurn(actorID uuid.UUID) {
	g.turnIndex++
	if database.DB == nil {
		return
	}
	idx := g.turnIndex
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := database.LogCompletedTurn(ctx, g.ID, idx, actorID); err != nil {
			logrus.Errorf("game %s: failed recording turn %d: %v", g.ID, idx, err)
		}
	}()
}

// bothSeatsFinished reports whether each player has reached Autumn with no
// workers left to place, the natural end of the game. Assumes lock is held
// by caller.
func (g *Game) bothSeatsFinished() bool {
	for _, color := range []engine.Color{engine.ColorRed, engine.ColorBlue} {
		p := g.State.Players[color]
		if p.Season != engine.Autumn || p.Workers.WorkersLeft > 0 {
			return false
		}
	}
	return true
}

// EndGame finalizes the game: scores both cities, persists the terminal
// snapshot and fires the end event. Assumes lock is held by caller.
func (g *Game) EndGame() {
	if g.GameOver {
		return
	}
	g.GameOver = true
	g.Started = false

	scores := g.computeScores()
	winner := uuid.Nil
	best := -1 << 31
	tie := false
	for id, score := range scores {
		switch {
		case score > best:
			best = score
			winner = id
			tie = false
		case score == best:
			tie = true
		}
	}
	if tie {
		winner = uuid.Nil
	}

	g.logAction(uuid.Nil, string(EventGameEnd), map[string]interface{}{
		"scores": scores,
		"winner": winner,
	})
	g.persistFinalSnapshot(scores, winner)

	payload := map[string]interface{}{
		"winner": winner.String(),
		"scores": map[string]int{},
	}
	for id, score := range scores {
		payload["scores"].(map[string]int)[id.String()] = score
	}
	g.fireEvent(GameEvent{Type: EventGameEnd, Payload: payload})

	if g.OnGameEnd != nil {
		g.OnGameEnd(g.ID, winner, scores)
	}
	logrus.Infof("game %s: ended, winner %s, scores %v", g.ID, winner, scores)
}

// computeScores totals each seat's city card values plus banked coins.
// Assumes lock is held by caller.
func (g *Game) computeScores() map[uuid.UUID]int {
	scores := make(map[uuid.UUID]int)
	for _, color := range []engine.Color{engine.ColorRed, engine.ColorBlue} {
		sessionID := g.playerForColor(color)
		if sessionID == uuid.Nil {
			continue
		}
		p := g.State.Players[color]
		score := p.Resources.Get(engine.Coins)
		for _, c := range p.City {
			score += c.Value
		}
		for _, c := range p.Legends {
			score += c.Value
		}
		scores[sessionID] = score
	}
	return scores
}

// persistFinalSnapshot archives the terminal position and scores. Assumes
// lock is held by caller.
func (g *Game) persistFinalSnapshot(scores map[uuid.UUID]int, winner uuid.UUID) {
	if database.DB == nil {
		return
	}
	stringScores := make(map[string]int, len(scores))
	for id, score := range scores {
		stringScores[id.String()] = score
	}
	snapshot := map[string]interface{}{
		"state":  g.State,
		"scores": stringScores,
		"winner": winner.String(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := database.StoreFinalGameState(ctx, g.ID, snapshot); err != nil {
			logrus.Errorf("game %s: failed to archive final state: %v", g.ID, err)
		}
	}()
}
