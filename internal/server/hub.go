package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/philliparaujo/everdell/internal/game"
	"github.com/philliparaujo/everdell/internal/models"
)

// sendBuffer bounds per-client outbound queues; a slow reader loses events
// rather than stalling the broadcaster.
const sendBuffer = 64

type wsClient struct {
	playerID uuid.UUID
	send     chan game.GameEvent
}

// Hub routes game events to websocket clients. Each game's broadcast
// callbacks fan out through the hub's per-game client registry.
type Hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]map[uuid.UUID]*wsClient
}

func NewHub() *Hub {
	return &Hub{clients: make(map[uuid.UUID]map[uuid.UUID]*wsClient)}
}

// Attach wires a game's broadcast callbacks to the hub.
func (h *Hub) Attach(g *game.Game) {
	gameID := g.ID
	g.Mu.Lock()
	defer g.Mu.Unlock()
	g.BroadcastFn = func(ev game.GameEvent) {
		h.mu.RLock()
		defer h.mu.RUnlock()
		for _, c := range h.clients[gameID] {
			c.offer(ev)
		}
	}
	g.BroadcastToPlayerFn = func(playerID uuid.UUID, ev game.GameEvent) {
		h.mu.RLock()
		defer h.mu.RUnlock()
		if c, ok := h.clients[gameID][playerID]; ok {
			c.offer(ev)
		}
	}
}

func (c *wsClient) offer(ev game.GameEvent) {
	select {
	case c.send <- ev:
	default:
		logrus.Warnf("ws: dropping %s event for slow client %s", ev.Type, c.playerID)
	}
}

func (h *Hub) register(gameID uuid.UUID, c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[gameID] == nil {
		h.clients[gameID] = make(map[uuid.UUID]*wsClient)
	}
	if old, ok := h.clients[gameID][c.playerID]; ok {
		close(old.send)
	}
	h.clients[gameID][c.playerID] = c
}

func (h *Hub) unregister(gameID uuid.UUID, c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[gameID][c.playerID] == c {
		delete(h.clients[gameID], c.playerID)
		close(c.send)
	}
}

// ServeGameWS upgrades the request and runs the connection's read loop
// until the client goes away. The write side runs on its own goroutine fed
// by the client's event channel.
func (h *Hub) ServeGameWS(w http.ResponseWriter, r *http.Request, g *game.Game, p *models.Player) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		logrus.Warnf("ws: accept failed for %s: %v", p.ID, err)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "closing")

	p.Conn = conn
	client := &wsClient{playerID: p.ID, send: make(chan game.GameEvent, sendBuffer)}
	h.register(g.ID, client)

	g.Mu.Lock()
	g.AddPlayer(p)
	g.ResyncPlayer(p.ID)
	g.Mu.Unlock()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go writePump(ctx, conn, client)

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			break
		}
		var action models.GameAction
		if err := json.Unmarshal(data, &action); err != nil {
			logrus.Debugf("ws: bad action payload from %s: %v", p.ID, err)
			continue
		}
		if action.ActionType == "" {
			continue
		}
		g.EnqueueAction(p.ID, action)
	}

	h.unregister(g.ID, client)
	g.Mu.Lock()
	g.HandleDisconnect(p.ID)
	g.Mu.Unlock()
	conn.Close(websocket.StatusNormalClosure, "bye")
}

func writePump(ctx context.Context, conn *websocket.Conn, client *wsClient) {
	ping := time.NewTicker(15 * time.Second)
	defer ping.Stop()
	for {
		select {
		case ev, ok := <-client.send:
			if !ok {
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				logrus.Errorf("ws: event marshal failed: %v", err)
				continue
			}
			if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
				return
			}
		case <-ping.C:
			if err := conn.Ping(ctx); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
