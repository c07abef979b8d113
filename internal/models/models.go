// internal/models/models.go
package models

import (
	"github.com/coder/websocket"
	"github.com/google/uuid"
)

// User holds the durable account identity behind a session.
type User struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// Player is a connected participant in a game session: the account, the
// live WebSocket connection and the seat binding into the engine.
type Player struct {
	ID        uuid.UUID `json:"id"`
	User      *User     `json:"user,omitempty"`
	Seat      string    `json:"seat,omitempty"` // engine color, "" until claimed
	Connected bool      `json:"connected"`

	Conn *websocket.Conn `json:"-"`
}

// GameAction is the wire envelope for a player-initiated action. ActionType
// selects the engine reducer; Payload carries the reducer's arguments.
type GameAction struct {
	ActionType string                 `json:"actionType"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
}
