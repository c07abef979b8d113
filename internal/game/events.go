// internal/game/events.go
package game

import (
	"github.com/google/uuid"

	"github.com/philliparaujo/everdell/engine"
)

// GameEventType represents the type of a game-related event broadcast via
// WebSockets.
type GameEventType string

// Constants defining the GameEvent types used for WebSocket communication.
const (
	EventGameState     GameEventType = "game_state"      // Public: full state after a transition.
	EventPrivateState  GameEventType = "private_state"   // Private: full state sync on (re)connect.
	EventActionRefused GameEventType = "action_refused"  // Private: the action was a no-op.
	EventSeatClaimed   GameEventType = "seat_claimed"    // Public: a seat was bound to a session.
	EventPlayerTurn    GameEventType = "player_turn"     // Public: whose turn it is now.
	EventGameStart     GameEventType = "game_start"      // Public: the game is live.
	EventGameEnd       GameEventType = "game_end"        // Public: final scores.
)

// EventUser identifies a user within a GameEvent payload.
type EventUser struct {
	ID uuid.UUID `json:"id"`
}

// GameEvent is the standard structure for broadcasting game state changes
// and actions.
type GameEvent struct {
	Type GameEventType `json:"type"`
	User *EventUser    `json:"user,omitempty"` // The user initiating or targeted by the event.

	Payload map[string]interface{} `json:"payload,omitempty"` // Additional arbitrary data.

	State *ClientState `json:"state,omitempty"` // Full client view for state events.
}

// stateEvent builds the public full-state event.
func stateEvent(view *ClientState) GameEvent {
	return GameEvent{Type: EventGameState, State: view}
}

// refusalEvent builds the private no-op notification. The engine refuses
// silently; the service layer names the refused action so clients can
// surface it.
func refusalEvent(actorID uuid.UUID, actionType string) GameEvent {
	return GameEvent{
		Type:    EventActionRefused,
		User:    &EventUser{ID: actorID},
		Payload: map[string]interface{}{"actionType": actionType},
	}
}

// turnEvent builds the public turn notification.
func turnEvent(turn engine.Color, playerID uuid.UUID) GameEvent {
	return GameEvent{
		Type: EventPlayerTurn,
		User: &EventUser{ID: playerID},
		Payload: map[string]interface{}{
			"turn": string(turn),
		},
	}
}
