// internal/game/sync_state.go
package game

import (
	"github.com/google/uuid"

	"github.com/philliparaujo/everdell/engine"
)

// ClientSeat is the connection-level view of one seat.
type ClientSeat struct {
	PlayerID      uuid.UUID `json:"playerId"`
	Username      string    `json:"username,omitempty"`
	Color         string    `json:"color,omitempty"`
	Connected     bool      `json:"connected"`
	IsCurrentTurn bool      `json:"isCurrentTurn"`
}

// ClientState is the full client-facing snapshot: the engine state plus the
// session metadata the engine does not know about. The tabletop is open
// information, so every client receives the same view.
type ClientState struct {
	GameID          uuid.UUID    `json:"gameId"`
	Started         bool         `json:"started"`
	GameOver        bool         `json:"gameOver"`
	Turn            string       `json:"turn"`
	CurrentPlayerID uuid.UUID    `json:"currentPlayerId"`
	Seats           []ClientSeat `json:"seats"`

	State *engine.GameState `json:"state"`
}

// BuildClientState assembles the snapshot from the live state. Assumes lock
// is held by caller.
func (g *Game) BuildClientState() ClientState {
	current := g.playerForColor(g.State.Turn)
	view := ClientState{
		GameID:          g.ID,
		Started:         g.Started,
		GameOver:        g.GameOver,
		Turn:            string(g.State.Turn),
		CurrentPlayerID: current,
		State:           g.State,
	}

	view.Seats = make([]ClientSeat, 0, len(g.Players))
	for _, p := range g.Players {
		seat := ClientSeat{
			PlayerID:  p.ID,
			Connected: p.Connected,
			Color:     p.Seat,
		}
		if p.User != nil {
			seat.Username = p.User.Username
		}
		if color, ok := g.seatOf(p.ID); ok {
			seat.Color = string(color)
			seat.IsCurrentTurn = color == g.State.Turn && g.Started && !g.GameOver
		}
		view.Seats = append(view.Seats, seat)
	}
	return view
}
