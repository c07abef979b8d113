// Package engine implements the rules of a two-player tableau-building
// worker-placement card game.
//
// The package is a pure, deterministic state-transition engine: every
// player-initiated action is a reducer that either returns a structurally
// fresh next state or the input state unchanged (the uniform refusal
// signal). The engine performs no I/O; persistence, transport and identity
// live in the service layer.
package engine

const (
	// MaxHandSize is the base per-player hand limit, adjustable by power.
	MaxHandSize = 8

	// BaseCitySize is the base city limit before pairing bonuses.
	BaseCitySize = 15

	// MaxMeadowSize is the shared face-up pool size.
	MaxMeadowSize = 8

	// MaxRevealSize caps the shared reveal staging zone.
	MaxRevealSize = 5

	// NumSpecialEvents is how many special events are sampled at setup.
	NumSpecialEvents = 4
)

// bankSupply is the fixed, finite supply per resource kind. Resources held
// by players plus banked in city cards can never exceed it.
var bankSupply = ResourceCount{
	Twigs:     30,
	Resin:     30,
	Pebbles:   25,
	Berries:   30,
	Coins:     40,
	CardDraws: 80,
	Wildcards: 10,
}

// BankSupply returns the fixed bank totals.
func BankSupply() ResourceCount { return bankSupply }

// Table is the full shared game position: everything except the undo
// snapshot. The undo snapshot is itself a Table, so a snapshot can never
// carry further history, so the one-turn undo bound holds by construction.
type Table struct {
	Players map[Color]*Player `json:"players"`

	// Deck order is deal order; the top of the pile is the last element.
	Deck    []Card `json:"deck"`
	Discard []Card `json:"discard"`
	Meadow  []Card `json:"meadow"`
	Reveal  []Card `json:"reveal"`

	Locations     []Location     `json:"locations"`
	Journeys      []Journey      `json:"journeys"`
	Events        []Event        `json:"events"`
	SpecialEvents []SpecialEvent `json:"specialEvents"`

	// FarmStack is a power-specific private stack; the top is index 0.
	FarmStack []Card `json:"farmStack"`

	Turn Color `json:"turn"`

	ActiveExpansions []string `json:"activeExpansions,omitempty"`
	PowersEnabled    bool     `json:"powersEnabled"`

	// Powers is the immutable power catalog snapshot used by NextPower.
	Powers []Power `json:"powers,omitempty"`

	// RNG is the xorshift64 state driving every in-game random choice.
	RNG uint64 `json:"rng"`
}

// GameState is the root aggregate: the live table plus at most one turn of
// undo history.
type GameState struct {
	Table
	Previous *Table `json:"previous,omitempty"`
}

// Clone deep-copies the table.
func (t *Table) Clone() *Table {
	out := *t
	out.Players = make(map[Color]*Player, len(t.Players))
	for c, p := range t.Players {
		out.Players[c] = p.clone()
	}
	out.Deck = cloneCards(t.Deck)
	out.Discard = cloneCards(t.Discard)
	out.Meadow = cloneCards(t.Meadow)
	out.Reveal = cloneCards(t.Reveal)
	out.FarmStack = cloneCards(t.FarmStack)

	out.Locations = make([]Location, len(t.Locations))
	for i, l := range t.Locations {
		out.Locations[i] = l.clone()
	}
	out.Journeys = append([]Journey(nil), t.Journeys...)
	out.Events = append([]Event(nil), t.Events...)
	out.SpecialEvents = make([]SpecialEvent, len(t.SpecialEvents))
	for i, e := range t.SpecialEvents {
		out.SpecialEvents[i] = e.clone()
	}
	out.ActiveExpansions = append([]string(nil), t.ActiveExpansions...)
	out.Powers = append([]Power(nil), t.Powers...)
	return &out
}

// clone copies the state for a candidate transition. The undo snapshot is
// shared: it is immutable once captured and only replaced wholesale.
func (s *GameState) clone() *GameState {
	return &GameState{Table: *s.Table.Clone(), Previous: s.Previous}
}

// commit returns the candidate if it passes the sanity check, otherwise the
// original state unchanged. Every reducer ends here.
func (s *GameState) commit(n *GameState) *GameState {
	if !n.SanityCheck() {
		return s
	}
	return n
}

// validColor reports whether c names a real seat. Colors arrive unchecked
// from the wire, so every predicate and reducer taking one must gate on
// this before indexing Players.
func validColor(c Color) bool {
	return c == ColorRed || c == ColorBlue
}

// ColorOf resolves a session identity to the seat it occupies. The empty
// identity never matches an unclaimed seat.
func (s *GameState) ColorOf(playerID string) (Color, bool) {
	if playerID == "" {
		return "", false
	}
	for c, p := range s.Players {
		if p.ID == playerID {
			return c, true
		}
	}
	return "", false
}

// acting resolves playerID and checks turn ownership. Reducers treat a
// failure as a silent no-op.
func (s *GameState) acting(playerID string) (Color, bool) {
	c, ok := s.ColorOf(playerID)
	if !ok || c != s.Turn {
		return "", false
	}
	return c, true
}

// HasExpansion reports whether the named content module is active.
func (s *GameState) HasExpansion(name string) bool {
	for _, e := range s.ActiveExpansions {
		if e == name {
			return true
		}
	}
	return false
}

// HandLimit returns a player's hand cap, as adjusted by their power.
func HandLimit(p *Player) int {
	if p.Power != nil && p.Power.HandLimit > 0 {
		return p.Power.HandLimit
	}
	return MaxHandSize
}

// MaxCitySize returns the city cap for the given city contents: base size
// plus one slot per stacked card, since a card tucked below another does
// not take up room of its own.
func MaxCitySize(city []Card) int {
	size := BaseCitySize
	for _, c := range city {
		if c.Below != "" {
			size++
		}
		if c.Name == "Wanderer" {
			size++
		}
	}
	return size
}

// nextRand advances the xorshift64 stream.
func (s *GameState) nextRand() uint64 {
	x := s.RNG
	if x == 0 {
		x = 1 // xorshift can't start at 0
	}
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	s.RNG = x
	return x
}

// randN returns a random number in [0, n).
func (s *GameState) randN(n int) int {
	return int(s.nextRand() % uint64(n))
}
