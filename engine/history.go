package engine

// newHistory captures a player's turn-start baseline with empty
// accumulation lists. Rebuilt for the player about to act at every turn
// flip; the opposing player's history is left as-is.
func newHistory(p *Player) History {
	return History{
		Resources:     p.Resources,
		Workers:       p.Workers,
		Season:        p.Season,
		Discarded:     []Card{},
		CityDiscarded: []Card{},
		Drew:          []Card{},
		Played:        []Card{},
		Gave:          []Card{},
	}
}

// clearHistoryLists empties the accumulation lists while keeping the
// resource/worker/season baseline. Used by ResetTurn.
func clearHistoryLists(h *History) {
	h.Discarded = []Card{}
	h.CityDiscarded = []Card{}
	h.Drew = []Card{}
	h.Played = []Card{}
	h.Gave = []Card{}
}
