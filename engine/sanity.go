package engine

// SanityCheck is the global invariant checker run at the end of every
// reducer. A single failure vetoes the entire candidate transition; the
// reducer discards the candidate and returns the pre-transition state.
//
// The one-turn undo bound (previousState.previousState == null) is enforced
// by construction: Previous is a Table, which has no Previous field.
func (s *GameState) SanityCheck() bool {
	for _, color := range []Color{ColorRed, ColorBlue} {
		p, ok := s.Players[color]
		if !ok || p == nil {
			return false
		}
		if len(p.Hand) > HandLimit(p) {
			return false
		}
		if len(p.City) > MaxCitySize(p.City) {
			return false
		}
	}
	if len(s.Meadow) > MaxMeadowSize {
		return false
	}
	if len(s.Reveal) > MaxRevealSize {
		return false
	}

	// Resource conservation: the fixed bank supply minus everything held by
	// players and banked in city cards must stay non-negative.
	for _, k := range ResourceKinds {
		remaining := bankSupply.Get(k)
		for _, color := range []Color{ColorRed, ColorBlue} {
			p := s.Players[color]
			remaining -= p.Resources.Get(k)
			remaining -= cityStorageTotal(p.City, k)
		}
		if remaining < 0 {
			return false
		}
	}
	return true
}
