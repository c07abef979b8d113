package engine

import "sort"

// Card-selection reducers: the per-player bulk-action modes, the per-card
// transient selection toggles, and the bulk commits that move every flagged
// card at once.

// Zone names a card collection a selection can target.
type Zone string

const (
	ZoneHand         Zone = "hand"
	ZoneCity         Zone = "city"
	ZoneMeadow       Zone = "meadow"
	ZoneReveal       Zone = "reveal"
	ZoneDiscard      Zone = "discard"
	ZoneLegends      Zone = "legends"
	ZoneFarmStack    Zone = "farmStack"
	ZoneOppositeCity Zone = "oppositeCity"
)

// zoneCards returns a pointer to the slice backing the zone, from the
// perspective of the given color. Nil for unknown zones.
func (s *GameState) zoneCards(color Color, z Zone) *[]Card {
	switch z {
	case ZoneHand:
		return &s.Players[color].Hand
	case ZoneCity:
		return &s.Players[color].City
	case ZoneMeadow:
		return &s.Meadow
	case ZoneReveal:
		return &s.Reveal
	case ZoneDiscard:
		return &s.Discard
	case ZoneLegends:
		return &s.Players[color].Legends
	case ZoneFarmStack:
		return &s.FarmStack
	case ZoneOppositeCity:
		return &s.Players[color.Opposite()].City
	}
	return nil
}

// sortCity re-sorts a city into canonical display order: stable by name.
func sortCity(city []Card) {
	sort.SliceStable(city, func(i, j int) bool { return city[i].Name < city[j].Name })
}

// setMode is the shared implementation of the three mode reducers.
// Enabling a mode while a different one is active is illegal; requesting
// the current state is a no-op.
func (s *GameState) setMode(playerID string, mode Mode, enabled bool) *GameState {
	color, ok := s.acting(playerID)
	if !ok {
		return s
	}
	p := s.Players[color]
	if enabled {
		if p.Mode == mode {
			return s
		}
		if p.Mode != ModeIdle {
			return s
		}
	} else {
		if p.Mode != mode {
			return s
		}
	}
	n := s.clone()
	if enabled {
		n.Players[color].Mode = mode
	} else {
		n.Players[color].Mode = ModeIdle
	}
	return s.commit(n)
}

// SetDiscarding toggles the discarding bulk-action mode.
func (s *GameState) SetDiscarding(playerID string, enabled bool) *GameState {
	return s.setMode(playerID, ModeDiscarding, enabled)
}

// SetPlaying toggles the playing bulk-action mode.
func (s *GameState) SetPlaying(playerID string, enabled bool) *GameState {
	return s.setMode(playerID, ModePlaying, enabled)
}

// SetGiving toggles the giving bulk-action mode.
func (s *GameState) SetGiving(playerID string, enabled bool) *GameState {
	return s.setMode(playerID, ModeGiving, enabled)
}

// toggleCardFlag flips one selection flag on a single card in the given
// zone without performing the bulk action yet.
func (s *GameState) toggleCardFlag(playerID string, zone Zone, idx int, flip func(*Card)) *GameState {
	color, ok := s.acting(playerID)
	if !ok {
		return s
	}
	cards := s.zoneCards(color, zone)
	if cards == nil || idx < 0 || idx >= len(*cards) {
		return s
	}
	n := s.clone()
	flip(&(*n.zoneCards(color, zone))[idx])
	return s.commit(n)
}

// ToggleCardDiscarding flips a card's discard-selection flag.
func (s *GameState) ToggleCardDiscarding(playerID string, zone Zone, idx int) *GameState {
	return s.toggleCardFlag(playerID, zone, idx, func(c *Card) { c.Discarding = !c.Discarding })
}

// ToggleCardPlaying flips a card's play-selection flag.
func (s *GameState) ToggleCardPlaying(playerID string, zone Zone, idx int) *GameState {
	return s.toggleCardFlag(playerID, zone, idx, func(c *Card) { c.Playing = !c.Playing })
}

// ToggleCardGiving flips a card's give-selection flag.
func (s *GameState) ToggleCardGiving(playerID string, zone Zone, idx int) *GameState {
	return s.toggleCardFlag(playerID, zone, idx, func(c *Card) { c.Giving = !c.Giving })
}

// selectionZones are the zones scanned by every bulk commit. The opponent's
// city is added for the play and give commits.
var selectionZones = []Zone{
	ZoneHand, ZoneCity, ZoneMeadow, ZoneReveal, ZoneDiscard, ZoneLegends, ZoneFarmStack,
}

// collectSelected removes every flagged card from the given zones and
// returns them grouped by the zone they came from, in zone order.
func (s *GameState) collectSelected(color Color, zones []Zone, selected func(Card) bool) map[Zone][]Card {
	acted := make(map[Zone][]Card)
	for _, z := range zones {
		cards := s.zoneCards(color, z)
		kept, taken := partitionCards(*cards, selected)
		if len(taken) == 0 {
			continue
		}
		*cards = kept
		acted[z] = taken
	}
	return acted
}

// DiscardSelectedCards commits the discarding selection: every flagged card
// in every zone moves to the shared discard pile, flags and stacking tags
// cleared, and the acting player's remaining city is re-stacked.
func (s *GameState) DiscardSelectedCards(playerID string) *GameState {
	color, ok := s.acting(playerID)
	if !ok {
		return s
	}
	if s.Players[color].Mode != ModeDiscarding {
		return s
	}
	n := s.clone()
	acted := n.collectSelected(color, selectionZones, func(c Card) bool { return c.Discarding })
	np := n.Players[color]
	for _, z := range selectionZones {
		for _, c := range acted[z] {
			clean := clearTransient(c)
			n.Discard = append(n.Discard, clean)
			if z == ZoneCity {
				np.History.CityDiscarded = append(np.History.CityDiscarded, clean)
			} else {
				np.History.Discarded = append(np.History.Discarded, clean)
			}
		}
	}
	recomputeBelow(np.City)
	np.Mode = ModeIdle
	return s.commit(n)
}

// PlaySelectedCards commits the playing selection: every flagged card moves
// into the acting player's city, except the give-away card which is routed
// into the opponent's city. Both affected cities are re-sorted and the
// acting player's city re-stacked.
func (s *GameState) PlaySelectedCards(playerID string) *GameState {
	color, ok := s.acting(playerID)
	if !ok {
		return s
	}
	if s.Players[color].Mode != ModePlaying {
		return s
	}
	n := s.clone()
	zones := append(append([]Zone(nil), selectionZones...), ZoneOppositeCity)
	acted := n.collectSelected(color, zones, func(c Card) bool { return c.Playing })
	np := n.Players[color]
	opp := n.Players[color.Opposite()]
	for _, z := range zones {
		for _, c := range acted[z] {
			clean := clearTransient(c)
			if clean.Name == giveAwayCard {
				opp.City = append(opp.City, clean)
			} else {
				np.City = append(np.City, clean)
			}
			np.History.Played = append(np.History.Played, clean)
		}
	}
	sortCity(np.City)
	sortCity(opp.City)
	recomputeBelow(np.City)
	np.Mode = ModeIdle
	return s.commit(n)
}

// GiveSelectedCards commits the giving selection: every flagged card moves
// into the target color's hand. Giving to oneself simply returns the cards
// to the own hand.
func (s *GameState) GiveSelectedCards(playerID string, target Color) *GameState {
	color, ok := s.acting(playerID)
	if !ok {
		return s
	}
	if !validColor(target) {
		return s
	}
	if s.Players[color].Mode != ModeGiving {
		return s
	}
	n := s.clone()
	zones := append(append([]Zone(nil), selectionZones...), ZoneOppositeCity)
	acted := n.collectSelected(color, zones, func(c Card) bool { return c.Giving })
	np := n.Players[color]
	for _, z := range zones {
		for _, c := range acted[z] {
			clean := clearTransient(c)
			n.Players[target].Hand = append(n.Players[target].Hand, clean)
			np.History.Gave = append(np.History.Gave, clean)
		}
	}
	recomputeBelow(np.City)
	np.Mode = ModeIdle
	return s.commit(n)
}

// PlayCard plays a single card directly from a zone and index, with the
// same give-away routing and re-stacking rules as the bulk commit.
func (s *GameState) PlayCard(playerID string, zone Zone, idx int) *GameState {
	color, ok := s.acting(playerID)
	if !ok {
		return s
	}
	cards := s.zoneCards(color, zone)
	if cards == nil || idx < 0 || idx >= len(*cards) {
		return s
	}
	n := s.clone()
	nz := n.zoneCards(color, zone)
	card := clearTransient((*nz)[idx])
	*nz = append((*nz)[:idx], (*nz)[idx+1:]...)
	np := n.Players[color]
	opp := n.Players[color.Opposite()]
	if card.Name == giveAwayCard {
		opp.City = append(opp.City, card)
		sortCity(opp.City)
	} else {
		np.City = append(np.City, card)
		sortCity(np.City)
	}
	np.History.Played = append(np.History.Played, card)
	recomputeBelow(np.City)
	return s.commit(n)
}

// PlayToOppositeCity relocates a card from the acting player's city into
// the opponent's city.
func (s *GameState) PlayToOppositeCity(playerID string, idx int) *GameState {
	color, ok := s.acting(playerID)
	if !ok {
		return s
	}
	if !s.CanPlayToOppositeCity(color, idx) {
		return s
	}
	n := s.clone()
	np := n.Players[color]
	opp := n.Players[color.Opposite()]
	card := clearTransient(np.City[idx])
	np.City = append(np.City[:idx], np.City[idx+1:]...)
	opp.City = append(opp.City, card)
	sortCity(opp.City)
	recomputeBelow(np.City)
	return s.commit(n)
}

// MoveCardBelowInCity re-tags a city card's stacking target.
func (s *GameState) MoveCardBelowInCity(playerID string, idx int, below string) *GameState {
	color, ok := s.acting(playerID)
	if !ok {
		return s
	}
	if !s.CanMoveCardBelow(color, idx, below) {
		return s
	}
	n := s.clone()
	n.Players[color].City[idx].Below = below
	return s.commit(n)
}
