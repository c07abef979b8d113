package engine

// Legality predicates. Pure boolean functions over the current state; the
// reducers call these before mutating and treat a false as a silent no-op.

// canVisitGeneric checks the worker-pool arithmetic shared by every
// Visitable: a delta of +1 (arrive) or -1 (leave) is legal iff the
// resulting pool stays within [0, MaxWorkers] and a departure never removes
// a worker the color does not have on the entity.
func canVisitGeneric(p *Player, w WorkerCount, color Color, delta int) bool {
	if delta != 1 && delta != -1 {
		return false
	}
	left := p.Workers.WorkersLeft - delta
	if left < 0 || left > p.Workers.MaxWorkers {
		return false
	}
	if delta == -1 && w.Of(color) < 1 {
		return false
	}
	return true
}

// CanVisitLocation checks a worker move on a board location. Arriving at an
// exclusive location already hosting any worker is illegal.
func (s *GameState) CanVisitLocation(idx int, color Color, delta int) bool {
	if idx < 0 || idx >= len(s.Locations) {
		return false
	}
	loc := s.Locations[idx]
	if !canVisitGeneric(s.Players[color], loc.Workers, color, delta) {
		return false
	}
	if delta == 1 && loc.Exclusive && loc.Workers.Total() > 0 {
		return false
	}
	return true
}

// CanVisitJourney checks a worker move on a journey. Journeys follow
// location exclusivity and additionally require the acting player to be in
// Autumn to arrive.
func (s *GameState) CanVisitJourney(idx int, color Color, delta int) bool {
	if idx < 0 || idx >= len(s.Journeys) {
		return false
	}
	j := s.Journeys[idx]
	if !canVisitGeneric(s.Players[color], j.Workers, color, delta) {
		return false
	}
	if delta == 1 {
		if j.Exclusive && j.Workers.Total() > 0 {
			return false
		}
		if s.Players[color].Season != Autumn {
			return false
		}
	}
	return true
}

// CanVisitEvent checks a worker move on an event. Arrival requires the
// event to be unclaimed and the city to hold enough cards of the matching
// effect type.
func (s *GameState) CanVisitEvent(idx int, color Color, delta int) bool {
	if idx < 0 || idx >= len(s.Events) {
		return false
	}
	ev := s.Events[idx]
	if !canVisitGeneric(s.Players[color], ev.Workers, color, delta) {
		return false
	}
	if delta == 1 {
		if ev.Used {
			return false
		}
		if countByEffectType(s.Players[color].City, ev.EffectType) < ev.EffectTypeCount {
			return false
		}
	}
	return true
}

// CanVisitSpecialEvent checks a worker move on a special event. Arrival
// requires every named card present in the city and every per-effect-type
// minimum met.
func (s *GameState) CanVisitSpecialEvent(idx int, color Color, delta int) bool {
	if idx < 0 || idx >= len(s.SpecialEvents) {
		return false
	}
	ev := s.SpecialEvents[idx]
	if !canVisitGeneric(s.Players[color], ev.Workers, color, delta) {
		return false
	}
	if delta == 1 {
		if ev.Used {
			return false
		}
		if !s.meetsSpecialEventRequirements(ev, color) {
			return false
		}
	}
	return true
}

// meetsSpecialEventRequirements checks the city against a special event's
// named-card and effect-type requirements. Duplicate names in
// CardRequirement are treated as content-authoring errors; the check is
// has-at-least-one-of-each.
func (s *GameState) meetsSpecialEventRequirements(ev SpecialEvent, color Color) bool {
	city := s.Players[color].City
	for _, name := range ev.CardRequirement {
		if !containsName(city, name) {
			return false
		}
	}
	for et, min := range ev.EffectTypeRequirement {
		if countByEffectType(city, et) < min {
			return false
		}
	}
	return true
}

// CanVisitCardInCity checks a worker move on a destination-bearing city
// card. Arrival must not exceed the card's destination slot count.
func (s *GameState) CanVisitCardInCity(owner Color, idx int, color Color, delta int) bool {
	if !validColor(owner) {
		return false
	}
	city := s.Players[owner].City
	if idx < 0 || idx >= len(city) {
		return false
	}
	card := city[idx]
	if card.MaxDestinations == nil {
		return false
	}
	if !canVisitGeneric(s.Players[color], card.Workers, color, delta) {
		return false
	}
	if delta == 1 && card.Workers.Total() >= *card.MaxDestinations {
		return false
	}
	return true
}

// CanAchieveEvent checks the claim action for an event: no worker needed,
// only the city requirement.
func (s *GameState) CanAchieveEvent(idx int, color Color) bool {
	if idx < 0 || idx >= len(s.Events) {
		return false
	}
	ev := s.Events[idx]
	if ev.Used {
		return false
	}
	return countByEffectType(s.Players[color].City, ev.EffectType) >= ev.EffectTypeCount
}

// CanAchieveSpecialEvent checks the claim action for a special event.
func (s *GameState) CanAchieveSpecialEvent(idx int, color Color) bool {
	if idx < 0 || idx >= len(s.SpecialEvents) {
		return false
	}
	ev := s.SpecialEvents[idx]
	if ev.Used {
		return false
	}
	return s.meetsSpecialEventRequirements(ev, color)
}

// CanEndTurn is legal only when the shared meadow is fully replenished (or
// the deck exhausted) and the acting player is in no bulk-action mode.
func (s *GameState) CanEndTurn(color Color) bool {
	if s.Players[color].Mode != ModeIdle {
		return false
	}
	return len(s.Meadow) == MaxMeadowSize || len(s.Deck) == 0
}

// ---------------------------------------------------------------------------
// Capability permission model
// ---------------------------------------------------------------------------

// Capability is a gated action kind unlocked by city contents or an active
// special event rather than by a worker placement.
type Capability uint8

const (
	CapGiveToSelf Capability = iota
	CapGiveToOpponent
	CapRevealDeck
	CapRevealDiscard
	CapGiveResources
	CapSwapHands
)

// capabilityGrant lists, per capability: cards in the acting player's own
// city that unlock it, cards in the opponent's city that unlock it for the
// opponent's benefit, and special events that unlock it while on the board.
type capabilityGrant struct {
	ownCity       []string
	opponentCity  []string
	specialEvents []string
}

var capabilityGrants = map[Capability]capabilityGrant{
	CapGiveToSelf: {
		ownCity:       []string{"Storehouse", "Chip Sweep", "Woodcarver"},
		specialEvents: []string{"An Evening of Fireworks"},
	},
	CapGiveToOpponent: {
		ownCity:       []string{"Monk", "Shepherd"},
		opponentCity:  []string{"Monk"},
		specialEvents: []string{"A Well-Run City"},
	},
	CapRevealDeck: {
		ownCity:       []string{"Postal Pigeon", "Cemetery"},
		specialEvents: []string{"Flying Doctor Service"},
	},
	CapRevealDiscard: {
		ownCity:       []string{"Cemetery", "Undertaker"},
		specialEvents: []string{"Graduation of Scholars"},
	},
	CapGiveResources: {
		ownCity:       []string{"Monk"},
		opponentCity:  []string{"Shepherd"},
		specialEvents: []string{"A Well-Run City"},
	},
	CapSwapHands: {
		ownCity:       []string{"Teacher"},
		specialEvents: []string{"A Brilliant Marketing Plan"},
	},
}

// greenCopyCard copies the opponent's production abilities, extending every
// own-city grant to green cards sitting in the opponent's city.
const greenCopyCard = "Miner Mole"

// HasCapability reports whether the capability is unlocked for the color:
// by an unlocking card in the own city, an unlocking card in the opponent's
// city, an achieved special event, or the green-copy card mirroring an
// opponent's green unlocking card.
func (s *GameState) HasCapability(color Color, cap Capability) bool {
	grant, ok := capabilityGrants[cap]
	if !ok {
		return false
	}
	own := s.Players[color].City
	opp := s.Players[color.Opposite()].City

	if containsAnyName(own, grant.ownCity) {
		return true
	}
	if containsAnyName(opp, grant.opponentCity) {
		return true
	}
	for _, ev := range s.SpecialEvents {
		if !ev.Used {
			continue
		}
		for _, name := range grant.specialEvents {
			if ev.Name == name {
				return true
			}
		}
	}
	if containsName(own, greenCopyCard) {
		for _, c := range opp {
			if c.EffectType != Production {
				continue
			}
			for _, name := range grant.ownCity {
				if c.Name == name {
					return true
				}
			}
		}
	}
	return false
}

// CanAddResourcesToLocation gates banking resources on a storage-capable
// location.
func (s *GameState) CanAddResourcesToLocation(idx int, color Color) bool {
	if idx < 0 || idx >= len(s.Locations) {
		return false
	}
	if s.Locations[idx].Storage == nil {
		return false
	}
	return s.HasCapability(color, CapGiveToSelf)
}

// CanAddResourcesToCardInCity gates banking resources on a storage-capable
// city card. Mutating the opponent's card requires the give-to-opponent
// capability.
func (s *GameState) CanAddResourcesToCardInCity(owner Color, idx int, color Color) bool {
	if !validColor(owner) {
		return false
	}
	city := s.Players[owner].City
	if idx < 0 || idx >= len(city) {
		return false
	}
	if city[idx].Storage == nil {
		return false
	}
	if owner == color {
		return s.HasCapability(color, CapGiveToSelf)
	}
	return s.HasCapability(color, CapGiveToOpponent)
}

// CanAddResourcesToPower gates banking resources against the acting
// player's power.
func (s *GameState) CanAddResourcesToPower(color Color) bool {
	if !s.PowersEnabled || s.Players[color].Power == nil {
		return false
	}
	return s.HasCapability(color, CapGiveToSelf)
}

// CanRevealCard gates moving a card into the reveal zone, from the deck or
// from the discard pile.
func (s *GameState) CanRevealCard(color Color, fromDiscard bool) bool {
	if len(s.Reveal) >= MaxRevealSize {
		return false
	}
	if fromDiscard {
		return len(s.Discard) > 0 && s.HasCapability(color, CapRevealDiscard)
	}
	return len(s.Deck) > 0 && s.HasCapability(color, CapRevealDeck)
}

// CanGiveResources gates a direct resource transfer to the target color.
// Giving to oneself is always permitted; crossing the table requires the
// capability.
func (s *GameState) CanGiveResources(color, target Color) bool {
	if !validColor(target) {
		return false
	}
	if color == target {
		return true
	}
	return s.HasCapability(color, CapGiveResources)
}

// CanSwapHands gates the full hand exchange.
func (s *GameState) CanSwapHands(color Color) bool {
	return s.HasCapability(color, CapSwapHands)
}

// CanPlayToOppositeCity gates relocating a city card across the table:
// only the designated give-away card may move.
func (s *GameState) CanPlayToOppositeCity(color Color, idx int) bool {
	city := s.Players[color].City
	if idx < 0 || idx >= len(city) {
		return false
	}
	return city[idx].Name == giveAwayCard
}

// CanMoveCardBelow gates re-tagging a card's stacking target. The target
// must be a stacking host present in the city, and hosts never stack
// themselves.
func (s *GameState) CanMoveCardBelow(color Color, idx int, below string) bool {
	city := s.Players[color].City
	if idx < 0 || idx >= len(city) {
		return false
	}
	if below == "" {
		return true // clearing a tag is always fine
	}
	if below != stackHusband && below != stackDungeon {
		return false
	}
	if city[idx].Name == stackHusband {
		return false
	}
	return containsName(city, below)
}

// CanPlaceCharacter gates adjusting a location's character roster.
func (s *GameState) CanPlaceCharacter(idx int, character string, delta int) bool {
	if idx < 0 || idx >= len(s.Locations) {
		return false
	}
	if delta != 1 && delta != -1 {
		return false
	}
	roster := s.Locations[idx].Characters
	if roster == nil {
		return false
	}
	return roster[character]+delta >= 0
}
