package engine

// Action reducers: turn lifecycle, drawing, harvesting and resource
// movement. Every reducer resolves the acting player, validates legality,
// builds a structurally fresh candidate and finishes with the sanity check.
// Any refusal returns the input state unchanged.

// EndTurn flips the turn to the opposite color, rebuilds the new-turn
// player's history baseline and snapshots the resulting position for the
// one-turn undo.
func (s *GameState) EndTurn(playerID string) *GameState {
	color, ok := s.acting(playerID)
	if !ok {
		return s
	}
	if !s.CanEndTurn(color) {
		return s
	}
	n := s.clone()
	next := color.Opposite()
	n.Turn = next
	n.Players[next].History = newHistory(n.Players[next])
	n.Previous = n.Table.Clone()
	return s.commit(n)
}

// ResetTurn restores the turn-start snapshot as the live state, preserving
// each seat's live identity so a reconnect during the turn is not lost, and
// clearing the acting player's accumulated history lists. The snapshot is
// consumed by the restore; a second reset refuses until the next EndTurn
// takes a fresh one. No-op without a snapshot.
func (s *GameState) ResetTurn(playerID string) *GameState {
	color, ok := s.acting(playerID)
	if !ok {
		return s
	}
	if s.Previous == nil {
		return s
	}
	n := &GameState{Table: *s.Previous.Clone()}
	for _, c := range []Color{ColorRed, ColorBlue} {
		n.Players[c].ID = s.Players[c].ID
		n.Players[c].Name = s.Players[c].Name
		n.Players[c].Color = c
	}
	clearHistoryLists(&n.Players[color].History)
	return s.commit(n)
}

// DrawCard pops the top deck card into the acting player's hand. No-op when
// the deck is empty or the hand is at its limit.
func (s *GameState) DrawCard(playerID string) *GameState {
	color, ok := s.acting(playerID)
	if !ok {
		return s
	}
	p := s.Players[color]
	if len(s.Deck) == 0 || len(p.Hand) >= HandLimit(p) {
		return s
	}
	n := s.clone()
	np := n.Players[color]
	top := n.Deck[len(n.Deck)-1]
	n.Deck = n.Deck[:len(n.Deck)-1]
	np.Hand = append(np.Hand, top)
	np.History.Drew = append(np.History.Drew, top)
	return s.commit(n)
}

// RefillMeadow moves cards from the deck into the meadow until the meadow
// is full or the deck runs out.
func (s *GameState) RefillMeadow(playerID string) *GameState {
	_, ok := s.acting(playerID)
	if !ok {
		return s
	}
	if len(s.Deck) == 0 || len(s.Meadow) >= MaxMeadowSize {
		return s
	}
	n := s.clone()
	for len(n.Meadow) < MaxMeadowSize && len(n.Deck) > 0 {
		top := n.Deck[len(n.Deck)-1]
		n.Deck = n.Deck[:len(n.Deck)-1]
		n.Meadow = append(n.Meadow, top)
	}
	return s.commit(n)
}

// RevealCard moves one card into the shared reveal zone: the top of the
// deck, or a uniformly random discard card since discard order carries no
// meaningful top.
func (s *GameState) RevealCard(playerID string, fromDiscard bool) *GameState {
	color, ok := s.acting(playerID)
	if !ok {
		return s
	}
	if !s.CanRevealCard(color, fromDiscard) {
		return s
	}
	n := s.clone()
	var card Card
	if fromDiscard {
		idx := n.randN(len(n.Discard))
		card = n.Discard[idx]
		n.Discard = append(n.Discard[:idx], n.Discard[idx+1:]...)
	} else {
		card = n.Deck[len(n.Deck)-1]
		n.Deck = n.Deck[:len(n.Deck)-1]
	}
	n.Reveal = append(n.Reveal, card)
	return s.commit(n)
}

// Harvest advances the acting player one season and replenishes their
// worker pool to the new allotment, recalling every stationed worker except
// those on permanent-retention destinations. Opponent placements are left
// untouched. Autumn is terminal.
func (s *GameState) Harvest(playerID string) *GameState {
	color, ok := s.acting(playerID)
	if !ok {
		return s
	}
	next, ok := s.Players[color].Season.Next()
	if !ok {
		return s
	}
	n := s.clone()
	np := n.Players[color]
	np.Season = next

	stuck := 0
	for _, c := range []Color{ColorRed, ColorBlue} {
		city := n.Players[c].City
		for i := range city {
			card := &city[i]
			if card.Workers.Of(color) == 0 {
				continue
			}
			if card.Permanent {
				stuck += card.Workers.Of(color)
				continue
			}
			card.Workers.Add(color, -card.Workers.Of(color))
			if card.ActiveDestinations != nil {
				total := card.Workers.Total()
				card.ActiveDestinations = &total
			}
		}
	}
	for i := range n.Locations {
		w := &n.Locations[i].Workers
		w.Add(color, -w.Of(color))
	}
	for i := range n.Journeys {
		w := &n.Journeys[i].Workers
		w.Add(color, -w.Of(color))
	}
	for i := range n.Events {
		w := &n.Events[i].Workers
		w.Add(color, -w.Of(color))
	}
	for i := range n.SpecialEvents {
		w := &n.SpecialEvents[i].Workers
		w.Add(color, -w.Of(color))
	}

	allotment := next.WorkerAllotment()
	np.Workers.MaxWorkers = allotment
	np.Workers.WorkersLeft = allotment - stuck
	return s.commit(n)
}

// SwapHands exchanges the full hands of the two seats.
func (s *GameState) SwapHands(playerID string) *GameState {
	color, ok := s.acting(playerID)
	if !ok {
		return s
	}
	if !s.CanSwapHands(color) {
		return s
	}
	n := s.clone()
	opp := color.Opposite()
	n.Players[color].Hand, n.Players[opp].Hand = n.Players[opp].Hand, n.Players[color].Hand
	return s.commit(n)
}

// AddResourcesToSelf is the general resource/card-grant primitive, used
// both as a public entry point and internally by the visit reducers. Card
// draws are delivered through DrawCard one at a time so hand-size and
// deck-exhaustion limits hold even for indirect grants; every other kind is
// added to the pool, clamped at zero.
func (s *GameState) AddResourcesToSelf(playerID string, delta ResourceCount) *GameState {
	color, ok := s.acting(playerID)
	if !ok {
		return s
	}
	cur := s
	for i := 0; i < delta.Get(CardDraws); i++ {
		cur = cur.DrawCard(playerID)
	}

	rest := delta
	rest.Set(CardDraws, 0)
	if rest.IsZero() {
		return cur
	}
	n := cur.clone()
	np := n.Players[color]
	for _, k := range ResourceKinds {
		if k == CardDraws {
			continue
		}
		np.Resources.AddClamped(k, rest.Get(k))
	}
	return cur.commit(n)
}

// GiveResources transfers a resource bundle to the target player. The whole
// operation is refused if the actor lacks balance in any transferable kind;
// non-transferable kinds (card and wildcard entitlements) are excluded from
// this path entirely.
func (s *GameState) GiveResources(playerID string, target Color, amount ResourceCount) *GameState {
	color, ok := s.acting(playerID)
	if !ok {
		return s
	}
	if !s.CanGiveResources(color, target) {
		return s
	}
	actor := s.Players[color]
	for _, k := range ResourceKinds {
		if !k.Transferable() {
			continue
		}
		if actor.Resources.Get(k) < amount.Get(k) {
			return s
		}
	}
	if color == target {
		return s
	}
	moved := false
	for _, k := range ResourceKinds {
		if k.Transferable() && amount.Get(k) > 0 {
			moved = true
		}
	}
	if !moved {
		return s
	}
	n := s.clone()
	for _, k := range ResourceKinds {
		if !k.Transferable() {
			continue
		}
		v := amount.Get(k)
		if v <= 0 {
			continue
		}
		n.Players[color].Resources.AddClamped(k, -v)
		n.Players[target].Resources.AddClamped(k, v)
	}
	return s.commit(n)
}

// AddResourcesToLocation adjusts a location's banked storage by a signed
// delta per kind, clamped at zero.
func (s *GameState) AddResourcesToLocation(playerID string, idx int, delta ResourceCount) *GameState {
	color, ok := s.acting(playerID)
	if !ok {
		return s
	}
	if !s.CanAddResourcesToLocation(idx, color) {
		return s
	}
	n := s.clone()
	storage := n.Locations[idx].Storage
	for _, k := range ResourceKinds {
		storage.AddClamped(k, delta.Get(k))
	}
	return s.commit(n)
}

// AddResourcesToCardInCity adjusts a storage-capable city card's banked
// resources by a signed delta per kind, clamped at zero.
func (s *GameState) AddResourcesToCardInCity(playerID string, owner Color, idx int, delta ResourceCount) *GameState {
	color, ok := s.acting(playerID)
	if !ok {
		return s
	}
	if !s.CanAddResourcesToCardInCity(owner, idx, color) {
		return s
	}
	n := s.clone()
	storage := n.Players[owner].City[idx].Storage
	for _, k := range ResourceKinds {
		storage.AddClamped(k, delta.Get(k))
	}
	return s.commit(n)
}

// AddResourcesToPower adjusts the banked storage of the acting player's
// power by a signed delta per kind, clamped at zero.
func (s *GameState) AddResourcesToPower(playerID string, delta ResourceCount) *GameState {
	color, ok := s.acting(playerID)
	if !ok {
		return s
	}
	if !s.CanAddResourcesToPower(color) {
		return s
	}
	n := s.clone()
	power := n.Players[color].Power
	for _, k := range ResourceKinds {
		power.Storage.AddClamped(k, delta.Get(k))
	}
	return s.commit(n)
}

// ToggleOccupiedCardInCity flips the occupancy of a pairing-capable
// construction, the free-critter-via-occupancy mechanic. No-op on cards
// without a pairing slot.
func (s *GameState) ToggleOccupiedCardInCity(playerID string, idx int) *GameState {
	color, ok := s.acting(playerID)
	if !ok {
		return s
	}
	city := s.Players[color].City
	if idx < 0 || idx >= len(city) || city[idx].Occupied == nil {
		return s
	}
	n := s.clone()
	occ := n.Players[color].City[idx].Occupied
	*occ = !*occ
	return s.commit(n)
}

// PlaceCharacterOnLocation adjusts a per-character-type counter on a
// location's roster by ±1.
func (s *GameState) PlaceCharacterOnLocation(playerID string, idx int, character string, delta int) *GameState {
	_, ok := s.acting(playerID)
	if !ok {
		return s
	}
	if !s.CanPlaceCharacter(idx, character, delta) {
		return s
	}
	n := s.clone()
	n.Locations[idx].Characters[character] += delta
	return s.commit(n)
}

// NextPower cycles the acting player's power through the power catalog by
// direction (+1 forward, -1 backward), wrapping modulo catalog size.
func (s *GameState) NextPower(playerID string, direction int) *GameState {
	color, ok := s.acting(playerID)
	if !ok {
		return s
	}
	if !s.PowersEnabled || len(s.Powers) == 0 {
		return s
	}
	if direction != 1 && direction != -1 {
		return s
	}
	cur := -1
	if p := s.Players[color].Power; p != nil {
		for i := range s.Powers {
			if s.Powers[i].Name == p.Name {
				cur = i
				break
			}
		}
	}
	next := (cur + direction + len(s.Powers)) % len(s.Powers)
	n := s.clone()
	pw := n.Powers[next]
	n.Players[color].Power = &pw
	return s.commit(n)
}
