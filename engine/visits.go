package engine

// Worker-placement reducers. The shared pattern: adjust worker counts on
// the player and the target entity by ±1, and on arrival deliver the
// entity's reward through AddResourcesToSelf, which re-validates hand and
// deck limits on its own.

// VisitLocation moves a worker onto or off a board location. Arrival grants
// the location's fixed resource bundle.
func (s *GameState) VisitLocation(playerID string, idx, workersVisiting int) *GameState {
	color, ok := s.acting(playerID)
	if !ok {
		return s
	}
	if !s.CanVisitLocation(idx, color, workersVisiting) {
		return s
	}
	n := s.clone()
	n.Locations[idx].Workers.Add(color, workersVisiting)
	n.Players[color].Workers.WorkersLeft -= workersVisiting
	out := s.commit(n)
	if out == s || workersVisiting != 1 {
		return out
	}
	return out.AddResourcesToSelf(playerID, out.Locations[idx].Resources)
}

// VisitJourney moves a worker onto or off a journey. Arrival pays the
// journey's coin value; the discard cost is a precondition of the caller's
// workflow, not enforced here.
func (s *GameState) VisitJourney(playerID string, idx, workersVisiting int) *GameState {
	color, ok := s.acting(playerID)
	if !ok {
		return s
	}
	if !s.CanVisitJourney(idx, color, workersVisiting) {
		return s
	}
	n := s.clone()
	n.Journeys[idx].Workers.Add(color, workersVisiting)
	n.Players[color].Workers.WorkersLeft -= workersVisiting
	out := s.commit(n)
	if out == s || workersVisiting != 1 {
		return out
	}
	coins := ResourceCount{}
	coins.Set(Coins, out.Journeys[idx].Value)
	return out.AddResourcesToSelf(playerID, coins)
}

// VisitEvent moves a worker onto or off an event. Arrival marks the event
// used and pays its coin value.
func (s *GameState) VisitEvent(playerID string, idx, workersVisiting int) *GameState {
	color, ok := s.acting(playerID)
	if !ok {
		return s
	}
	if !s.CanVisitEvent(idx, color, workersVisiting) {
		return s
	}
	n := s.clone()
	n.Events[idx].Workers.Add(color, workersVisiting)
	n.Players[color].Workers.WorkersLeft -= workersVisiting
	if workersVisiting == 1 {
		n.Events[idx].Used = true
	}
	out := s.commit(n)
	if out == s || workersVisiting != 1 {
		return out
	}
	coins := ResourceCount{}
	coins.Set(Coins, out.Events[idx].Value)
	return out.AddResourcesToSelf(playerID, coins)
}

// VisitSpecialEvent moves a worker onto or off a special event. Arrival
// marks it used and pays its coin value when it has one.
func (s *GameState) VisitSpecialEvent(playerID string, idx, workersVisiting int) *GameState {
	color, ok := s.acting(playerID)
	if !ok {
		return s
	}
	if !s.CanVisitSpecialEvent(idx, color, workersVisiting) {
		return s
	}
	n := s.clone()
	n.SpecialEvents[idx].Workers.Add(color, workersVisiting)
	n.Players[color].Workers.WorkersLeft -= workersVisiting
	if workersVisiting == 1 {
		n.SpecialEvents[idx].Used = true
	}
	out := s.commit(n)
	if out == s || workersVisiting != 1 || out.SpecialEvents[idx].Value == 0 {
		return out
	}
	coins := ResourceCount{}
	coins.Set(Coins, out.SpecialEvents[idx].Value)
	return out.AddResourcesToSelf(playerID, coins)
}

// VisitCardInCity moves a worker onto or off a destination-bearing city
// card, in either city, keeping the card's active-destination counter in
// step with its worker total.
func (s *GameState) VisitCardInCity(playerID string, owner Color, idx, workersVisiting int) *GameState {
	color, ok := s.acting(playerID)
	if !ok {
		return s
	}
	if !s.CanVisitCardInCity(owner, idx, color, workersVisiting) {
		return s
	}
	n := s.clone()
	card := &n.Players[owner].City[idx]
	card.Workers.Add(color, workersVisiting)
	total := card.Workers.Total()
	card.ActiveDestinations = &total
	n.Players[color].Workers.WorkersLeft -= workersVisiting
	return s.commit(n)
}

// AchieveEvent claims an event without a worker, gated only by the city
// requirement. Marks the event used and pays the coin reward.
func (s *GameState) AchieveEvent(playerID string, idx int) *GameState {
	color, ok := s.acting(playerID)
	if !ok {
		return s
	}
	if !s.CanAchieveEvent(idx, color) {
		return s
	}
	n := s.clone()
	n.Events[idx].Used = true
	out := s.commit(n)
	if out == s {
		return out
	}
	coins := ResourceCount{}
	coins.Set(Coins, out.Events[idx].Value)
	return out.AddResourcesToSelf(playerID, coins)
}

// AchieveSpecialEvent claims a special event without a worker.
func (s *GameState) AchieveSpecialEvent(playerID string, idx int) *GameState {
	color, ok := s.acting(playerID)
	if !ok {
		return s
	}
	if !s.CanAchieveSpecialEvent(idx, color) {
		return s
	}
	n := s.clone()
	n.SpecialEvents[idx].Used = true
	out := s.commit(n)
	if out == s || out.SpecialEvents[idx].Value == 0 {
		return out
	}
	coins := ResourceCount{}
	coins.Set(Coins, out.SpecialEvents[idx].Value)
	return out.AddResourcesToSelf(playerID, coins)
}
