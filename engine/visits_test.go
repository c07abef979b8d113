package engine

import "testing"

func TestVisitLocationGrantsBundle(t *testing.T) {
	s := newTestGame(t)

	out := s.VisitLocation(redID, 0, 1) // Three Twigs
	if out == s {
		t.Fatal("visit refused")
	}
	p := out.Players[ColorRed]
	if got := p.Resources.Get(Twigs); got != 3 {
		t.Errorf("twigs = %d, want 3", got)
	}
	if p.Workers.WorkersLeft != 1 {
		t.Errorf("workers left = %d, want 1", p.Workers.WorkersLeft)
	}
	if got := out.Locations[0].Workers.Of(ColorRed); got != 1 {
		t.Errorf("location workers = %d, want 1", got)
	}
}

func TestVisitLocationDrawBundle(t *testing.T) {
	s := newTestGame(t)
	handBefore := len(s.Players[ColorRed].Hand)

	out := s.VisitLocation(redID, 1, 1) // Two Twigs and a Card
	if out == s {
		t.Fatal("visit refused")
	}
	p := out.Players[ColorRed]
	if got := p.Resources.Get(Twigs); got != 2 {
		t.Errorf("twigs = %d, want 2", got)
	}
	if got := len(p.Hand); got != handBefore+1 {
		t.Errorf("hand = %d, want %d", got, handBefore+1)
	}
	if got := p.Resources.Get(CardDraws); got != 0 {
		t.Errorf("draw entitlement banked as a resource: %d", got)
	}
}

func TestVisitLocationExclusive(t *testing.T) {
	s := newTestGame(t)

	s = s.VisitLocation(redID, 1, 1)
	if s.Locations[1].Workers.Of(ColorRed) != 1 {
		t.Fatal("setup visit failed")
	}

	// A second arrival is refused while any worker is present, for either
	// color.
	if out := s.VisitLocation(redID, 1, 1); out != s {
		t.Error("second red arrival at exclusive location produced a new state")
	}
	s.Turn = ColorBlue
	if out := s.VisitLocation(blueID, 1, 1); out != s {
		t.Error("blue arrival at occupied exclusive location produced a new state")
	}

	// Departure frees the space.
	s.Turn = ColorRed
	s = s.VisitLocation(redID, 1, -1)
	if s.Locations[1].Workers.Total() != 0 {
		t.Fatal("departure failed")
	}
	if s.Players[ColorRed].Workers.WorkersLeft != 2 {
		t.Errorf("workers left = %d, want 2 after departure", s.Players[ColorRed].Workers.WorkersLeft)
	}
	s.Turn = ColorBlue
	if out := s.VisitLocation(blueID, 1, 1); out == s {
		t.Error("blue arrival refused at freed exclusive location")
	}
}

func TestVisitIllegalMovesNoOp(t *testing.T) {
	s := newTestGame(t)

	if out := s.VisitLocation(redID, 0, -1); out != s {
		t.Error("departure with no stationed worker produced a new state")
	}
	if out := s.VisitLocation(redID, 0, 2); out != s {
		t.Error("delta of 2 produced a new state")
	}
	if out := s.VisitLocation(redID, -1, 1); out != s {
		t.Error("negative index produced a new state")
	}
	if out := s.VisitLocation(redID, len(s.Locations), 1); out != s {
		t.Error("out-of-range index produced a new state")
	}

	// Exhaust the pool, then one more arrival.
	s = s.VisitLocation(redID, 0, 1).VisitLocation(redID, 5, 1)
	if s.Players[ColorRed].Workers.WorkersLeft != 0 {
		t.Fatal("pool not exhausted")
	}
	if out := s.VisitLocation(redID, 2, 1); out != s {
		t.Error("arrival with empty pool produced a new state")
	}
}

func TestVisitJourneyAutumnGate(t *testing.T) {
	s := newTestGame(t)

	if out := s.VisitJourney(redID, 0, 1); out != s {
		t.Fatal("Winter journey visit produced a new state")
	}

	s.Players[ColorRed].Season = Autumn
	out := s.VisitJourney(redID, 0, 1) // Journey of Five
	if out == s {
		t.Fatal("Autumn journey visit refused")
	}
	if got := out.Players[ColorRed].Resources.Get(Coins); got != 5 {
		t.Errorf("coins = %d, want 5", got)
	}
	if out.Players[ColorRed].Workers.WorkersLeft != 1 {
		t.Errorf("workers left = %d, want 1", out.Players[ColorRed].Workers.WorkersLeft)
	}

	// The top journeys are exclusive; the low ones are not.
	out.Turn = ColorBlue
	out.Players[ColorBlue].Season = Autumn
	if out2 := out.VisitJourney(blueID, 0, 1); out2 != out {
		t.Error("blue arrival at occupied exclusive journey produced a new state")
	}
	if out2 := out.VisitJourney(blueID, 3, 1); out2 == out {
		t.Error("blue arrival at shared journey refused")
	} else if got := out2.Players[ColorBlue].Resources.Get(Coins); got != 2 {
		t.Errorf("blue coins = %d, want 2", got)
	}
}

func TestVisitEvent(t *testing.T) {
	s := newTestGame(t)
	for i := 0; i < 4; i++ {
		s.Players[ColorRed].City = append(s.Players[ColorRed].City, Card{
			Name: "Farm", CardType: Construction, EffectType: Production,
		})
	}

	out := s.VisitEvent(redID, 0, 1) // Harvest Festival: 4 production
	if out == s {
		t.Fatal("event visit refused with requirement met")
	}
	if !out.Events[0].Used {
		t.Error("event not marked used")
	}
	if got := out.Players[ColorRed].Resources.Get(Coins); got != 3 {
		t.Errorf("coins = %d, want 3", got)
	}
	if out.Players[ColorRed].Workers.WorkersLeft != 1 {
		t.Errorf("workers left = %d, want 1", out.Players[ColorRed].Workers.WorkersLeft)
	}

	// Used events cannot be visited or achieved again.
	if out2 := out.VisitEvent(redID, 0, 1); out2 != out {
		t.Error("second visit to used event produced a new state")
	}
	if out2 := out.AchieveEvent(redID, 0); out2 != out {
		t.Error("achieve on used event produced a new state")
	}
}

func TestVisitEventRequirementUnmet(t *testing.T) {
	s := newTestGame(t)
	if out := s.VisitEvent(redID, 0, 1); out != s {
		t.Error("event visit with empty city produced a new state")
	}
}

func TestAchieveEvent(t *testing.T) {
	s := newTestGame(t)
	for i := 0; i < 3; i++ {
		s.Players[ColorRed].City = append(s.Players[ColorRed].City, Card{
			Name: "Crane", CardType: Construction, EffectType: Governance,
		})
	}

	out := s.AchieveEvent(redID, 1) // City Assembly: 3 governance
	if out == s {
		t.Fatal("achieve refused with requirement met")
	}
	if !out.Events[1].Used {
		t.Error("event not marked used")
	}
	if got := out.Players[ColorRed].Resources.Get(Coins); got != 3 {
		t.Errorf("coins = %d, want 3", got)
	}
	if out.Players[ColorRed].Workers.WorkersLeft != 2 {
		t.Error("achieve consumed a worker")
	}
}

func TestVisitSpecialEvent(t *testing.T) {
	s := newTestGame(t)
	s.SpecialEvents = []SpecialEvent{{
		Name: "An Evening of Fireworks", Value: 2,
		CardRequirement:       []string{"Farm"},
		EffectTypeRequirement: map[EffectType]int{Production: 1},
	}}

	if out := s.VisitSpecialEvent(redID, 0, 1); out != s {
		t.Fatal("special event visit with unmet requirement produced a new state")
	}

	s.Players[ColorRed].City = append(s.Players[ColorRed].City, Card{
		Name: "Farm", CardType: Construction, EffectType: Production,
	})
	out := s.VisitSpecialEvent(redID, 0, 1)
	if out == s {
		t.Fatal("special event visit refused with requirement met")
	}
	if !out.SpecialEvents[0].Used {
		t.Error("special event not marked used")
	}
	if got := out.Players[ColorRed].Resources.Get(Coins); got != 2 {
		t.Errorf("coins = %d, want 2", got)
	}
}

func TestAchieveSpecialEvent(t *testing.T) {
	s := newTestGame(t)
	s.SpecialEvents = []SpecialEvent{{
		Name: "Path of the Pilgrims", Value: 3,
		CardRequirement: []string{"Monastery", "Monk"},
	}}
	s.Players[ColorRed].City = append(s.Players[ColorRed].City,
		Card{Name: "Monastery", CardType: Construction, EffectType: Destination},
	)

	// Only one of the two named cards present.
	if out := s.AchieveSpecialEvent(redID, 0); out != s {
		t.Fatal("achieve with partial requirement produced a new state")
	}

	s.Players[ColorRed].City = append(s.Players[ColorRed].City,
		Card{Name: "Monk", CardType: Critter, EffectType: Production},
	)
	out := s.AchieveSpecialEvent(redID, 0)
	if out == s {
		t.Fatal("achieve refused with full requirement")
	}
	if !out.SpecialEvents[0].Used {
		t.Error("special event not marked used")
	}
	if got := out.Players[ColorRed].Resources.Get(Coins); got != 3 {
		t.Errorf("coins = %d, want 3", got)
	}
}

func TestVisitCardInCity(t *testing.T) {
	s := newTestGame(t)
	s.Players[ColorRed].City = append(s.Players[ColorRed].City, destination(Card{
		Name: "Inn", CardType: Construction, EffectType: Destination,
	}, 1))

	out := s.VisitCardInCity(redID, ColorRed, 0, 1)
	if out == s {
		t.Fatal("visit refused on destination card")
	}
	card := out.Players[ColorRed].City[0]
	if card.Workers.Of(ColorRed) != 1 {
		t.Errorf("card workers = %d, want 1", card.Workers.Of(ColorRed))
	}
	if card.ActiveDestinations == nil || *card.ActiveDestinations != 1 {
		t.Error("active destination counter not tracking workers")
	}

	// The single slot is full.
	if out2 := out.VisitCardInCity(redID, ColorRed, 0, 1); out2 != out {
		t.Error("arrival at full destination produced a new state")
	}

	left := out.VisitCardInCity(redID, ColorRed, 0, -1)
	card = left.Players[ColorRed].City[0]
	if card.Workers.Total() != 0 {
		t.Error("departure failed")
	}
	if card.ActiveDestinations == nil || *card.ActiveDestinations != 0 {
		t.Error("active destination counter not cleared on departure")
	}
}

func TestVisitCardInOpponentCity(t *testing.T) {
	s := newTestGame(t)
	s.Players[ColorBlue].City = append(s.Players[ColorBlue].City, destination(Card{
		Name: "Inn", CardType: Construction, EffectType: Destination,
	}, 1))

	out := s.VisitCardInCity(redID, ColorBlue, 0, 1)
	if out == s {
		t.Fatal("visit refused on opponent destination card")
	}
	if got := out.Players[ColorBlue].City[0].Workers.Of(ColorRed); got != 1 {
		t.Errorf("card workers = %d, want 1 red", got)
	}
	if out.Players[ColorRed].Workers.WorkersLeft != 1 {
		t.Error("visit did not spend a red worker")
	}
}

func TestVisitNonDestinationCard(t *testing.T) {
	s := newTestGame(t)
	s.Players[ColorRed].City = append(s.Players[ColorRed].City, Card{
		Name: "Farm", CardType: Construction, EffectType: Production,
	})
	if out := s.VisitCardInCity(redID, ColorRed, 0, 1); out != s {
		t.Error("visit to a slotless card produced a new state")
	}
}
