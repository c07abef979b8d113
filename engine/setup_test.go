package engine

import "testing"

const (
	redID  = "red-session"
	blueID = "blue-session"
)

// newTestGame builds a seeded, seat-claimed game for tests.
func newTestGame(t *testing.T) *GameState {
	t.Helper()
	s := SetupGame(DefaultCatalog(), SetupOptions{Seed: 42})
	s = s.ClaimSeat(ColorRed, redID, "Red Player")
	s = s.ClaimSeat(ColorBlue, blueID, "Blue Player")
	if s.Players[ColorRed].ID != redID || s.Players[ColorBlue].ID != blueID {
		t.Fatal("seat claiming failed")
	}
	return s
}

func TestSetupInitialShape(t *testing.T) {
	s := newTestGame(t)

	if len(s.Meadow) != MaxMeadowSize {
		t.Errorf("meadow = %d, want %d", len(s.Meadow), MaxMeadowSize)
	}
	if got := len(s.Players[ColorRed].Hand); got != 5 {
		t.Errorf("red hand = %d, want 5", got)
	}
	if got := len(s.Players[ColorBlue].Hand); got != 6 {
		t.Errorf("blue hand = %d, want 6", got)
	}
	if len(s.SpecialEvents) != NumSpecialEvents {
		t.Errorf("special events = %d, want %d", len(s.SpecialEvents), NumSpecialEvents)
	}
	if s.Turn != ColorRed {
		t.Errorf("turn = %s, want Red", s.Turn)
	}
	for _, c := range []Color{ColorRed, ColorBlue} {
		p := s.Players[c]
		if p.Season != Winter {
			t.Errorf("%s season = %s, want Winter", c, p.Season)
		}
		if p.Workers.WorkersLeft != 2 || p.Workers.MaxWorkers != 2 {
			t.Errorf("%s workers = %+v, want 2/2", c, p.Workers)
		}
	}
	if s.Previous != nil {
		t.Error("fresh game should have no undo snapshot")
	}
	if !s.SanityCheck() {
		t.Error("fresh game fails sanity check")
	}
}

func TestSetupDeterministicBySeed(t *testing.T) {
	a := SetupGame(DefaultCatalog(), SetupOptions{Seed: 7})
	b := SetupGame(DefaultCatalog(), SetupOptions{Seed: 7})
	if len(a.Deck) != len(b.Deck) {
		t.Fatalf("deck sizes differ: %d vs %d", len(a.Deck), len(b.Deck))
	}
	for i := range a.Deck {
		if a.Deck[i].Name != b.Deck[i].Name {
			t.Fatalf("deck order diverges at %d: %s vs %s", i, a.Deck[i].Name, b.Deck[i].Name)
		}
	}
	for i := range a.SpecialEvents {
		if a.SpecialEvents[i].Name != b.SpecialEvents[i].Name {
			t.Fatalf("special event sampling diverges at %d", i)
		}
	}
}

func TestSetupSpecialEventsDistinct(t *testing.T) {
	s := SetupGame(DefaultCatalog(), SetupOptions{Seed: 99})
	seen := map[string]bool{}
	for _, ev := range s.SpecialEvents {
		if seen[ev.Name] {
			t.Errorf("special event %q sampled twice", ev.Name)
		}
		seen[ev.Name] = true
	}
}

func TestSetupLegendsExpansion(t *testing.T) {
	s := SetupGame(DefaultCatalog(), SetupOptions{Seed: 3, Expansions: []string{ExpansionLegends}})
	if got := len(s.Players[ColorRed].Legends); got != 2 {
		t.Errorf("red legends = %d, want 2", got)
	}
	if got := len(s.Players[ColorBlue].Legends); got != 2 {
		t.Errorf("blue legends = %d, want 2", got)
	}

	bare := SetupGame(DefaultCatalog(), SetupOptions{Seed: 3})
	if got := len(bare.Players[ColorRed].Legends); got != 0 {
		t.Errorf("legends dealt without expansion: %d", got)
	}
}

func TestSetupPowers(t *testing.T) {
	s := SetupGame(DefaultCatalog(), SetupOptions{Seed: 5, PowersEnabled: true})
	if s.Players[ColorRed].Power == nil || s.Players[ColorBlue].Power == nil {
		t.Fatal("powers enabled but not assigned")
	}
	if s.Players[ColorRed].Power.Name == s.Players[ColorBlue].Power.Name {
		t.Error("both seats assigned the same power")
	}
	if len(s.FarmStack) == 0 {
		t.Error("farm stack empty with powers enabled")
	}
}

func TestClaimSeatRefusals(t *testing.T) {
	s := SetupGame(DefaultCatalog(), SetupOptions{Seed: 1})
	s = s.ClaimSeat(ColorRed, redID, "Red")

	// Occupied seat cannot be taken by a different identity.
	if out := s.ClaimSeat(ColorRed, "intruder", "X"); out != s {
		t.Error("occupied seat claimed by different identity")
	}
	// Same identity may re-claim (reconnect).
	if out := s.ClaimSeat(ColorRed, redID, "Red Again"); out == s {
		t.Error("re-claim by same identity refused")
	}
	// One identity cannot hold both seats.
	if out := s.ClaimSeat(ColorBlue, redID, "Red"); out != s {
		t.Error("one identity claimed both seats")
	}
	// Empty identity never claims.
	if out := s.ClaimSeat(ColorBlue, "", "Nobody"); out != s {
		t.Error("empty identity claimed a seat")
	}
}
