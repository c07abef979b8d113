package engine

// SetupOptions configures a new game.
type SetupOptions struct {
	// Expansions lists the active content modules (e.g. "legends").
	Expansions []string

	// PowersEnabled turns on per-player power assignment.
	PowersEnabled bool

	// Seed drives the shuffle and every later in-game random choice.
	Seed uint64
}

// ExpansionLegends enables the legends mini-deck and starting legend deals.
const ExpansionLegends = "legends"

// SetupGame creates the initial GameState from a catalog. Every catalog
// entry is cloned; the catalog itself is never referenced again. The deck
// is shuffled, four special events are sampled from the superset, Red draws
// five cards and Blue six, the meadow is filled, and both players start in
// Winter with the Winter worker allotment.
func SetupGame(catalog Catalog, opts SetupOptions) *GameState {
	s := &GameState{}
	s.RNG = opts.Seed
	if s.RNG == 0 {
		s.RNG = 1 // xorshift can't start at 0
	}
	s.ActiveExpansions = append([]string(nil), opts.Expansions...)
	s.PowersEnabled = opts.PowersEnabled
	s.Turn = ColorRed

	s.Deck = cloneCards(catalog.Cards)
	shuffleCards(s, s.Deck)

	s.Locations = make([]Location, len(catalog.Locations))
	for i, l := range catalog.Locations {
		s.Locations[i] = l.clone()
	}
	s.Journeys = append([]Journey(nil), catalog.Journeys...)
	s.Events = append([]Event(nil), catalog.Events...)
	s.SpecialEvents = sampleSpecialEvents(s, catalog.SpecialEvents)
	s.Powers = append([]Power(nil), catalog.Powers...)

	s.Discard = []Card{}
	s.Meadow = []Card{}
	s.Reveal = []Card{}
	s.FarmStack = []Card{}

	s.Players = map[Color]*Player{
		ColorRed:  newPlayer(ColorRed),
		ColorBlue: newPlayer(ColorBlue),
	}

	// Starting hands: five for the first seat, six for the second.
	dealTo(s, ColorRed, 5)
	dealTo(s, ColorBlue, 6)

	// Legends mini-deck: two starting legends each when the expansion is on.
	if s.HasExpansion(ExpansionLegends) {
		legends := cloneCards(catalog.Legends)
		shuffleCards(s, legends)
		for _, c := range []Color{ColorRed, ColorBlue} {
			for i := 0; i < 2 && len(legends) > 0; i++ {
				s.Players[c].Legends = append(s.Players[c].Legends, legends[len(legends)-1])
				legends = legends[:len(legends)-1]
			}
		}
	}

	if opts.PowersEnabled && len(s.Powers) > 0 {
		red := s.Powers[0]
		s.Players[ColorRed].Power = &red
		blue := s.Powers[1%len(s.Powers)]
		s.Players[ColorBlue].Power = &blue

		// The farm stack backs the farm-stack power: its cards come off the
		// top of the stack, index 0 first.
		for i := len(s.Deck) - 1; i >= 0 && len(s.FarmStack) < 3; i-- {
			if s.Deck[i].Name == "Farm" {
				s.FarmStack = append(s.FarmStack, s.Deck[i])
				s.Deck = append(s.Deck[:i], s.Deck[i+1:]...)
			}
		}
	}

	// Fill the shared meadow.
	for len(s.Meadow) < MaxMeadowSize && len(s.Deck) > 0 {
		s.Meadow = append(s.Meadow, s.Deck[len(s.Deck)-1])
		s.Deck = s.Deck[:len(s.Deck)-1]
	}

	for _, c := range []Color{ColorRed, ColorBlue} {
		p := s.Players[c]
		p.History = newHistory(p)
	}
	return s
}

// newPlayer returns an unclaimed Winter seat.
func newPlayer(color Color) *Player {
	allotment := Winter.WorkerAllotment()
	return &Player{
		Color:   color,
		Hand:    []Card{},
		City:    []Card{},
		Legends: []Card{},
		Season:  Winter,
		Workers: Workers{WorkersLeft: allotment, MaxWorkers: allotment},
	}
}

// dealTo moves n cards from the deck top into the player's hand.
func dealTo(s *GameState, color Color, n int) {
	p := s.Players[color]
	for i := 0; i < n && len(s.Deck) > 0; i++ {
		p.Hand = append(p.Hand, s.Deck[len(s.Deck)-1])
		s.Deck = s.Deck[:len(s.Deck)-1]
	}
}

// shuffleCards Fisher-Yates shuffles in place using the state RNG.
func shuffleCards(s *GameState, cards []Card) {
	for i := len(cards) - 1; i > 0; i-- {
		j := s.randN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// sampleSpecialEvents draws NumSpecialEvents distinct events from the
// superset.
func sampleSpecialEvents(s *GameState, superset []SpecialEvent) []SpecialEvent {
	pool := make([]SpecialEvent, len(superset))
	for i, e := range superset {
		pool[i] = e.clone()
	}
	for i := len(pool) - 1; i > 0; i-- {
		j := s.randN(i + 1)
		pool[i], pool[j] = pool[j], pool[i]
	}
	if len(pool) > NumSpecialEvents {
		pool = pool[:NumSpecialEvents]
	}
	return pool
}

// ClaimSeat binds a session identity and display name to a color. Unlike
// the action reducers this is not turn-gated: either seat may be claimed at
// any time, but only a vacant seat (or the same identity re-claiming it)
// may be taken.
func (s *GameState) ClaimSeat(color Color, playerID, name string) *GameState {
	if playerID == "" {
		return s
	}
	p, ok := s.Players[color]
	if !ok {
		return s
	}
	if p.ID != "" && p.ID != playerID {
		return s
	}
	if other, ok := s.ColorOf(playerID); ok && other != color {
		return s
	}
	n := s.clone()
	n.Players[color].ID = playerID
	n.Players[color].Name = name
	return s.commit(n)
}
