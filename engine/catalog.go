package engine

// Static reference catalog: immutable definitions of cards, locations,
// journeys, events, special events and powers. Supplied to SetupGame and
// cloned per game; the engine never mutates catalog entries.

// Catalog bundles every content list a game needs at setup.
type Catalog struct {
	// Cards is the full deck composition, duplicates included.
	Cards []Card

	// Legends is the separate legends mini-deck, dealt only when the
	// legends expansion is active.
	Legends []Card

	Locations     []Location
	Journeys      []Journey
	Events        []Event
	SpecialEvents []SpecialEvent // superset; NumSpecialEvents sampled at setup
	Powers        []Power
}

// copies appends n clones of the template card.
func copies(deck []Card, c Card, n int) []Card {
	for i := 0; i < n; i++ {
		deck = append(deck, c.clone())
	}
	return deck
}

// occupiable marks a construction as able to host its paired critter for
// free.
func occupiable(c Card) Card {
	occ := false
	c.Occupied = &occ
	return c
}

// destination gives a card worker-visit slots.
func destination(c Card, slots int) Card {
	active := 0
	c.ActiveDestinations = &active
	c.MaxDestinations = &slots
	return c
}

// storing gives a card an empty resource bank.
func storing(c Card) Card {
	var bank ResourceCount
	c.Storage = &bank
	return c
}

// DefaultCatalog returns the base-game content set.
func DefaultCatalog() Catalog {
	var deck []Card

	// Constructions.
	deck = copies(deck, occupiable(Card{
		Name: "Farm", Cost: ResourceCount{Twigs: 2, Resin: 1}, Value: 1,
		CardType: Construction, EffectType: Production,
	}), 8)
	deck = copies(deck, occupiable(Card{
		Name: "Mine", Cost: ResourceCount{Twigs: 1, Resin: 1, Pebbles: 1}, Value: 2,
		CardType: Construction, EffectType: Production,
	}), 3)
	deck = copies(deck, occupiable(Card{
		Name: "Resin Refinery", Cost: ResourceCount{Resin: 1, Pebbles: 1}, Value: 1,
		CardType: Construction, EffectType: Production,
	}), 3)
	deck = copies(deck, storing(occupiable(Card{
		Name: "Storehouse", Cost: ResourceCount{Twigs: 1, Resin: 1, Pebbles: 1}, Value: 2,
		CardType: Construction, EffectType: Production,
	})), 3)
	deck = copies(deck, destination(occupiable(Card{
		Name: "Inn", Cost: ResourceCount{Twigs: 2, Resin: 1}, Value: 2,
		CardType: Construction, EffectType: Destination,
	}), 1), 3)
	deck = copies(deck, destination(occupiable(Card{
		Name: "Post Office", Cost: ResourceCount{Twigs: 1, Resin: 2}, Value: 2,
		CardType: Construction, EffectType: Destination,
	}), 1), 3)
	deck = copies(deck, destination(occupiable(Card{
		Name: "Lookout", Cost: ResourceCount{Twigs: 1, Resin: 1, Pebbles: 1}, Value: 2,
		CardType: Construction, EffectType: Destination, Unique: true,
	}), 1), 2)
	deck = copies(deck, destination(occupiable(Card{
		Name: "Cemetery", Cost: ResourceCount{Pebbles: 2}, Value: 0,
		CardType: Construction, EffectType: Destination, Unique: true,
		Permanent: true,
	}), 1), 2)
	deck = copies(deck, destination(occupiable(Card{
		Name: "Monastery", Cost: ResourceCount{Twigs: 1, Resin: 1, Pebbles: 1}, Value: 1,
		CardType: Construction, EffectType: Destination, Unique: true,
		Permanent: true,
	}), 1), 2)
	deck = copies(deck, storing(occupiable(Card{
		Name: "Chapel", Cost: ResourceCount{Twigs: 2, Pebbles: 1}, Value: 2,
		CardType: Construction, EffectType: Prosperity, Unique: true,
	})), 2)
	deck = copies(deck, storing(occupiable(Card{
		Name: "Clock Tower", Cost: ResourceCount{Twigs: 3, Pebbles: 1}, Value: 0,
		CardType: Construction, EffectType: Governance, Unique: true,
	})), 2)
	deck = copies(deck, occupiable(Card{
		Name: "Courthouse", Cost: ResourceCount{Twigs: 1, Resin: 1, Pebbles: 2}, Value: 2,
		CardType: Construction, EffectType: Governance, Unique: true,
	}), 2)
	deck = copies(deck, occupiable(Card{
		Name: "Crane", Cost: ResourceCount{Pebbles: 1}, Value: 1,
		CardType: Construction, EffectType: Governance, Unique: true,
	}), 2)
	deck = copies(deck, occupiable(Card{
		Name: "Dungeon", Cost: ResourceCount{Resin: 1, Pebbles: 2}, Value: 0,
		CardType: Construction, EffectType: Governance, Unique: true,
	}), 2)
	deck = copies(deck, occupiable(Card{
		Name: "School House", Cost: ResourceCount{Twigs: 2, Resin: 2}, Value: 2,
		CardType: Construction, EffectType: Governance, Unique: true,
	}), 2)

	// Critters.
	deck = copies(deck, Card{
		Name: "Husband", Cost: ResourceCount{Berries: 3}, Value: 2,
		CardType: Critter, EffectType: Production,
		ConstructionRequirement: "Farm",
	}, 4)
	deck = copies(deck, Card{
		Name: "Wife", Cost: ResourceCount{Berries: 2}, Value: 2,
		CardType: Critter, EffectType: Prosperity,
		ConstructionRequirement: "Farm",
	}, 4)
	deck = copies(deck, Card{
		Name: "Miner Mole", Cost: ResourceCount{Berries: 3}, Value: 1,
		CardType: Critter, EffectType: Production,
	}, 3)
	deck = copies(deck, Card{
		Name: "Chip Sweep", Cost: ResourceCount{Berries: 3}, Value: 2,
		CardType: Critter, EffectType: Production,
		ConstructionRequirement: "Resin Refinery",
	}, 3)
	deck = copies(deck, Card{
		Name: "Woodcarver", Cost: ResourceCount{Berries: 2}, Value: 2,
		CardType: Critter, EffectType: Production,
	}, 3)
	deck = copies(deck, Card{
		Name: "Postal Pigeon", Cost: ResourceCount{Berries: 2}, Value: 0,
		CardType: Critter, EffectType: Traveler,
		ConstructionRequirement: "Post Office",
	}, 3)
	deck = copies(deck, Card{
		Name: "Wanderer", Cost: ResourceCount{Berries: 2}, Value: 1,
		CardType: Critter, EffectType: Traveler,
	}, 3)
	deck = copies(deck, Card{
		Name: "Fool", Cost: ResourceCount{Berries: 3}, Value: -2,
		CardType: Critter, EffectType: Traveler, Unique: true,
	}, 2)
	deck = copies(deck, Card{
		Name: "Monk", Cost: ResourceCount{Berries: 1}, Value: 0,
		CardType: Critter, EffectType: Production, Unique: true,
		ConstructionRequirement: "Monastery",
	}, 2)
	deck = copies(deck, Card{
		Name: "Shepherd", Cost: ResourceCount{Berries: 3}, Value: 1,
		CardType: Critter, EffectType: Traveler, Unique: true,
		ConstructionRequirement: "Chapel",
	}, 2)
	deck = copies(deck, Card{
		Name: "Undertaker", Cost: ResourceCount{Berries: 2}, Value: 1,
		CardType: Critter, EffectType: Traveler, Unique: true,
		ConstructionRequirement: "Cemetery",
	}, 2)
	deck = copies(deck, Card{
		Name: "Teacher", Cost: ResourceCount{Berries: 2}, Value: 2,
		CardType: Critter, EffectType: Production,
		ConstructionRequirement: "School House",
	}, 3)
	deck = copies(deck, Card{
		Name: "Judge", Cost: ResourceCount{Berries: 3}, Value: 2,
		CardType: Critter, EffectType: Governance, Unique: true,
		ConstructionRequirement: "Courthouse",
	}, 2)
	deck = copies(deck, Card{
		Name: "Innkeeper", Cost: ResourceCount{Berries: 1}, Value: 1,
		CardType: Critter, EffectType: Governance, Unique: true,
		ConstructionRequirement: "Inn",
	}, 2)
	deck = copies(deck, destination(Card{
		Name: "Queen", Cost: ResourceCount{Berries: 5}, Value: 4,
		CardType: Critter, EffectType: Destination, Unique: true,
	}, 1), 1)
	deck = copies(deck, destination(Card{
		Name: "Ranger", Cost: ResourceCount{Berries: 2}, Value: 1,
		CardType: Critter, EffectType: Destination, Unique: true,
		ConstructionRequirement: "Dungeon",
	}, 1), 2)

	legends := []Card{
		{Name: "Corrin Evertail", Value: 4, CardType: Critter, EffectType: Prosperity, Unique: true},
		{Name: "Poe", Value: 3, CardType: Critter, EffectType: Traveler, Unique: true},
		{Name: "The Mistwood Matriarch", Value: 4, CardType: Critter, EffectType: Production, Unique: true},
		{Name: "Nightweave", Value: 5, CardType: Critter, EffectType: Governance, Unique: true},
	}

	locations := []Location{
		{Name: "Three Twigs", Resources: ResourceCount{Twigs: 3}},
		{Name: "Two Twigs and a Card", Resources: ResourceCount{Twigs: 2, CardDraws: 1}, Exclusive: true},
		{Name: "Two Resin", Resources: ResourceCount{Resin: 2}},
		{Name: "Resin and a Card", Resources: ResourceCount{Resin: 1, CardDraws: 1}, Exclusive: true},
		{Name: "One Pebble", Resources: ResourceCount{Pebbles: 1}, Exclusive: true},
		{Name: "One Berry", Resources: ResourceCount{Berries: 1}},
		{Name: "Berry and a Card", Resources: ResourceCount{Berries: 1, CardDraws: 1}, Exclusive: true},
		{Name: "Two Cards and a Coin", Resources: ResourceCount{CardDraws: 2, Coins: 1}, Exclusive: true},
		{
			Name: "Haven", Resources: ResourceCount{CardDraws: 1},
			Storage:    &ResourceCount{},
			Characters: map[string]int{},
		},
		{
			Name: "Gathering Place", Resources: ResourceCount{Berries: 1, Twigs: 1}, Exclusive: true,
			Characters: map[string]int{},
		},
	}

	journeys := []Journey{
		{Name: "Journey of Five", Value: 5, DiscardCost: 5, Exclusive: true},
		{Name: "Journey of Four", Value: 4, DiscardCost: 4, Exclusive: true},
		{Name: "Journey of Three", Value: 3, DiscardCost: 3, Exclusive: true},
		{Name: "Journey of Two", Value: 2, DiscardCost: 2},
		{Name: "Journey of One", Value: 1, DiscardCost: 1},
	}

	events := []Event{
		{Name: "Harvest Festival", Value: 3, EffectType: Production, EffectTypeCount: 4},
		{Name: "City Assembly", Value: 3, EffectType: Governance, EffectTypeCount: 3},
		{Name: "Grand Tour", Value: 3, EffectType: Destination, EffectTypeCount: 3},
		{Name: "Juggling Act", Value: 3, EffectType: Traveler, EffectTypeCount: 3},
	}

	specialEvents := []SpecialEvent{
		{
			Name: "An Evening of Fireworks", Value: 2,
			CardRequirement: []string{"Farm"},
		},
		{
			Name: "A Well-Run City", Value: 4,
			CardRequirement:       []string{"Courthouse"},
			EffectTypeRequirement: map[EffectType]int{Governance: 2},
		},
		{
			Name: "Flying Doctor Service", Value: 3,
			CardRequirement: []string{"Postal Pigeon"},
		},
		{
			Name: "Graduation of Scholars", Value: 3,
			CardRequirement:       []string{"Teacher"},
			EffectTypeRequirement: map[EffectType]int{Production: 3},
		},
		{
			Name: "A Brilliant Marketing Plan", Value: 0,
			CardRequirement: []string{"Post Office"},
		},
		{
			Name: "Path of the Pilgrims", Value: 3,
			CardRequirement: []string{"Monastery", "Monk"},
		},
		{
			Name: "Ancient Scrolls Discovered", Value: 5,
			CardRequirement:       []string{"School House"},
			EffectTypeRequirement: map[EffectType]int{Prosperity: 2},
		},
		{
			Name: "Under New Management", Value: 2,
			CardRequirement: []string{"Inn", "Innkeeper"},
		},
	}

	powers := []Power{
		{Name: "Amilla Glistendew", Description: "Carries a deeper satchel.", HandLimit: 10},
		{Name: "Poe the Collector", Description: "Keeps a private farm stack.", FarmStack: true},
		{Name: "Nightweave the Weaver", Description: "Travels light.", HandLimit: 6},
		{Name: "Corrin the Steadfast", Description: "No adjustment; pure presence."},
	}

	return Catalog{
		Cards:         deck,
		Legends:       legends,
		Locations:     locations,
		Journeys:      journeys,
		Events:        events,
		SpecialEvents: specialEvents,
		Powers:        powers,
	}
}
