package engine

// Pure counting helpers over card collections. Used throughout the legality
// predicates and the sanity check.

// countByName returns how many cards in the collection carry the name.
func countByName(cards []Card, name string) int {
	n := 0
	for _, c := range cards {
		if c.Name == name {
			n++
		}
	}
	return n
}

// containsName reports whether any card in the collection carries the name.
func containsName(cards []Card, name string) bool {
	return countByName(cards, name) > 0
}

// countByEffectType returns how many cards in the collection carry the
// effect type.
func countByEffectType(cards []Card, et EffectType) int {
	n := 0
	for _, c := range cards {
		if c.EffectType == et {
			n++
		}
	}
	return n
}

// containsAnyName reports whether any card in the collection carries one of
// the names.
func containsAnyName(cards []Card, names []string) bool {
	for _, name := range names {
		if containsName(cards, name) {
			return true
		}
	}
	return false
}

// cityStorageTotal sums banked storage of the given kind across a city.
func cityStorageTotal(city []Card, k ResourceKind) int {
	total := 0
	for _, c := range city {
		if c.Storage != nil {
			total += c.Storage.Get(k)
		}
	}
	return total
}

// partitionCards splits a collection into kept and acted subsets by the
// given selection flag, preserving order within each subset.
func partitionCards(cards []Card, selected func(Card) bool) (kept, acted []Card) {
	for _, c := range cards {
		if selected(c) {
			acted = append(acted, c)
		} else {
			kept = append(kept, c)
		}
	}
	return kept, acted
}

// clearTransient drops all three selection flags and the stacking tag from
// a card that is changing zones.
func clearTransient(c Card) Card {
	c.Discarding = false
	c.Playing = false
	c.Giving = false
	c.Below = ""
	return c
}
