package engine

// Below-stacking: a derived card-to-card attachment relationship inside a
// city, recomputed after any play or discard that changes city membership.

const (
	stackHusband = "Husband"
	stackWife    = "Wife"
	stackDungeon = "Dungeon"

	// giveAwayCard is routed into the opponent's city when played.
	giveAwayCard = "Fool"
)

// recomputeBelow rewrites the Below tags of a city in place. Deterministic
// given city order and idempotent on its own output:
//   - A Dungeon tag survives only while a Dungeon is present.
//   - Wives pair under Husbands one-to-one in city order; excess Wives are
//     untagged. Husbands never carry a tag themselves.
func recomputeBelow(city []Card) {
	hasDungeon := containsName(city, stackDungeon)
	husbands := countByName(city, stackHusband)

	paired := 0
	for i := range city {
		c := &city[i]

		if c.Name == stackHusband {
			c.Below = ""
			continue
		}
		if c.Below == stackDungeon {
			if !hasDungeon {
				c.Below = ""
			}
			continue
		}
		if c.Name == stackWife {
			if paired < husbands {
				c.Below = stackHusband
				paired++
			} else {
				c.Below = ""
			}
			continue
		}
		if c.Below == stackHusband {
			// Only Wives pair under Husbands.
			c.Below = ""
		}
	}
}
