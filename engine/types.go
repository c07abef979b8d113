package engine

// Color identifies one of the two fixed seats. Keys of GameState.Players.
type Color string

const (
	ColorRed  Color = "Red"
	ColorBlue Color = "Blue"
)

// Opposite returns the other seat's color.
func (c Color) Opposite() Color {
	if c == ColorRed {
		return ColorBlue
	}
	return ColorRed
}

// Season is a per-player progress marker. Monotonic: Winter → Spring →
// Summer → Autumn. Autumn is terminal.
type Season string

const (
	Winter Season = "Winter"
	Spring Season = "Spring"
	Summer Season = "Summer"
	Autumn Season = "Autumn"
)

// Next returns the following season, or ok=false when already in Autumn.
func (s Season) Next() (Season, bool) {
	switch s {
	case Winter:
		return Spring, true
	case Spring:
		return Summer, true
	case Summer:
		return Autumn, true
	}
	return s, false
}

// WorkerAllotment returns the worker pool size granted by the season.
func (s Season) WorkerAllotment() int {
	switch s {
	case Winter:
		return 2
	case Spring:
		return 3
	case Summer:
		return 4
	case Autumn:
		return 6
	}
	return 0
}

// ResourceKind indexes a slot of a ResourceCount.
type ResourceKind uint8

const (
	Twigs ResourceKind = iota
	Resin
	Pebbles
	Berries
	Coins
	CardDraws // draw entitlements, not literal card objects
	Wildcards

	numResourceKinds
)

// ResourceKinds is the static iteration order over resource kinds.
var ResourceKinds = [numResourceKinds]ResourceKind{
	Twigs, Resin, Pebbles, Berries, Coins, CardDraws, Wildcards,
}

// String returns the catalog name of the kind.
func (k ResourceKind) String() string {
	switch k {
	case Twigs:
		return "twigs"
	case Resin:
		return "resin"
	case Pebbles:
		return "pebbles"
	case Berries:
		return "berries"
	case Coins:
		return "coins"
	case CardDraws:
		return "cards"
	case Wildcards:
		return "wildcards"
	}
	return "?"
}

// Transferable reports whether the kind may move between players via
// GiveResources. Card draws and wildcard entitlements go through the
// hand-giving flow instead.
func (k ResourceKind) Transferable() bool {
	return k != CardDraws && k != Wildcards
}

// ResourceCount is a fixed mapping over resource kinds. Values are
// non-negative in stored positions; in delta positions they may be signed.
type ResourceCount [numResourceKinds]int

// Get returns the count for kind k.
func (r ResourceCount) Get(k ResourceKind) int { return r[k] }

// Set replaces the count for kind k.
func (r *ResourceCount) Set(k ResourceKind, v int) { r[k] = v }

// AddClamped adds delta to kind k, clamping the result at zero.
func (r *ResourceCount) AddClamped(k ResourceKind, delta int) {
	r[k] += delta
	if r[k] < 0 {
		r[k] = 0
	}
}

// Total returns the sum over all kinds.
func (r ResourceCount) Total() int {
	total := 0
	for _, k := range ResourceKinds {
		total += r[k]
	}
	return total
}

// IsZero reports whether every kind is zero.
func (r ResourceCount) IsZero() bool {
	for _, k := range ResourceKinds {
		if r[k] != 0 {
			return false
		}
	}
	return true
}

// Covers reports whether r has at least cost in every kind.
func (r ResourceCount) Covers(cost ResourceCount) bool {
	for _, k := range ResourceKinds {
		if r[k] < cost[k] {
			return false
		}
	}
	return true
}

// CardType distinguishes constructions from critters.
type CardType string

const (
	Construction CardType = "Construction"
	Critter      CardType = "Critter"
)

// EffectType is a card's color band, used by event requirements and
// capability checks.
type EffectType string

const (
	Production  EffectType = "Green"
	Governance  EffectType = "Blue"
	Destination EffectType = "Red"
	Prosperity  EffectType = "Purple"
	Traveler    EffectType = "Tan"
)

// WorkerCount tracks stationed workers per color on a Visitable.
type WorkerCount struct {
	Red  int `json:"Red"`
	Blue int `json:"Blue"`
}

// Of returns the count for color c.
func (w WorkerCount) Of(c Color) int {
	if c == ColorRed {
		return w.Red
	}
	return w.Blue
}

// Add adjusts the count for color c by delta.
func (w *WorkerCount) Add(c Color, delta int) {
	if c == ColorRed {
		w.Red += delta
	} else {
		w.Blue += delta
	}
}

// Total returns the combined worker count across both colors.
func (w WorkerCount) Total() int { return w.Red + w.Blue }

// Card is a playable catalog entry plus its in-game mutable state.
// Catalog entries are templates; every card in a GameState is a clone.
type Card struct {
	Name       string        `json:"name"`
	Cost       ResourceCount `json:"cost"`
	Value      int           `json:"value"`
	CardType   CardType      `json:"cardType"`
	EffectType EffectType    `json:"effectType"`
	Unique     bool          `json:"unique"`

	// Storage is non-nil only for cards that bank resources.
	Storage *ResourceCount `json:"storage,omitempty"`

	// Occupied is nil for cards that cannot host a free critter; otherwise
	// it tracks whether the construction's pairing slot is taken.
	Occupied *bool `json:"occupied,omitempty"`

	ConstructionRequirement string `json:"constructionRequirement,omitempty"`

	// Destination slot counters. MaxDestinations is nil for cards workers
	// cannot visit.
	ActiveDestinations *int `json:"activeDestinations,omitempty"`
	MaxDestinations    *int `json:"maxDestinations,omitempty"`

	// Permanent marks destinations that retain stationed workers across
	// harvests.
	Permanent bool `json:"permanent,omitempty"`

	Workers WorkerCount `json:"workers"`

	// Below tags a card physically stacked beneath another ("Husband",
	// "Dungeon"). Empty string means not stacked.
	Below string `json:"below,omitempty"`

	// Transient selection marks for a pending bulk action.
	Discarding bool `json:"discarding,omitempty"`
	Playing    bool `json:"playing,omitempty"`
	Giving     bool `json:"giving,omitempty"`
}

// clone deep-copies the card, including its pointer fields.
func (c Card) clone() Card {
	out := c
	if c.Storage != nil {
		s := *c.Storage
		out.Storage = &s
	}
	if c.Occupied != nil {
		o := *c.Occupied
		out.Occupied = &o
	}
	if c.ActiveDestinations != nil {
		a := *c.ActiveDestinations
		out.ActiveDestinations = &a
	}
	if c.MaxDestinations != nil {
		m := *c.MaxDestinations
		out.MaxDestinations = &m
	}
	return out
}

func cloneCards(cards []Card) []Card {
	if cards == nil {
		return nil
	}
	out := make([]Card, len(cards))
	for i, c := range cards {
		out[i] = c.clone()
	}
	return out
}

// Location is a fixed board space granting a resource bundle on arrival.
type Location struct {
	Name      string         `json:"name"`
	Resources ResourceCount  `json:"resources"`
	Storage   *ResourceCount `json:"storage,omitempty"`
	Exclusive bool           `json:"exclusive"`
	Workers   WorkerCount    `json:"workers"`

	// Characters is a per-character-type roster for locations hosting
	// placeable characters; nil for ordinary locations.
	Characters map[string]int `json:"characters,omitempty"`
}

func (l Location) clone() Location {
	out := l
	if l.Storage != nil {
		s := *l.Storage
		out.Storage = &s
	}
	if l.Characters != nil {
		out.Characters = make(map[string]int, len(l.Characters))
		for k, v := range l.Characters {
			out.Characters[k] = v
		}
	}
	return out
}

// Journey is an Autumn-only exclusive space paying out coins. The discard
// cost is a caller-workflow precondition; the reducer only pays the value.
type Journey struct {
	Name        string      `json:"name"`
	Value       int         `json:"value"`
	DiscardCost int         `json:"discardCost"`
	Exclusive   bool        `json:"exclusive"`
	Workers     WorkerCount `json:"workers"`
}

// Event is a claimable space requiring a minimum count of one effect type
// in the visiting player's city.
type Event struct {
	Name            string      `json:"name"`
	Value           int         `json:"value"`
	EffectType      EffectType  `json:"effectType"`
	EffectTypeCount int         `json:"effectTypeCount"`
	Used            bool        `json:"used"`
	Workers         WorkerCount `json:"workers"`
}

// SpecialEvent is a claimable space with named-card and per-effect-type
// requirements. Four are sampled from the catalog superset at setup.
type SpecialEvent struct {
	Name                  string             `json:"name"`
	Value                 int                `json:"value"`
	CardRequirement       []string           `json:"cardRequirement,omitempty"`
	EffectTypeRequirement map[EffectType]int `json:"effectTypeRequirement,omitempty"`
	Used                  bool               `json:"used"`
	Workers               WorkerCount       `json:"workers"`
}

func (e SpecialEvent) clone() SpecialEvent {
	out := e
	if e.CardRequirement != nil {
		out.CardRequirement = append([]string(nil), e.CardRequirement...)
	}
	if e.EffectTypeRequirement != nil {
		out.EffectTypeRequirement = make(map[EffectType]int, len(e.EffectTypeRequirement))
		for k, v := range e.EffectTypeRequirement {
			out.EffectTypeRequirement[k] = v
		}
	}
	return out
}

// Power is an optional per-player ruleset bundle selected at setup.
type Power struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	// HandLimit overrides MaxHandSize when non-zero.
	HandLimit int `json:"handLimit,omitempty"`

	// FarmStack grants use of the shared farm stack.
	FarmStack bool `json:"farmStack,omitempty"`

	// Storage banks resources against the power.
	Storage ResourceCount `json:"storage"`
}

// Mode is a player's current bulk-action mode. At most one is ever active,
// guaranteed by the type.
type Mode string

const (
	ModeIdle       Mode = ""
	ModeDiscarding Mode = "discarding"
	ModePlaying    Mode = "playing"
	ModeGiving     Mode = "giving"
)

// Workers is a player's placement-token pool.
type Workers struct {
	WorkersLeft int `json:"workersLeft"`
	MaxWorkers  int `json:"maxWorkers"`
}

// History is a per-player turn-scoped delta log: the baseline captured at
// turn start plus accumulation lists appended to by reducers.
type History struct {
	Resources ResourceCount `json:"resources"`
	Workers   Workers       `json:"workers"`
	Season    Season        `json:"season"`

	Discarded     []Card `json:"discarded"`
	CityDiscarded []Card `json:"cityDiscarded"`
	Drew          []Card `json:"drew"`
	Played        []Card `json:"played"`
	Gave          []Card `json:"gave"`
}

func (h History) clone() History {
	out := h
	out.Discarded = cloneCards(h.Discarded)
	out.CityDiscarded = cloneCards(h.CityDiscarded)
	out.Drew = cloneCards(h.Drew)
	out.Played = cloneCards(h.Played)
	out.Gave = cloneCards(h.Gave)
	return out
}

// Player is one seat's full state. ID is an opaque session identity; the
// empty string marks an unclaimed seat.
type Player struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color Color  `json:"color"`

	Hand    []Card `json:"hand"`
	City    []Card `json:"city"`
	Legends []Card `json:"legends"`

	Resources ResourceCount `json:"resources"`
	Workers   Workers       `json:"workers"`
	Season    Season        `json:"season"`

	Mode  Mode   `json:"mode"`
	Power *Power `json:"power,omitempty"`

	History History `json:"history"`
}

func (p *Player) clone() *Player {
	out := *p
	out.Hand = cloneCards(p.Hand)
	out.City = cloneCards(p.City)
	out.Legends = cloneCards(p.Legends)
	if p.Power != nil {
		pw := *p.Power
		out.Power = &pw
	}
	out.History = p.History.clone()
	return &out
}
