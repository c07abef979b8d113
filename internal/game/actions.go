// internal/game/actions.go
package game

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/philliparaujo/everdell/engine"
	"github.com/philliparaujo/everdell/internal/models"
)

// Action type identifiers accepted on the wire. Each maps to one engine
// reducer.
const (
	ActionClaimSeat = "claim_seat"

	ActionEndTurn      = "end_turn"
	ActionResetTurn    = "reset_turn"
	ActionDrawCard     = "draw_card"
	ActionRefillMeadow = "refill_meadow"
	ActionRevealCard   = "reveal_card"
	ActionHarvest      = "harvest"
	ActionSwapHands    = "swap_hands"

	ActionGiveResources        = "give_resources"
	ActionAddResourcesSelf     = "add_resources_self"
	ActionAddResourcesLocation = "add_resources_location"
	ActionAddResourcesCard     = "add_resources_card"
	ActionAddResourcesPower    = "add_resources_power"

	ActionVisitLocation     = "visit_location"
	ActionVisitJourney      = "visit_journey"
	ActionVisitEvent        = "visit_event"
	ActionVisitSpecialEvent = "visit_special_event"
	ActionVisitCard         = "visit_card"
	ActionAchieveEvent      = "achieve_event"
	ActionAchieveSpecial    = "achieve_special_event"

	ActionSetDiscarding    = "set_discarding"
	ActionSetPlaying       = "set_playing"
	ActionSetGiving        = "set_giving"
	ActionToggleDiscarding = "toggle_discarding"
	ActionTogglePlaying    = "toggle_playing"
	ActionToggleGiving     = "toggle_giving"
	ActionDiscardSelected  = "discard_selected"
	ActionPlaySelected     = "play_selected"
	ActionGiveSelected     = "give_selected"

	ActionPlayCard        = "play_card"
	ActionPlayToOpposite  = "play_to_opposite_city"
	ActionMoveCardBelow   = "move_card_below"
	ActionToggleOccupied  = "toggle_occupied"
	ActionPlaceCharacter  = "place_character"
	ActionNextPower       = "next_power"
)

// applyAction resolves and applies one queued action against the engine,
// then fans out persistence, logging and broadcast. Runs only on the queue
// goroutine. Assumes lock is held by caller.
func (g *Game) applyAction(playerID uuid.UUID, action models.GameAction) {
	if g.GameOver {
		g.fireEventToPlayer(playerID, refusalEvent(playerID, action.ActionType))
		return
	}

	pay := action.Payload
	if pay == nil {
		pay = map[string]interface{}{}
	}
	session := playerID.String()
	s := g.State

	var next *engine.GameState
	switch action.ActionType {
	case ActionClaimSeat:
		next = s.ClaimSeat(engine.Color(stringField(pay, "color")), session, stringField(pay, "name"))

	case ActionEndTurn:
		next = s.EndTurn(session)
	case ActionResetTurn:
		next = s.ResetTurn(session)
	case ActionDrawCard:
		next = s.DrawCard(session)
	case ActionRefillMeadow:
		next = s.RefillMeadow(session)
	case ActionRevealCard:
		next = s.RevealCard(session, boolField(pay, "fromDiscard"))
	case ActionHarvest:
		next = s.Harvest(session)
	case ActionSwapHands:
		next = s.SwapHands(session)

	case ActionGiveResources:
		next = s.GiveResources(session, engine.Color(stringField(pay, "target")), resourceField(pay, "amount"))
	case ActionAddResourcesSelf:
		next = s.AddResourcesToSelf(session, resourceField(pay, "amount"))
	case ActionAddResourcesLocation:
		next = s.AddResourcesToLocation(session, intField(pay, "index"), resourceField(pay, "amount"))
	case ActionAddResourcesCard:
		next = s.AddResourcesToCardInCity(session, engine.Color(stringField(pay, "owner")), intField(pay, "index"), resourceField(pay, "amount"))
	case ActionAddResourcesPower:
		next = s.AddResourcesToPower(session, resourceField(pay, "amount"))

	case ActionVisitLocation:
		next = s.VisitLocation(session, intField(pay, "index"), intField(pay, "workersVisiting"))
	case ActionVisitJourney:
		next = s.VisitJourney(session, intField(pay, "index"), intField(pay, "workersVisiting"))
	case ActionVisitEvent:
		next = s.VisitEvent(session, intField(pay, "index"), intField(pay, "workersVisiting"))
	case ActionVisitSpecialEvent:
		next = s.VisitSpecialEvent(session, intField(pay, "index"), intField(pay, "workersVisiting"))
	case ActionVisitCard:
		next = s.VisitCardInCity(session, engine.Color(stringField(pay, "owner")), intField(pay, "index"), intField(pay, "workersVisiting"))
	case ActionAchieveEvent:
		next = s.AchieveEvent(session, intField(pay, "index"))
	case ActionAchieveSpecial:
		next = s.AchieveSpecialEvent(session, intField(pay, "index"))

	case ActionSetDiscarding:
		next = s.SetDiscarding(session, boolField(pay, "enabled"))
	case ActionSetPlaying:
		next = s.SetPlaying(session, boolField(pay, "enabled"))
	case ActionSetGiving:
		next = s.SetGiving(session, boolField(pay, "enabled"))
	case ActionToggleDiscarding:
		next = s.ToggleCardDiscarding(session, engine.Zone(stringField(pay, "zone")), intField(pay, "index"))
	case ActionTogglePlaying:
		next = s.ToggleCardPlaying(session, engine.Zone(stringField(pay, "zone")), intField(pay, "index"))
	case ActionToggleGiving:
		next = s.ToggleCardGiving(session, engine.Zone(stringField(pay, "zone")), intField(pay, "index"))
	case ActionDiscardSelected:
		next = s.DiscardSelectedCards(session)
	case ActionPlaySelected:
		next = s.PlaySelectedCards(session)
	case ActionGiveSelected:
		next = s.GiveSelectedCards(session, engine.Color(stringField(pay, "target")))

	case ActionPlayCard:
		next = s.PlayCard(session, engine.Zone(stringField(pay, "zone")), intField(pay, "index"))
	case ActionPlayToOpposite:
		next = s.PlayToOppositeCity(session, intField(pay, "index"))
	case ActionMoveCardBelow:
		next = s.MoveCardBelowInCity(session, intField(pay, "index"), stringField(pay, "below"))
	case ActionToggleOccupied:
		next = s.ToggleOccupiedCardInCity(session, intField(pay, "index"))
	case ActionPlaceCharacter:
		next = s.PlaceCharacterOnLocation(session, intField(pay, "index"), stringField(pay, "character"), intField(pay, "delta"))
	case ActionNextPower:
		next = s.NextPower(session, intField(pay, "direction"))

	default:
		logrus.Warnf("game %s: unknown action type %q from %s", g.ID, action.ActionType, playerID)
		g.fireEventToPlayer(playerID, refusalEvent(playerID, action.ActionType))
		return
	}

	if next == s {
		// The engine refused silently; tell the actor, nobody else.
		g.fireEventToPlayer(playerID, refusalEvent(playerID, action.ActionType))
		return
	}

	turnBefore := s.Turn
	g.State = next

	if action.ActionType == ActionClaimSeat {
		g.bindSeat(playerID)
	}

	g.logAction(playerID, action.ActionType, pay)
	g.persistState()
	g.broadcastState()

	if g.State.Turn != turnBefore {
		g.recordCompletedTurn(playerID)
		g.broadcastTurn()
	}
	if g.Started && g.bothSeatsFinished() {
		g.EndGame()
	}
}

// bindSeat mirrors a freshly claimed engine seat onto the session model and
// announces it. Assumes lock is held by caller.
func (g *Game) bindSeat(playerID uuid.UUID) {
	color, ok := g.seatOf(playerID)
	if !ok {
		return
	}
	if p := g.getPlayerByID(playerID); p != nil {
		p.Seat = string(color)
	}
	g.fireEvent(GameEvent{
		Type:    EventSeatClaimed,
		User:    &EventUser{ID: playerID},
		Payload: map[string]interface{}{"color": string(color)},
	})

	if g.bothSeatsClaimed() {
		g.Start()
	}
}

// bothSeatsClaimed reports whether each color holds a bound identity.
// Assumes lock is held by caller.
func (g *Game) bothSeatsClaimed() bool {
	for _, color := range []engine.Color{engine.ColorRed, engine.ColorBlue} {
		p, ok := g.State.Players[color]
		if !ok || p.ID == "" {
			return false
		}
	}
	return true
}

// --- payload decoding -----------------------------------------------------

// JSON numbers decode as float64; these helpers normalize the payload
// fields reducers need. Missing or mistyped fields decode to zero values,
// which the engine refuses on its own.

func intField(p map[string]interface{}, key string) int {
	switch v := p[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

func boolField(p map[string]interface{}, key string) bool {
	v, _ := p[key].(bool)
	return v
}

func stringField(p map[string]interface{}, key string) string {
	v, _ := p[key].(string)
	return v
}

// resourceField decodes a {"twigs": 2, "berries": 1} style object into a
// ResourceCount, matching kinds by their catalog names.
func resourceField(p map[string]interface{}, key string) engine.ResourceCount {
	out := engine.ResourceCount{}
	obj, ok := p[key].(map[string]interface{})
	if !ok {
		return out
	}
	for _, k := range engine.ResourceKinds {
		if v, ok := obj[k.String()].(float64); ok {
			out.Set(k, int(v))
		}
	}
	return out
}
