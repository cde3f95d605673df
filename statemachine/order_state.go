package statemachine

import (
	"fmt"
	"strings"

	"food-ordering-api/models"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus `json:"from"`
	To    models.OrderStatus `json:"to"`
	Actor models.UserRole    `json:"actor"`
}

var nonTerminal = []models.OrderStatus{
	models.StatusNew,
	models.StatusConfirmed,
	models.StatusPreparing,
	models.StatusReadyForPickup,
	models.StatusOnTheWay,
}

// validTransitions is the authoritative state machine definition
var validTransitions = func() []Transition {
	ts := []Transition{
		{From: models.StatusNew, To: models.StatusConfirmed, Actor: models.RoleRestaurant},
		{From: models.StatusNew, To: models.StatusPreparing, Actor: models.RoleRestaurant},
		{From: models.StatusConfirmed, To: models.StatusPreparing, Actor: models.RoleRestaurant},
		{From: models.StatusPreparing, To: models.StatusReadyForPickup, Actor: models.RoleRestaurant},
		{From: models.StatusPreparing, To: models.StatusOnTheWay, Actor: models.RoleRestaurant},
		// Courier collects from the counter, or the customer picks it up
		{From: models.StatusReadyForPickup, To: models.StatusOnTheWay, Actor: models.RoleRestaurant},
		{From: models.StatusReadyForPickup, To: models.StatusPickedUp, Actor: models.RoleRestaurant},
		{From: models.StatusOnTheWay, To: models.StatusDelivered, Actor: models.RoleRestaurant},
	}
	// Cancellation is open to the customer and the restaurant until a terminal state
	for _, s := range nonTerminal {
		ts = append(ts,
			Transition{From: s, To: models.StatusCancelled, Actor: models.RoleCustomer},
			Transition{From: s, To: models.StatusCancelled, Actor: models.RoleRestaurant},
		)
	}
	return ts
}()

type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor models.UserRole
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// aliases maps every inbound vocabulary (admin endpoint, order-management UI)
// onto the canonical enumeration. Keys are lower-cased.
var aliases = map[string]models.OrderStatus{
	"new":              models.StatusNew,
	"pending":          models.StatusNew,
	"order received":   models.StatusNew,
	"confirmed":        models.StatusConfirmed,
	"preparing":        models.StatusPreparing,
	"ready for pickup": models.StatusReadyForPickup,
	"pick-up ready":    models.StatusReadyForPickup,
	"pickup ready":     models.StatusReadyForPickup,
	"on the way":       models.StatusOnTheWay,
	"delivered":        models.StatusDelivered,
	"picked up":        models.StatusPickedUp,
	"cancelled":        models.StatusCancelled,
}

// adminStatuses is the closed vocabulary accepted by the admin override.
var adminStatuses = map[string]models.OrderStatus{
	"Pending":   models.StatusNew,
	"Preparing": models.StatusPreparing,
	"Delivered": models.StatusDelivered,
	"Cancelled": models.StatusCancelled,
}

// restaurantTargets are the statuses a restaurant may request.
var restaurantTargets = map[models.OrderStatus]bool{
	models.StatusConfirmed:      true,
	models.StatusPreparing:      true,
	models.StatusReadyForPickup: true,
	models.StatusOnTheWay:       true,
	models.StatusDelivered:      true,
	models.StatusPickedUp:       true,
	models.StatusCancelled:      true,
}

// ParseStatus maps any accepted spelling to its canonical status.
func ParseStatus(raw string) (models.OrderStatus, bool) {
	s, ok := aliases[strings.ToLower(strings.TrimSpace(raw))]
	return s, ok
}

// ParseAdminStatus accepts only the admin override vocabulary, case-sensitive.
func ParseAdminStatus(raw string) (models.OrderStatus, bool) {
	s, ok := adminStatuses[raw]
	return s, ok
}

// AdminStatusNames lists the admin vocabulary for error messages.
func AdminStatusNames() []string {
	return []string{"Pending", "Preparing", "Delivered", "Cancelled"}
}

// RestaurantCanRequest reports whether a restaurant may ask for the status at all.
func RestaurantCanRequest(status models.OrderStatus) bool {
	return restaurantTargets[status]
}

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move from one state to another
func CanTransition(from, to models.OrderStatus, actor models.UserRole) error {
	if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return fmt.Errorf("invalid transition: %s → %s is not allowed for actor '%s'; valid transitions from %s are: %s",
		from, to, actor, from, describeValidFrom(from))
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	parts := make([]string, len(nexts))
	for i, s := range nexts {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	out := make([]Transition, len(validTransitions))
	copy(out, validTransitions)
	return out
}

// TerminalStates lists the states with no outgoing transitions.
func TerminalStates() []models.OrderStatus {
	return []models.OrderStatus{models.StatusDelivered, models.StatusPickedUp, models.StatusCancelled}
}
