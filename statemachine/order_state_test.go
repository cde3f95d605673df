package statemachine

import (
	"testing"

	"food-ordering-api/models"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to models.OrderStatus
		actor    models.UserRole
		want     bool
	}{
		// restaurant forward path
		{models.StatusNew, models.StatusConfirmed, models.RoleRestaurant, true},
		{models.StatusConfirmed, models.StatusPreparing, models.RoleRestaurant, true},
		{models.StatusPreparing, models.StatusReadyForPickup, models.RoleRestaurant, true},
		{models.StatusReadyForPickup, models.StatusOnTheWay, models.RoleRestaurant, true},
		{models.StatusOnTheWay, models.StatusDelivered, models.RoleRestaurant, true},
		{models.StatusReadyForPickup, models.StatusPickedUp, models.RoleRestaurant, true},
		// cancellation from every non-terminal state
		{models.StatusNew, models.StatusCancelled, models.RoleCustomer, true},
		{models.StatusPreparing, models.StatusCancelled, models.RoleCustomer, true},
		{models.StatusOnTheWay, models.StatusCancelled, models.RoleCustomer, true},
		{models.StatusConfirmed, models.StatusCancelled, models.RoleRestaurant, true},
		// terminal states have no outgoing transitions
		{models.StatusDelivered, models.StatusCancelled, models.RoleCustomer, false},
		{models.StatusPickedUp, models.StatusCancelled, models.RoleCustomer, false},
		{models.StatusCancelled, models.StatusNew, models.RoleRestaurant, false},
		// skipping states
		{models.StatusNew, models.StatusDelivered, models.RoleRestaurant, false},
		{models.StatusConfirmed, models.StatusOnTheWay, models.RoleRestaurant, false},
		// wrong actor
		{models.StatusNew, models.StatusConfirmed, models.RoleCustomer, false},
		{models.StatusOnTheWay, models.StatusDelivered, models.RoleSuperAdmin, false},
	}
	for _, tc := range cases {
		err := CanTransition(tc.from, tc.to, tc.actor)
		if got := err == nil; got != tc.want {
			t.Errorf("CanTransition(%s, %s, %s) ok = %v, want %v (err: %v)", tc.from, tc.to, tc.actor, got, tc.want, err)
		}
	}
}

func TestParseStatusAliases(t *testing.T) {
	cases := map[string]models.OrderStatus{
		"Pending":          models.StatusNew,
		"Order Received":   models.StatusNew,
		"new":              models.StatusNew,
		"Pick-up Ready":    models.StatusReadyForPickup,
		"Pickup Ready":     models.StatusReadyForPickup,
		"Ready for Pickup": models.StatusReadyForPickup,
		" On the Way ":     models.StatusOnTheWay,
		"Picked Up":        models.StatusPickedUp,
		"DELIVERED":        models.StatusDelivered,
	}
	for raw, want := range cases {
		got, ok := ParseStatus(raw)
		if !ok || got != want {
			t.Errorf("ParseStatus(%q) = %q, %v; want %q", raw, got, ok, want)
		}
	}
	if _, ok := ParseStatus("Shipped"); ok {
		t.Error("expected unknown status to be rejected")
	}
}

func TestParseAdminStatus(t *testing.T) {
	for _, name := range AdminStatusNames() {
		if _, ok := ParseAdminStatus(name); !ok {
			t.Errorf("admin vocabulary %q rejected", name)
		}
	}
	for _, bad := range []string{"On the Way", "Confirmed", "pending", ""} {
		if _, ok := ParseAdminStatus(bad); ok {
			t.Errorf("ParseAdminStatus(%q) accepted, want rejection", bad)
		}
	}
	if s, _ := ParseAdminStatus("Pending"); s != models.StatusNew {
		t.Errorf("Pending maps to %q, want %q", s, models.StatusNew)
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	for _, s := range TerminalStates() {
		if !s.IsTerminal() {
			t.Errorf("%s should report terminal", s)
		}
		if nexts := ValidTransitionsFrom(s); len(nexts) != 0 {
			t.Errorf("terminal %s has transitions %v", s, nexts)
		}
	}
}

func TestRestaurantCanRequest(t *testing.T) {
	if RestaurantCanRequest(models.StatusNew) {
		t.Error("restaurant must not request New")
	}
	for _, s := range []models.OrderStatus{models.StatusOnTheWay, models.StatusReadyForPickup, models.StatusDelivered} {
		if !RestaurantCanRequest(s) {
			t.Errorf("restaurant should be able to request %s", s)
		}
	}
}
