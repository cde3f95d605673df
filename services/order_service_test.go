package services

import (
	"context"
	"testing"

	"food-ordering-api/apperror"
	"food-ordering-api/auth"
	"food-ordering-api/models"

	"github.com/shopspring/decimal"
)

func TestPlaceOrderFreezesTotal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	cust := env.signupCustomer(t, "ada@example.com")
	rest := env.signupRestaurant(t, "luigi@example.com")
	dish := env.addDish(t, rest, "12.50")

	order, err := env.orders.PlaceOrder(ctx, cust, dish.ID, 3)
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if order.Status != models.StatusNew {
		t.Errorf("status = %s, want New", order.Status)
	}
	if !order.TotalPrice.Equal(decimal.RequireFromString("37.50")) {
		t.Errorf("total = %s, want 37.50", order.TotalPrice)
	}
	if order.RestaurantID != rest.ID {
		t.Errorf("restaurant = %d, want %d", order.RestaurantID, rest.ID)
	}

	if _, err := env.catalog.UpdateDish(ctx, rest, dish.ID, DishInput{Name: "Margherita", Price: decimal.RequireFromString("20")}); err != nil {
		t.Fatal(err)
	}
	detail, err := env.orders.GetOrder(ctx, cust, order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !detail.TotalPrice.Equal(decimal.RequireFromString("37.50")) {
		t.Errorf("total changed after price update: %s", detail.TotalPrice)
	}
	if len(detail.History) != 1 || detail.History[0].ToStatus != models.StatusNew {
		t.Errorf("history = %+v", detail.History)
	}
	if detail.DishName != "Margherita" || detail.RestaurantName == "" {
		t.Errorf("joined names missing: %+v", detail.OrderView)
	}
}

func TestPlaceOrderRejections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	cust := env.signupCustomer(t, "ada@example.com")
	rest := env.signupRestaurant(t, "luigi@example.com")
	dish := env.addDish(t, rest, "9.99")

	cases := []struct {
		name     string
		p        *auth.Principal
		dishID   uint
		quantity int
		want     apperror.Kind
	}{
		{"restaurant cannot order", rest, dish.ID, 1, apperror.KindForbidden},
		{"zero quantity", cust, dish.ID, 0, apperror.KindValidation},
		{"unknown dish", cust, 9999, 1, apperror.KindNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.orders.PlaceOrder(ctx, tc.p, tc.dishID, tc.quantity)
			if !apperror.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestAdvanceStatusLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	cust := env.signupCustomer(t, "ada@example.com")
	rest := env.signupRestaurant(t, "luigi@example.com")
	other := env.signupRestaurant(t, "mario@example.com")
	dish := env.addDish(t, rest, "10")
	order, _ := env.orders.PlaceOrder(ctx, cust, dish.ID, 1)

	if _, err := env.orders.AdvanceStatus(ctx, rest, order.ID, "Shipped", ""); !apperror.Is(err, apperror.KindValidation) {
		t.Errorf("unknown status err = %v, want validation", err)
	}
	if _, err := env.orders.AdvanceStatus(ctx, rest, order.ID, "Order Received", ""); !apperror.Is(err, apperror.KindValidation) {
		t.Errorf("New as target err = %v, want validation", err)
	}
	if _, err := env.orders.AdvanceStatus(ctx, other, order.ID, "Confirmed", ""); !apperror.Is(err, apperror.KindForbidden) {
		t.Errorf("foreign restaurant err = %v, want forbidden", err)
	}
	if _, err := env.orders.AdvanceStatus(ctx, rest, 9999, "Confirmed", ""); !apperror.Is(err, apperror.KindNotFound) {
		t.Errorf("missing order err = %v, want not found", err)
	}
	if _, err := env.orders.AdvanceStatus(ctx, rest, order.ID, "Delivered", ""); !apperror.Is(err, apperror.KindConflict) {
		t.Errorf("skipping states err = %v, want conflict", err)
	}

	for _, step := range []string{"Confirmed", "Preparing", "Pick-up Ready", "On the Way", "Delivered"} {
		if _, err := env.orders.AdvanceStatus(ctx, rest, order.ID, step, ""); err != nil {
			t.Fatalf("advance to %s: %v", step, err)
		}
	}
	change, err := env.orders.AdvanceStatus(ctx, rest, order.ID, "Delivered", "")
	if err != nil {
		t.Fatalf("re-applying current status should be a no-op: %v", err)
	}
	if change.PreviousStatus != models.StatusDelivered || change.CurrentStatus != models.StatusDelivered {
		t.Errorf("no-op change = %+v", change)
	}
	if _, err := env.orders.AdvanceStatus(ctx, rest, order.ID, "Cancelled", ""); !apperror.Is(err, apperror.KindConflict) {
		t.Errorf("leaving terminal state err = %v, want conflict", err)
	}

	detail, _ := env.orders.GetOrder(ctx, cust, order.ID)
	if len(detail.History) != 6 {
		t.Errorf("history rows = %d, want 6", len(detail.History))
	}
}

func TestAdvanceStatusWithoutOwnershipCheck(t *testing.T) {
	env := newTestEnv(t)
	env.orders.EnforceOwnership = false
	ctx := context.Background()
	cust := env.signupCustomer(t, "ada@example.com")
	rest := env.signupRestaurant(t, "luigi@example.com")
	other := env.signupRestaurant(t, "mario@example.com")
	order, _ := env.orders.PlaceOrder(ctx, cust, env.addDish(t, rest, "10").ID, 1)

	if _, err := env.orders.AdvanceStatus(ctx, other, order.ID, "Confirmed", ""); err != nil {
		t.Errorf("any restaurant may advance when the check is off: %v", err)
	}
}

func TestRestaurantCancelSetsTimestamp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	cust := env.signupCustomer(t, "ada@example.com")
	rest := env.signupRestaurant(t, "luigi@example.com")
	order, _ := env.orders.PlaceOrder(ctx, cust, env.addDish(t, rest, "10").ID, 1)

	if _, err := env.orders.AdvanceStatus(ctx, rest, order.ID, "cancelled", "out of dough"); err != nil {
		t.Fatal(err)
	}
	got, _ := env.orders.Orders.FindByID(ctx, order.ID)
	if got.Status != models.StatusCancelled || got.CancelledAt == nil {
		t.Errorf("order = %+v", got)
	}
	if got.CancelReason == nil || *got.CancelReason != "out of dough" {
		t.Errorf("reason = %v", got.CancelReason)
	}
}

func TestAdminSetStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	cust := env.signupCustomer(t, "ada@example.com")
	rest := env.signupRestaurant(t, "luigi@example.com")
	order, _ := env.orders.PlaceOrder(ctx, cust, env.addDish(t, rest, "12.50").ID, 3)
	root := superAdmin()

	if _, err := env.orders.AdminSetStatus(ctx, root, order.ID, "On the Way"); !apperror.Is(err, apperror.KindValidation) {
		t.Errorf("status outside admin vocabulary err = %v, want validation", err)
	} else if err.(*apperror.Error).Code != "invalid_status" {
		t.Errorf("code = %q, want invalid_status", err.(*apperror.Error).Code)
	}
	if _, err := env.orders.AdminSetStatus(ctx, root, 9999, "Delivered"); !apperror.Is(err, apperror.KindNotFound) {
		t.Errorf("missing order err = %v, want not found", err)
	}
	admin := &auth.Principal{ID: 2, Email: "ops@example.com", Role: models.RoleAdmin}
	if _, err := env.orders.AdminSetStatus(ctx, admin, order.ID, "Delivered"); !apperror.Is(err, apperror.KindForbidden) {
		t.Errorf("plain admin err = %v, want forbidden", err)
	}
	env.audit.Wait()
	if n := countAdminLogs(t, env.db); n != 0 {
		t.Fatalf("rejected calls wrote %d admin logs", n)
	}
	if got, _ := env.orders.Orders.FindByID(ctx, order.ID); got.Status != models.StatusNew {
		t.Fatalf("rejected calls changed status to %s", got.Status)
	}

	change, err := env.orders.AdminSetStatus(ctx, root, order.ID, "Delivered")
	if err != nil {
		t.Fatalf("admin set status: %v", err)
	}
	if change.CurrentStatus != models.StatusDelivered {
		t.Errorf("current = %s", change.CurrentStatus)
	}
	env.audit.Wait()

	logs, err := env.audit.Recent(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 1 {
		t.Fatalf("admin logs = %d, want 1", len(logs))
	}
	l := logs[0]
	if l.AdminEmail != root.Email || l.Action != "Updated Order Status to Delivered" || l.TargetUserID == nil || *l.TargetUserID != order.ID {
		t.Errorf("log = %+v", l)
	}

	// the customer can now rate it, once
	if _, err := env.feedback.Submit(ctx, cust, order.ID, 5, "great"); err != nil {
		t.Fatalf("feedback after delivery: %v", err)
	}
	if _, err := env.feedback.Submit(ctx, cust, order.ID, 4, "again"); !apperror.Is(err, apperror.KindConflict) {
		t.Errorf("duplicate feedback err = %v, want conflict", err)
	}
}

func TestAdminPendingMapsToNew(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	cust := env.signupCustomer(t, "ada@example.com")
	rest := env.signupRestaurant(t, "luigi@example.com")
	order, _ := env.orders.PlaceOrder(ctx, cust, env.addDish(t, rest, "5").ID, 1)

	if _, err := env.orders.AdminSetStatus(ctx, superAdmin(), order.ID, "Preparing"); err != nil {
		t.Fatal(err)
	}
	change, err := env.orders.AdminSetStatus(ctx, superAdmin(), order.ID, "Pending")
	if err != nil {
		t.Fatal(err)
	}
	if change.PreviousStatus != models.StatusPreparing || change.CurrentStatus != models.StatusNew {
		t.Errorf("change = %+v", change)
	}
}

func TestCancelOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	cust := env.signupCustomer(t, "ada@example.com")
	stranger := env.signupCustomer(t, "eve@example.com")
	rest := env.signupRestaurant(t, "luigi@example.com")
	dish := env.addDish(t, rest, "10")

	order, _ := env.orders.PlaceOrder(ctx, cust, dish.ID, 1)
	if _, err := env.orders.CancelOrder(ctx, stranger, order.ID, ""); !apperror.Is(err, apperror.KindNotFound) {
		t.Errorf("stranger cancel err = %v, want not found", err)
	}
	cancelled, err := env.orders.CancelOrder(ctx, cust, order.ID, "changed my mind")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != models.StatusCancelled || cancelled.CancelledAt == nil {
		t.Errorf("order = %+v", cancelled)
	}
	if _, err := env.orders.CancelOrder(ctx, cust, order.ID, ""); !apperror.Is(err, apperror.KindConflict) {
		t.Errorf("second cancel err = %v, want conflict", err)
	}

	delivered, _ := env.orders.PlaceOrder(ctx, cust, dish.ID, 1)
	if _, err := env.orders.AdminSetStatus(ctx, superAdmin(), delivered.ID, "Delivered"); err != nil {
		t.Fatal(err)
	}
	if _, err := env.orders.CancelOrder(ctx, cust, delivered.ID, ""); !apperror.Is(err, apperror.KindConflict) {
		t.Errorf("cancel delivered err = %v, want conflict", err)
	}
}

func TestDeleteOrderIsAudited(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	cust := env.signupCustomer(t, "ada@example.com")
	rest := env.signupRestaurant(t, "luigi@example.com")
	order, _ := env.orders.PlaceOrder(ctx, cust, env.addDish(t, rest, "10").ID, 1)

	if err := env.orders.DeleteOrder(ctx, superAdmin(), 9999); !apperror.Is(err, apperror.KindNotFound) {
		t.Errorf("missing order err = %v, want not found", err)
	}
	if err := env.orders.DeleteOrder(ctx, superAdmin(), order.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := env.orders.GetOrder(ctx, cust, order.ID); !apperror.Is(err, apperror.KindNotFound) {
		t.Errorf("deleted order still readable: %v", err)
	}
	env.audit.Wait()
	logs, _ := env.audit.Recent(ctx, 10)
	if len(logs) != 1 || logs[0].Action != "Deleted Order" {
		t.Errorf("logs = %+v", logs)
	}
}

func TestListRestaurantOrders(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	cust := env.signupCustomer(t, "ada@example.com")
	rest := env.signupRestaurant(t, "luigi@example.com")
	dish := env.addDish(t, rest, "10")

	first, _ := env.orders.PlaceOrder(ctx, cust, dish.ID, 1)
	_, _ = env.orders.PlaceOrder(ctx, cust, dish.ID, 2)
	if _, err := env.orders.AdvanceStatus(ctx, rest, first.ID, "Confirmed", ""); err != nil {
		t.Fatal(err)
	}

	all, err := env.orders.ListRestaurantOrders(ctx, rest, "")
	if err != nil {
		t.Fatal(err)
	}
	if all.Count != 2 || all.Summary[models.StatusNew] != 1 || all.Summary[models.StatusConfirmed] != 1 {
		t.Errorf("all = %+v", all)
	}
	pending, err := env.orders.ListRestaurantOrders(ctx, rest, "Order Received")
	if err != nil {
		t.Fatal(err)
	}
	if pending.Count != 1 || pending.Orders[0].CustomerName == "" {
		t.Errorf("pending = %+v", pending)
	}
	if _, err := env.orders.ListRestaurantOrders(ctx, rest, "Lost"); !apperror.Is(err, apperror.KindValidation) {
		t.Errorf("bad filter err = %v, want validation", err)
	}

	mine, err := env.orders.ListCustomerOrders(ctx, cust)
	if err != nil || len(mine) != 2 {
		t.Fatalf("customer orders = %d, %v", len(mine), err)
	}
	if mine[0].ID < mine[1].ID {
		t.Error("customer orders should be newest first")
	}
}
