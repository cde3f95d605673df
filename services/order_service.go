package services

import (
	"context"
	"strings"
	"time"

	"food-ordering-api/apperror"
	"food-ordering-api/auth"
	"food-ordering-api/models"
	"food-ordering-api/repository"
	"food-ordering-api/statemachine"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderService struct {
	DB          *gorm.DB
	Orders      *repository.OrderRepository
	Restaurants *repository.RestaurantRepository
	Audit       *AuditLog

	// EnforceOwnership restricts AdvanceStatus to the order's own restaurant.
	EnforceOwnership bool

	now func() time.Time
}

func NewOrderService(
	db *gorm.DB,
	orders *repository.OrderRepository,
	restaurants *repository.RestaurantRepository,
	audit *AuditLog,
	enforceOwnership bool,
) *OrderService {
	return &OrderService{
		DB:               db,
		Orders:           orders,
		Restaurants:      restaurants,
		Audit:            audit,
		EnforceOwnership: enforceOwnership,
		now:              time.Now,
	}
}

// StatusChange describes an applied (or no-op) status update.
type StatusChange struct {
	OrderID        uint               `json:"order_id"`
	PreviousStatus models.OrderStatus `json:"previous_status"`
	CurrentStatus  models.OrderStatus `json:"current_status"`
}

type OrderDetail struct {
	models.OrderView
	History []models.OrderStatusHistory `json:"status_history"`
}

type RestaurantOrders struct {
	Count   int                          `json:"count"`
	Summary map[models.OrderStatus]int64 `json:"order_summary"`
	Orders  []models.OrderView           `json:"orders"`
}

// ----- Place -----

// PlaceOrder creates a New order with its total frozen at the dish's current price.
func (s *OrderService) PlaceOrder(ctx context.Context, p *auth.Principal, dishID uint, quantity int) (*models.Order, error) {
	if err := requireRole(p, models.RoleCustomer); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, apperror.Validation("quantity must be at least 1",
			apperror.FieldError{Field: "quantity", Rule: "min", Message: "must be at least 1"})
	}
	dish, err := s.Restaurants.FindDish(ctx, dishID)
	if err != nil {
		return nil, err
	}

	order := models.Order{
		CustomerID:   p.ID,
		RestaurantID: dish.RestaurantID,
		DishID:       dish.ID,
		Quantity:     quantity,
		TotalPrice:   dish.Price.Mul(decimal.NewFromInt(int64(quantity))),
		Status:       models.StatusNew,
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.Orders.Create(tx, &order); err != nil {
			return err
		}
		return s.Orders.AddHistory(tx, &models.OrderStatusHistory{
			OrderID:   order.ID,
			ToStatus:  models.StatusNew,
			ChangedBy: p.ID,
			Actor:     models.RoleCustomer,
			Note:      "order placed",
		})
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ----- Restaurant path -----

// AdvanceStatus moves an order along the lifecycle on behalf of a restaurant.
func (s *OrderService) AdvanceStatus(ctx context.Context, p *auth.Principal, orderID uint, rawStatus, note string) (*StatusChange, error) {
	if err := requireRole(p, models.RoleRestaurant); err != nil {
		return nil, err
	}
	target, ok := statemachine.ParseStatus(rawStatus)
	if !ok {
		return nil, apperror.InvalidStatus("unknown order status " + quote(rawStatus))
	}
	if !statemachine.RestaurantCanRequest(target) {
		return nil, apperror.InvalidStatus("a restaurant cannot set status " + quote(string(target)))
	}

	order, err := s.Orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if s.EnforceOwnership && order.RestaurantID != p.ID {
		return nil, apperror.Forbidden("this order does not belong to your restaurant")
	}

	change := &StatusChange{OrderID: order.ID, PreviousStatus: order.Status, CurrentStatus: target}
	if order.Status == target {
		return change, nil
	}
	if err := statemachine.CanTransition(order.Status, target, models.RoleRestaurant); err != nil {
		return nil, apperror.Conflict(err.Error())
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		var err error
		if target == models.StatusCancelled {
			n, err = s.Orders.Cancel(tx, order.ID, order.Status, optional(note), s.now())
		} else {
			n, err = s.Orders.UpdateStatusGuard(tx, order.ID, order.Status, target)
		}
		if err != nil {
			return err
		}
		if n == 0 {
			return apperror.Conflict("order status changed concurrently, reload and retry")
		}
		return s.Orders.AddHistory(tx, &models.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: order.Status,
			ToStatus:   target,
			ChangedBy:  p.ID,
			Actor:      models.RoleRestaurant,
			Note:       note,
		})
	})
	if err != nil {
		return nil, err
	}
	return change, nil
}

// ----- Admin path -----

// AdminSetStatus force-sets the status without consulting the transition table.
func (s *OrderService) AdminSetStatus(ctx context.Context, p *auth.Principal, orderID uint, rawStatus string) (*StatusChange, error) {
	if err := requireRole(p, models.RoleSuperAdmin); err != nil {
		return nil, err
	}
	target, ok := statemachine.ParseAdminStatus(rawStatus)
	if !ok {
		return nil, apperror.InvalidStatus("status must be one of: " + strings.Join(statemachine.AdminStatusNames(), ", "))
	}
	order, err := s.Orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := s.Orders.ForceStatus(tx, order.ID, target)
		if err != nil {
			return err
		}
		if n == 0 {
			return apperror.NotFound("order not found")
		}
		return s.Orders.AddHistory(tx, &models.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: order.Status,
			ToStatus:   target,
			ChangedBy:  p.ID,
			Actor:      models.RoleAdmin,
			Note:       "admin override",
		})
	})
	if err != nil {
		return nil, err
	}

	id := order.ID
	s.Audit.Record(ctx, p.Email, "Updated Order Status to "+rawStatus, &id)
	return &StatusChange{OrderID: order.ID, PreviousStatus: order.Status, CurrentStatus: target}, nil
}

// DeleteOrder removes an order and its history.
func (s *OrderService) DeleteOrder(ctx context.Context, p *auth.Principal, orderID uint) error {
	if err := requireRole(p, models.RoleSuperAdmin); err != nil {
		return err
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := s.Orders.Delete(tx, orderID)
		if err != nil {
			return err
		}
		if n == 0 {
			return apperror.NotFound("order not found")
		}
		return nil
	})
	if err != nil {
		return err
	}
	id := orderID
	s.Audit.Record(ctx, p.Email, "Deleted Order", &id)
	return nil
}

// ----- Customer path -----

// CancelOrder cancels the customer's own order while it is not terminal.
func (s *OrderService) CancelOrder(ctx context.Context, p *auth.Principal, orderID uint, reason string) (*models.Order, error) {
	if err := requireRole(p, models.RoleCustomer); err != nil {
		return nil, err
	}
	order, err := s.Orders.FindForCustomer(ctx, p.ID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status.IsTerminal() {
		return nil, apperror.Conflict("order is already " + string(order.Status) + " and can no longer be cancelled")
	}
	if err := statemachine.CanTransition(order.Status, models.StatusCancelled, models.RoleCustomer); err != nil {
		return nil, apperror.Conflict(err.Error())
	}

	at := s.now()
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := s.Orders.Cancel(tx, order.ID, order.Status, optional(reason), at)
		if err != nil {
			return err
		}
		if n == 0 {
			return apperror.Conflict("order status changed concurrently, reload and retry")
		}
		return s.Orders.AddHistory(tx, &models.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: order.Status,
			ToStatus:   models.StatusCancelled,
			ChangedBy:  p.ID,
			Actor:      models.RoleCustomer,
			Note:       reason,
		})
	})
	if err != nil {
		return nil, err
	}

	order.Status = models.StatusCancelled
	order.CancelReason = optional(reason)
	order.CancelledAt = &at
	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, p *auth.Principal, orderID uint) (*OrderDetail, error) {
	if err := requireRole(p, models.RoleCustomer); err != nil {
		return nil, err
	}
	view, err := s.Orders.ViewForCustomer(ctx, p.ID, orderID)
	if err != nil {
		return nil, err
	}
	history, err := s.Orders.History(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &OrderDetail{OrderView: *view, History: history}, nil
}

func (s *OrderService) ListCustomerOrders(ctx context.Context, p *auth.Principal) ([]models.OrderView, error) {
	if err := requireRole(p, models.RoleCustomer); err != nil {
		return nil, err
	}
	return s.Orders.ListForCustomer(ctx, p.ID)
}

// ListRestaurantOrders returns the restaurant's orders with per-status counts.
// rawStatus may be empty or any accepted status spelling.
func (s *OrderService) ListRestaurantOrders(ctx context.Context, p *auth.Principal, rawStatus string) (*RestaurantOrders, error) {
	if err := requireRole(p, models.RoleRestaurant); err != nil {
		return nil, err
	}
	var filter *models.OrderStatus
	if strings.TrimSpace(rawStatus) != "" {
		st, ok := statemachine.ParseStatus(rawStatus)
		if !ok {
			return nil, apperror.InvalidStatus("unknown order status " + quote(rawStatus))
		}
		filter = &st
	}
	orders, err := s.Orders.ListForRestaurant(ctx, p.ID, filter)
	if err != nil {
		return nil, err
	}
	counts, err := s.Orders.CountByStatus(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return &RestaurantOrders{Count: len(orders), Summary: counts, Orders: orders}, nil
}

// Transitions exposes the lifecycle table.
func (s *OrderService) Transitions() []statemachine.Transition {
	return statemachine.GetAllTransitions()
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func quote(s string) string {
	return `"` + s + `"`
}
