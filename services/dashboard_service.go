package services

import (
	"context"

	"food-ordering-api/auth"
	"food-ordering-api/models"
	"food-ordering-api/repository"

	"github.com/shopspring/decimal"
)

const topRestaurantLimit = 5

type DashboardService struct {
	Orders *repository.OrderRepository
}

func NewDashboardService(orders *repository.OrderRepository) *DashboardService {
	return &DashboardService{Orders: orders}
}

type Dashboard struct {
	TotalOrders    int64                             `json:"total_orders"`
	Revenue        decimal.Decimal                   `json:"revenue"`
	TopRestaurants []repository.RestaurantOrderCount `json:"top_restaurants"`
}

func (s *DashboardService) Stats(ctx context.Context, p *auth.Principal) (*Dashboard, error) {
	if err := requireRole(p, models.RoleAdmin, models.RoleSuperAdmin); err != nil {
		return nil, err
	}
	total, revenue, err := s.Orders.Totals(ctx)
	if err != nil {
		return nil, err
	}
	top, err := s.Orders.TopRestaurants(ctx, topRestaurantLimit)
	if err != nil {
		return nil, err
	}
	return &Dashboard{TotalOrders: total, Revenue: revenue, TopRestaurants: top}, nil
}
