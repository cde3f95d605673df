package services

import (
	"context"

	"food-ordering-api/apperror"
	"food-ordering-api/auth"
	"food-ordering-api/models"
	"food-ordering-api/repository"

	"github.com/shopspring/decimal"
)

// CatalogService manages restaurants and their dishes.
type CatalogService struct {
	Restaurants *repository.RestaurantRepository
}

func NewCatalogService(restaurants *repository.RestaurantRepository) *CatalogService {
	return &CatalogService{Restaurants: restaurants}
}

type RestaurantInput struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Location string `json:"location" binding:"required,max=255"`
	Phone    string `json:"phone" binding:"required,max=32"`
	Cuisine  string `json:"cuisine" binding:"required,max=100"`
}

type DishInput struct {
	Name        string          `json:"name" binding:"required,min=1,max=100"`
	Description string          `json:"description" binding:"max=500"`
	Price       decimal.Decimal `json:"price" binding:"required,gt=0"`
	Category    string          `json:"category" binding:"max=100"`
	Image       string          `json:"image" binding:"omitempty,url"`
}

func (in DishInput) validate() error {
	if !in.Price.IsPositive() {
		return apperror.Validation("price must be greater than zero",
			apperror.FieldError{Field: "price", Rule: "gt", Message: "must be greater than zero"})
	}
	if in.Name == "" {
		return apperror.Validation("name is required",
			apperror.FieldError{Field: "name", Rule: "required", Message: "is required"})
	}
	return nil
}

// ----- Public -----

func (s *CatalogService) ListRestaurants(ctx context.Context, cuisine string) ([]models.Restaurant, error) {
	return s.Restaurants.List(ctx, cuisine)
}

func (s *CatalogService) ListDishes(ctx context.Context, restID uint) ([]models.Dish, error) {
	if _, err := s.Restaurants.FindByID(ctx, restID); err != nil {
		return nil, err
	}
	return s.Restaurants.ListDishes(ctx, restID)
}

// ----- Restaurant session -----

func (s *CatalogService) Profile(ctx context.Context, p *auth.Principal) (*models.Restaurant, error) {
	if err := requireRole(p, models.RoleRestaurant); err != nil {
		return nil, err
	}
	return s.Restaurants.FindByID(ctx, p.ID)
}

func (s *CatalogService) UpdateProfile(ctx context.Context, p *auth.Principal, in RestaurantInput) (*models.Restaurant, error) {
	if err := requireRole(p, models.RoleRestaurant); err != nil {
		return nil, err
	}
	err := s.Restaurants.Update(ctx, p.ID, map[string]any{
		"name":     in.Name,
		"location": in.Location,
		"phone":    in.Phone,
		"cuisine":  in.Cuisine,
	})
	if err != nil {
		return nil, err
	}
	return s.Restaurants.FindByID(ctx, p.ID)
}

func (s *CatalogService) MyDishes(ctx context.Context, p *auth.Principal) ([]models.Dish, error) {
	if err := requireRole(p, models.RoleRestaurant); err != nil {
		return nil, err
	}
	return s.Restaurants.ListDishes(ctx, p.ID)
}

func (s *CatalogService) AddDish(ctx context.Context, p *auth.Principal, in DishInput) (*models.Dish, error) {
	if err := requireRole(p, models.RoleRestaurant); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	dish := models.Dish{
		RestaurantID: p.ID,
		Name:         in.Name,
		Description:  in.Description,
		Price:        in.Price,
		Category:     in.Category,
		Image:        in.Image,
	}
	if err := s.Restaurants.CreateDish(ctx, &dish); err != nil {
		return nil, err
	}
	return &dish, nil
}

// ownedDish loads the dish and checks that p owns it.
func (s *CatalogService) ownedDish(ctx context.Context, p *auth.Principal, id uint) (*models.Dish, error) {
	dish, err := s.Restaurants.FindDish(ctx, id)
	if err != nil {
		return nil, err
	}
	if dish.RestaurantID != p.ID {
		return nil, apperror.Forbidden("this dish does not belong to your restaurant")
	}
	return dish, nil
}

func (s *CatalogService) UpdateDish(ctx context.Context, p *auth.Principal, id uint, in DishInput) (*models.Dish, error) {
	if err := requireRole(p, models.RoleRestaurant); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	dish, err := s.ownedDish(ctx, p, id)
	if err != nil {
		return nil, err
	}
	dish.Name = in.Name
	dish.Description = in.Description
	dish.Price = in.Price
	dish.Category = in.Category
	dish.Image = in.Image
	if err := s.Restaurants.SaveDish(ctx, dish); err != nil {
		return nil, err
	}
	return dish, nil
}

func (s *CatalogService) DeleteDish(ctx context.Context, p *auth.Principal, id uint) error {
	if err := requireRole(p, models.RoleRestaurant); err != nil {
		return err
	}
	if _, err := s.ownedDish(ctx, p, id); err != nil {
		return err
	}
	n, err := s.Restaurants.DeleteDish(ctx, p.ID, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperror.NotFound("dish not found")
	}
	return nil
}
