package repository

import (
	"context"

	"food-ordering-api/models"

	"gorm.io/gorm"
)

type RestaurantRepository struct {
	DB *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{DB: db}
}

func (r *RestaurantRepository) Create(tx *gorm.DB, rest *models.Restaurant) error {
	return translate("create restaurant", tx.Create(rest).Error, "restaurant")
}

func (r *RestaurantRepository) FindByID(ctx context.Context, id uint) (*models.Restaurant, error) {
	var rest models.Restaurant
	if err := r.DB.WithContext(ctx).First(&rest, id).Error; err != nil {
		return nil, translate("load restaurant", err, "restaurant")
	}
	return &rest, nil
}

func (r *RestaurantRepository) FindByEmail(ctx context.Context, email string) (*models.Restaurant, error) {
	var rest models.Restaurant
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&rest).Error; err != nil {
		return nil, translate("load restaurant", err, "restaurant")
	}
	return &rest, nil
}

// List returns restaurants, filtered by cuisine when one is given.
func (r *RestaurantRepository) List(ctx context.Context, cuisine string) ([]models.Restaurant, error) {
	out := []models.Restaurant{}
	q := r.DB.WithContext(ctx).Order("name ASC")
	if cuisine != "" {
		q = q.Where("LOWER(cuisine) = LOWER(?)", cuisine)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, translate("list restaurants", err, "restaurant")
	}
	return out, nil
}

func (r *RestaurantRepository) Update(ctx context.Context, id uint, updates map[string]any) error {
	res := r.DB.WithContext(ctx).Model(&models.Restaurant{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return translate("update restaurant", res.Error, "restaurant")
	}
	if res.RowsAffected == 0 {
		return translate("update restaurant", gorm.ErrRecordNotFound, "restaurant")
	}
	return nil
}

// ---------------- Dishes ----------------

func (r *RestaurantRepository) ListDishes(ctx context.Context, restID uint) ([]models.Dish, error) {
	out := []models.Dish{}
	err := r.DB.WithContext(ctx).Where("restaurant_id = ?", restID).Order("id ASC").Find(&out).Error
	return out, translate("list dishes", err, "dish")
}

func (r *RestaurantRepository) FindDish(ctx context.Context, id uint) (*models.Dish, error) {
	var d models.Dish
	if err := r.DB.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, translate("load dish", err, "dish")
	}
	return &d, nil
}

func (r *RestaurantRepository) CreateDish(ctx context.Context, d *models.Dish) error {
	return translate("create dish", r.DB.WithContext(ctx).Create(d).Error, "dish")
}

func (r *RestaurantRepository) SaveDish(ctx context.Context, d *models.Dish) error {
	return translate("update dish", r.DB.WithContext(ctx).Save(d).Error, "dish")
}

// DeleteDish removes the dish only when restID owns it.
func (r *RestaurantRepository) DeleteDish(ctx context.Context, restID, id uint) (int64, error) {
	res := r.DB.WithContext(ctx).Where("id = ? AND restaurant_id = ?", id, restID).Delete(&models.Dish{})
	return res.RowsAffected, translate("delete dish", res.Error, "dish")
}
