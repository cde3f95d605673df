package repository

import (
	"context"

	"food-ordering-api/apperror"
	"food-ordering-api/models"

	"gorm.io/gorm"
)

type FeedbackRepository struct {
	DB *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{DB: db}
}

// FindForOrder returns the earliest feedback on the order, or nil.
func (r *FeedbackRepository) FindForOrder(ctx context.Context, orderID uint) (*models.Feedback, error) {
	var out []models.Feedback
	err := r.DB.WithContext(ctx).Where("order_id = ?", orderID).Order("id ASC").Limit(1).Find(&out).Error
	if err != nil {
		return nil, apperror.Store("load feedback", err)
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

func (r *FeedbackRepository) Create(ctx context.Context, f *models.Feedback) error {
	return translate("create feedback", r.DB.WithContext(ctx).Create(f).Error, "feedback")
}

func (r *FeedbackRepository) UpdateContent(ctx context.Context, id uint, rating int, comment string) error {
	err := r.DB.WithContext(ctx).Model(&models.Feedback{}).Where("id = ?", id).
		Updates(map[string]any{"rating": rating, "comment": comment}).Error
	return translate("update feedback", err, "feedback")
}

func (r *FeedbackRepository) ListForOrder(ctx context.Context, orderID uint) ([]models.FeedbackView, error) {
	out := []models.FeedbackView{}
	err := r.DB.WithContext(ctx).Table("feedbacks AS f").
		Select("f.rating, f.comment, f.created_at, u.name AS customer_name").
		Joins("LEFT JOIN users u ON u.id = f.customer_id").
		Where("f.order_id = ?", orderID).
		Order("f.created_at DESC, f.id DESC").
		Scan(&out).Error
	if err != nil {
		return nil, apperror.Store("list feedback", err)
	}
	return out, nil
}

func (r *FeedbackRepository) CountForOrder(ctx context.Context, orderID uint) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Feedback{}).Where("order_id = ?", orderID).Count(&n).Error
	return n, translate("count feedback", err, "feedback")
}

// Ratings returns every rating given to the restaurant.
func (r *FeedbackRepository) Ratings(ctx context.Context, restID uint) ([]int, error) {
	var out []int
	err := r.DB.WithContext(ctx).Model(&models.Feedback{}).Where("restaurant_id = ?", restID).Pluck("rating", &out).Error
	return out, translate("load ratings", err, "feedback")
}
