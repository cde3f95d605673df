package repository

import (
	"context"

	"food-ordering-api/models"

	"gorm.io/gorm"
)

type AdminLogRepository struct {
	DB *gorm.DB
}

func NewAdminLogRepository(db *gorm.DB) *AdminLogRepository {
	return &AdminLogRepository{DB: db}
}

func (r *AdminLogRepository) Create(ctx context.Context, l *models.AdminLog) error {
	return translate("append admin log", r.DB.WithContext(ctx).Create(l).Error, "admin log")
}

// Recent lists the newest entries first.
func (r *AdminLogRepository) Recent(ctx context.Context, limit int) ([]models.AdminLog, error) {
	out := []models.AdminLog{}
	err := r.DB.WithContext(ctx).Order("timestamp DESC, id DESC").Limit(limit).Find(&out).Error
	return out, translate("list admin logs", err, "admin log")
}
