package repository

import (
	"context"

	"food-ordering-api/models"

	"gorm.io/gorm"
)

// UserRepository covers the users, customer_profiles and admins tables.
type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate("load user", err, "user")
	}
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translate("load user", err, "user")
	}
	return &u, nil
}

// EmailTaken reports whether any account, user or restaurant, already uses email.
func (r *UserRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	var users, restaurants int64
	db := r.DB.WithContext(ctx)
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&users).Error; err != nil {
		return false, translate("check email", err, "user")
	}
	if err := db.Model(&models.Restaurant{}).Where("email = ?", email).Count(&restaurants).Error; err != nil {
		return false, translate("check email", err, "restaurant")
	}
	return users+restaurants > 0, nil
}

func (r *UserRepository) Create(tx *gorm.DB, u *models.User) error {
	return translate("create user", tx.Create(u).Error, "user")
}

func (r *UserRepository) CreateProfile(tx *gorm.DB, p *models.CustomerProfile) error {
	return translate("create profile", tx.Create(p).Error, "profile")
}

func (r *UserRepository) GetProfile(ctx context.Context, userID uint) (*models.CustomerProfile, error) {
	var p models.CustomerProfile
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, translate("load profile", err, "profile")
	}
	return &p, nil
}

// SaveProfile upserts the profile keyed by user id.
func (r *UserRepository) SaveProfile(ctx context.Context, p *models.CustomerProfile) error {
	db := r.DB.WithContext(ctx)
	var existing models.CustomerProfile
	err := db.Where("user_id = ?", p.UserID).Limit(1).Find(&existing).Error
	if err != nil {
		return translate("load profile", err, "profile")
	}
	p.ID = existing.ID
	return translate("save profile", db.Save(p).Error, "profile")
}

// ---------------- Admins ----------------

func (r *UserRepository) FindAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var a models.Admin
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&a).Error; err != nil {
		return nil, translate("load admin", err, "admin")
	}
	return &a, nil
}
