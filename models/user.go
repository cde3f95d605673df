package models

import (
	"time"
)

// UserRole defines allowed roles in the system. Stored roles live on the
// users and admins tables; principal roles are what a token carries.
type UserRole string

const (
	RoleCustomer        UserRole = "customer"
	RoleRestaurantOwner UserRole = "restaurant_owner"
	RoleRestaurant      UserRole = "restaurant"
	RoleAdmin           UserRole = "admin"
	RoleSuperAdmin      UserRole = "super_admin"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         UserRole  `json:"role" gorm:"not null;default:'customer'"`
	CreatedAt    time.Time `json:"created_at"`
}

// Admin is a separate principal space from User.
type Admin struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         UserRole  `json:"role" gorm:"not null;default:'admin'"`
	CreatedAt    time.Time `json:"created_at"`
}

type CustomerProfile struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Country   string    `json:"country"`
	State     string    `json:"state"`
	City      string    `json:"city"`
	UpdatedAt time.Time `json:"updated_at"`
}
