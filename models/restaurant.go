package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Restaurant struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Location     string    `json:"location"`
	Phone        string    `json:"phone"`
	Cuisine      string    `json:"cuisine"`
	Dishes       []Dish    `json:"dishes,omitempty" gorm:"foreignKey:RestaurantID"`
	CreatedAt    time.Time `json:"created_at"`
}

type Dish struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	RestaurantID uint            `json:"restaurant_id" gorm:"index;not null"`
	Name         string          `json:"name" gorm:"not null"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Category     string          `json:"category"`
	Image        string          `json:"image"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
