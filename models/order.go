package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the canonical order lifecycle state. The string value is
// what gets stored and returned over the wire.
type OrderStatus string

const (
	StatusNew            OrderStatus = "New"
	StatusConfirmed      OrderStatus = "Confirmed"
	StatusPreparing      OrderStatus = "Preparing"
	StatusReadyForPickup OrderStatus = "Ready for Pickup"
	StatusOnTheWay       OrderStatus = "On the Way"
	StatusDelivered      OrderStatus = "Delivered"
	StatusPickedUp       OrderStatus = "Picked Up"
	StatusCancelled      OrderStatus = "Cancelled"
)

// IsTerminal reports whether no further transition is permitted.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusPickedUp || s == StatusCancelled
}

type Order struct {
	ID           uint                 `json:"id" gorm:"primaryKey"`
	CustomerID   uint                 `json:"customer_id" gorm:"index;not null"`
	RestaurantID uint                 `json:"restaurant_id" gorm:"index;not null"`
	DishID       uint                 `json:"dish_id" gorm:"not null"`
	Quantity     int                  `json:"quantity" gorm:"not null"`
	TotalPrice   decimal.Decimal      `json:"total_price" gorm:"type:decimal(10,2);not null"` // frozen at placement
	Status       OrderStatus          `json:"status" gorm:"index;not null;default:'New'"`
	CancelReason *string              `json:"cancel_reason,omitempty"`
	CancelledAt  *time.Time           `json:"cancelled_at,omitempty"`
	History      []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// OrderView is an order joined with the names shown to its readers.
type OrderView struct {
	ID             uint            `json:"id"`
	Status         OrderStatus     `json:"status"`
	Quantity       int             `json:"quantity"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	DishName       string          `json:"dish_name"`
	RestaurantName string          `json:"restaurant_name,omitempty"`
	CustomerName   string          `json:"customer_name,omitempty"`
	CancelReason   *string         `json:"cancel_reason,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// OrderStatusHistory tracks every applied status change.
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"index;not null"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	ChangedBy  uint        `json:"changed_by"`
	Actor      UserRole    `json:"actor"`
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}

type Feedback struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	OrderID      uint      `json:"order_id" gorm:"index;not null"`
	CustomerID   uint      `json:"customer_id" gorm:"not null"`
	RestaurantID uint      `json:"restaurant_id" gorm:"index;not null"`
	Rating       int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}

// FeedbackView is a feedback row joined with the customer's name.
type FeedbackView struct {
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
	CustomerName string    `json:"customer_name"`
}

// AdminLog is append-only.
type AdminLog struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	AdminEmail   string    `json:"admin_email" gorm:"not null"`
	Action       string    `json:"action" gorm:"not null"`
	TargetUserID *uint     `json:"target_user_id"`
	Timestamp    time.Time `json:"timestamp" gorm:"index;autoCreateTime"`
}
