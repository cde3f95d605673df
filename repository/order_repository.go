package repository

import (
	"context"
	"time"

	"food-ordering-api/apperror"
	"food-ordering-api/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

func (r *OrderRepository) Create(tx *gorm.DB, o *models.Order) error {
	return translate("create order", tx.Create(o).Error, "order")
}

func (r *OrderRepository) AddHistory(tx *gorm.DB, h *models.OrderStatusHistory) error {
	return translate("record status history", tx.Create(h).Error, "status history")
}

func (r *OrderRepository) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	var o models.Order
	if err := r.DB.WithContext(ctx).First(&o, id).Error; err != nil {
		return nil, translate("load order", err, "order")
	}
	return &o, nil
}

// FindForCustomer only finds orders owned by customerID.
func (r *OrderRepository) FindForCustomer(ctx context.Context, customerID, id uint) (*models.Order, error) {
	var o models.Order
	err := r.DB.WithContext(ctx).Where("id = ? AND customer_id = ?", id, customerID).First(&o).Error
	if err != nil {
		return nil, translate("load order", err, "order")
	}
	return &o, nil
}

func (r *OrderRepository) History(ctx context.Context, orderID uint) ([]models.OrderStatusHistory, error) {
	var out []models.OrderStatusHistory
	err := r.DB.WithContext(ctx).Where("order_id = ?", orderID).Order("id ASC").Find(&out).Error
	return out, translate("load status history", err, "status history")
}

// ---------------- Views ----------------

func (r *OrderRepository) viewQuery(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).Table("orders AS o").
		Select(`o.id, o.status, o.quantity, o.total_price, o.cancel_reason, o.created_at,
			d.name AS dish_name, rs.name AS restaurant_name, u.name AS customer_name`).
		Joins("LEFT JOIN dishes d ON d.id = o.dish_id").
		Joins("LEFT JOIN restaurants rs ON rs.id = o.restaurant_id").
		Joins("LEFT JOIN users u ON u.id = o.customer_id")
}

func (r *OrderRepository) ViewForCustomer(ctx context.Context, customerID, id uint) (*models.OrderView, error) {
	var out []models.OrderView
	err := r.viewQuery(ctx).Where("o.id = ? AND o.customer_id = ?", id, customerID).Limit(1).Scan(&out).Error
	if err != nil {
		return nil, apperror.Store("load order", err)
	}
	if len(out) == 0 {
		return nil, apperror.NotFound("order not found")
	}
	out[0].CustomerName = ""
	return &out[0], nil
}

// ListForCustomer returns the customer's orders newest first.
func (r *OrderRepository) ListForCustomer(ctx context.Context, customerID uint) ([]models.OrderView, error) {
	out := []models.OrderView{}
	err := r.viewQuery(ctx).Where("o.customer_id = ?", customerID).
		Order("o.created_at DESC, o.id DESC").Scan(&out).Error
	if err != nil {
		return nil, apperror.Store("list orders", err)
	}
	for i := range out {
		out[i].CustomerName = ""
	}
	return out, nil
}

// ListForRestaurant returns the restaurant's orders, optionally filtered by status.
func (r *OrderRepository) ListForRestaurant(ctx context.Context, restID uint, status *models.OrderStatus) ([]models.OrderView, error) {
	out := []models.OrderView{}
	q := r.viewQuery(ctx).Where("o.restaurant_id = ?", restID)
	if status != nil {
		q = q.Where("o.status = ?", *status)
	}
	if err := q.Order("o.created_at DESC, o.id DESC").Scan(&out).Error; err != nil {
		return nil, apperror.Store("list restaurant orders", err)
	}
	for i := range out {
		out[i].RestaurantName = ""
	}
	return out, nil
}

// CountByStatus groups the restaurant's orders by status.
func (r *OrderRepository) CountByStatus(ctx context.Context, restID uint) (map[models.OrderStatus]int64, error) {
	var rows []struct {
		Status models.OrderStatus
		Count  int64
	}
	err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Where("restaurant_id = ?", restID).
		Group("status").Scan(&rows).Error
	if err != nil {
		return nil, apperror.Store("count orders", err)
	}
	out := make(map[models.OrderStatus]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

// ---------------- Status changes ----------------

// UpdateStatusGuard moves the order only while it is still in from.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, id uint, from, to models.OrderStatus) (int64, error) {
	res := tx.Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return res.RowsAffected, translate("update order status", res.Error, "order")
}

// ForceStatus sets the status regardless of the current one.
func (r *OrderRepository) ForceStatus(tx *gorm.DB, id uint, to models.OrderStatus) (int64, error) {
	res := tx.Model(&models.Order{}).Where("id = ?", id).Update("status", to)
	return res.RowsAffected, translate("update order status", res.Error, "order")
}

func (r *OrderRepository) Cancel(tx *gorm.DB, id uint, from models.OrderStatus, reason *string, at time.Time) (int64, error) {
	res := tx.Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{
			"status":        models.StatusCancelled,
			"cancel_reason": reason,
			"cancelled_at":  at,
		})
	return res.RowsAffected, translate("cancel order", res.Error, "order")
}

// Delete removes the order and its history.
func (r *OrderRepository) Delete(tx *gorm.DB, id uint) (int64, error) {
	if err := tx.Where("order_id = ?", id).Delete(&models.OrderStatusHistory{}).Error; err != nil {
		return 0, translate("delete status history", err, "status history")
	}
	res := tx.Delete(&models.Order{}, id)
	return res.RowsAffected, translate("delete order", res.Error, "order")
}

// ---------------- Dashboard ----------------

type RestaurantOrderCount struct {
	RestaurantID uint   `json:"restaurant_id"`
	Name         string `json:"name"`
	OrderCount   int64  `json:"order_count"`
}

// Totals returns the order count and the exact sum of all order totals.
func (r *OrderRepository) Totals(ctx context.Context) (int64, decimal.Decimal, error) {
	var totals []decimal.Decimal
	if err := r.DB.WithContext(ctx).Model(&models.Order{}).Pluck("total_price", &totals).Error; err != nil {
		return 0, decimal.Zero, apperror.Store("sum orders", err)
	}
	revenue := decimal.Zero
	for _, t := range totals {
		revenue = revenue.Add(t)
	}
	return int64(len(totals)), revenue, nil
}

func (r *OrderRepository) TopRestaurants(ctx context.Context, limit int) ([]RestaurantOrderCount, error) {
	out := []RestaurantOrderCount{}
	err := r.DB.WithContext(ctx).Table("orders AS o").
		Select("o.restaurant_id, rs.name, COUNT(o.id) AS order_count").
		Joins("JOIN restaurants rs ON rs.id = o.restaurant_id").
		Group("o.restaurant_id, rs.name").
		Order("order_count DESC, o.restaurant_id ASC").
		Limit(limit).Scan(&out).Error
	if err != nil {
		return nil, apperror.Store("rank restaurants", err)
	}
	return out, nil
}
