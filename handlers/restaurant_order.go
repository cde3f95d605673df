package handlers

import (
	"net/http"

	"food-ordering-api/middleware"

	"github.com/gin-gonic/gin"
)

type RestaurantOrdersQuery struct {
	Status string `form:"status" binding:"omitempty,order_status"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note" binding:"max=500"`
}

// GetRestaurantOrders returns the restaurant's orders with a per-status summary
func (h *Handler) GetRestaurantOrders(c *gin.Context) {
	var q RestaurantOrdersQuery
	if !bindQuery(c, &q) {
		return
	}
	out, err := h.Orders.ListRestaurantOrders(c.Request.Context(), middleware.GetPrincipal(c), q.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// UpdateOrderStatus handles the restaurant's state transitions
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	change, err := h.Orders.AdvanceStatus(c.Request.Context(), middleware.GetPrincipal(c), id, req.Status, req.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated",
		"order_id":        change.OrderID,
		"previous_status": change.PreviousStatus,
		"current_status":  change.CurrentStatus,
	})
}
