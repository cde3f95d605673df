package handlers

import (
	"net/http"

	"food-ordering-api/middleware"
	"food-ordering-api/services"

	"github.com/gin-gonic/gin"
)

type AdminStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdminDashboard returns order totals, revenue and the busiest restaurants
func (h *Handler) AdminDashboard(c *gin.Context) {
	stats, err := h.Dashboard.Stats(c.Request.Context(), middleware.GetPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) AdminProfile(c *gin.Context) {
	admin, err := h.Accounts.AdminProfile(c.Request.Context(), middleware.GetPrincipal(c), c.Query("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"admin": admin})
}

// AdminSetOrderStatus lets a super admin override any order state
func (h *Handler) AdminSetOrderStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req AdminStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	change, err := h.Orders.AdminSetStatus(c.Request.Context(), middleware.GetPrincipal(c), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated by admin",
		"order_id":        change.OrderID,
		"previous_status": change.PreviousStatus,
		"new_status":      change.CurrentStatus,
	})
}

func (h *Handler) AdminDeleteOrder(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.Orders.DeleteOrder(c.Request.Context(), middleware.GetPrincipal(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted", "order_id": id})
}

// AdminLogs returns the latest admin actions, newest first
func (h *Handler) AdminLogs(c *gin.Context) {
	logs, err := h.Audit.Recent(c.Request.Context(), services.DefaultAuditLimit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (h *Handler) AdminCreateUser(c *gin.Context) {
	var req services.CreateUserInput
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.Accounts.CreateUser(c.Request.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User created", "user": user})
}
