package handlers

import (
	"net/http"

	"food-ordering-api/statemachine"

	"github.com/gin-gonic/gin"
)

// ListRestaurants returns all restaurants, optionally filtered by cuisine (public)
func (h *Handler) ListRestaurants(c *gin.Context) {
	restaurants, err := h.Catalog.ListRestaurants(c.Request.Context(), c.Query("cuisine"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(restaurants), "restaurants": restaurants})
}

// GetDishes returns the dishes of a specific restaurant (public)
func (h *Handler) GetDishes(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	dishes, err := h.Catalog.ListDishes(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(dishes), "dishes": dishes})
}

func (h *Handler) GetRestaurantRating(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	rating, err := h.Feedback.RestaurantRating(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rating)
}

// ListFeedback returns every feedback left on an order (public)
func (h *Handler) ListFeedback(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	list, err := h.Feedback.List(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetStateMachineInfo returns the order lifecycle table
func (h *Handler) GetStateMachineInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   h.Orders.Transitions(),
		"terminal_states": statemachine.TerminalStates(),
		"admin_statuses":  statemachine.AdminStatusNames(),
		"description":     "Food Ordering Order Lifecycle State Machine",
	})
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "Food Ordering Order Management API",
	})
}
