package handlers

import (
	"net/http"

	"food-ordering-api/middleware"
	"food-ordering-api/services"

	"github.com/gin-gonic/gin"
)

// GetMyRestaurant returns the authenticated restaurant's profile
func (h *Handler) GetMyRestaurant(c *gin.Context) {
	rest, err := h.Catalog.Profile(c.Request.Context(), middleware.GetPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": rest})
}

func (h *Handler) UpdateRestaurant(c *gin.Context) {
	var req services.RestaurantInput
	if !bindJSON(c, &req) {
		return
	}
	rest, err := h.Catalog.UpdateProfile(c.Request.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant updated", "restaurant": rest})
}

func (h *Handler) GetMyDishes(c *gin.Context) {
	dishes, err := h.Catalog.MyDishes(c.Request.Context(), middleware.GetPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(dishes), "dishes": dishes})
}

// AddDish adds a dish to the restaurant's menu
func (h *Handler) AddDish(c *gin.Context) {
	var req services.DishInput
	if !bindJSON(c, &req) {
		return
	}
	dish, err := h.Catalog.AddDish(c.Request.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Dish added", "dish": dish})
}

func (h *Handler) UpdateDish(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req services.DishInput
	if !bindJSON(c, &req) {
		return
	}
	dish, err := h.Catalog.UpdateDish(c.Request.Context(), middleware.GetPrincipal(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Dish updated", "dish": dish})
}

func (h *Handler) DeleteDish(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.Catalog.DeleteDish(c.Request.Context(), middleware.GetPrincipal(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Dish deleted"})
}
