package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dineflow/models"
	"dineflow/services/reservation"
)

// RestaurantHandler exposes the catalog and availability endpoints.
type RestaurantHandler struct {
	Booking reservation.Service
	Logger  *zap.Logger
}

func NewRestaurantHandler(booking reservation.Service, logger *zap.Logger) *RestaurantHandler {
	return &RestaurantHandler{Booking: booking, Logger: logger}
}

// ListRestaurants handles GET /api/restaurants.
func (h *RestaurantHandler) ListRestaurants(c *gin.Context) {
	restaurants, err := h.Booking.ListRestaurants(c.Request.Context())
	if err != nil {
		h.Logger.Error("ListRestaurants: failed to load catalog", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load restaurants"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurants": restaurants})
}

// CheckAvailability handles POST /api/check_availability. Validation
// failures come back as 400 with the error in the body; the shape matches
// what the success path returns.
func (h *RestaurantHandler) CheckAvailability(c *gin.Context) {
	var req models.AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	result, err := h.Booking.CheckAvailability(c.Request.Context(), req)
	if err != nil {
		h.Logger.Error("CheckAvailability: collaborator failure", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check availability"})
		return
	}
	if result.Error != "" {
		c.JSON(http.StatusBadRequest, result)
		return
	}
	c.JSON(http.StatusOK, result)
}
