package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogRepo "dineflow/database/repository/catalog"
	reservationRepo "dineflow/database/repository/reservation"
	"dineflow/models"
	"dineflow/services/reservation"
)

// ReservationHandler exposes reservation creation, lookup and cancellation.
type ReservationHandler struct {
	Booking      reservation.Service
	Reservations reservationRepo.ReservationRepository
	Catalog      catalogRepo.CatalogRepository
	Logger       *zap.Logger
}

func NewReservationHandler(
	booking reservation.Service,
	reservations reservationRepo.ReservationRepository,
	catalog catalogRepo.CatalogRepository,
	logger *zap.Logger,
) *ReservationHandler {
	return &ReservationHandler{
		Booking:      booking,
		Reservations: reservations,
		Catalog:      catalog,
		Logger:       logger,
	}
}

// MakeReservation handles POST /api/make_reservation.
func (h *ReservationHandler) MakeReservation(c *gin.Context) {
	var req models.ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	result, err := h.Booking.CreateReservation(c.Request.Context(), req)
	if err != nil {
		h.Logger.Error("MakeReservation: collaborator failure", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to make reservation"})
		return
	}
	if !result.Success {
		c.JSON(http.StatusBadRequest, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetReservation handles GET /api/reservations/:id.
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reservation id"})
		return
	}

	res, err := h.Reservations.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "reservation not found"})
		return
	}
	c.JSON(http.StatusOK, res)
}

// CancelReservation handles DELETE /api/reservations/:id. Cancelling frees
// the reserved table again.
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reservation id"})
		return
	}

	tableID, err := h.Reservations.Cancel(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "reservation not found or already cancelled"})
		return
	}
	if err := h.Catalog.SetTableAvailability(tableID, true); err != nil {
		h.Logger.Error("CancelReservation: failed to free table",
			zap.Int("tableID", tableID), zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "reservation_id": id})
}
