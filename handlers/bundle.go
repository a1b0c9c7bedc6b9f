package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups every endpoint handler for route registration.
type HandlerBundle struct {
	// Chat endpoints.
	StartConversation gin.HandlerFunc
	Chat              gin.HandlerFunc
	ResetConversation gin.HandlerFunc
	BookingStatus     gin.HandlerFunc

	// Catalog and availability endpoints.
	ListRestaurants   gin.HandlerFunc
	CheckAvailability gin.HandlerFunc

	// Reservation endpoints.
	MakeReservation   gin.HandlerFunc
	GetReservation    gin.HandlerFunc
	CancelReservation gin.HandlerFunc

	// Recommendation endpoints.
	Recommendations gin.HandlerFunc
}
