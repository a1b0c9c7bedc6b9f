package reservation

import (
	"context"

	"dineflow/models"
)

// Service is the booking collaborator consumed by the dialogue agent and the
// recommendation engine. Validation failures travel in the result's Error
// field; a returned Go error means the collaborator could not be reached.
type Service interface {
	ListRestaurants(ctx context.Context) ([]models.Restaurant, error)
	CheckAvailability(ctx context.Context, req models.AvailabilityRequest) (models.AvailabilityResult, error)
	CreateReservation(ctx context.Context, req models.ReservationRequest) (models.ReservationResult, error)
}

// ReminderScheduler enqueues a post-booking reminder. Implementations must
// tolerate being called best-effort; a failed enqueue never fails a booking.
type ReminderScheduler interface {
	Schedule(res models.Reservation, restaurantName string) error
}
