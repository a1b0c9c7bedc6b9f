package reservationRepo

import "dineflow/models"

// ReservationRepository persists confirmed reservations.
type ReservationRepository interface {
	// Insert stores a reservation and returns its assigned sequential id.
	Insert(res models.Reservation) (int, error)
	GetByID(id int) (*models.Reservation, error)
	// Cancel marks a reservation cancelled and reports the freed table id.
	Cancel(id int) (tableID int, err error)
	// TableReserved reports whether the table already has a confirmed
	// reservation for the given date and time.
	TableReserved(tableID int, date, timeStr string) (bool, error)
	// MarkReminderSent flags a reservation's reminder as delivered.
	MarkReminderSent(id int) error
}
