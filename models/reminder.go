package models

// ReminderPayload is the queued payload for a reservation reminder task.
type ReminderPayload struct {
	ReservationID  int    `json:"reservation_id"`
	RestaurantName string `json:"restaurant_name"`
	UserName       string `json:"user_name"`
	UserPhone      string `json:"user_phone"`
	Date           string `json:"date"`
	Time           string `json:"time"`
}
