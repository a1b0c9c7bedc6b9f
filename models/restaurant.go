package models

// Restaurant is a per-query snapshot of one catalog entry together with its
// live table availability. It is never cached beyond a single call.
type Restaurant struct {
	ID              int    `json:"id" bson:"_id"`
	Name            string `json:"name" bson:"name"`
	Cuisine         string `json:"cuisine" bson:"cuisine"`
	Location        string `json:"location" bson:"location"`
	Capacity        int    `json:"capacity" bson:"capacity"`
	AvailableTables int    `json:"available_tables" bson:"available_tables"`
}

// Table is one physical table of a restaurant.
type Table struct {
	ID           int  `json:"id" bson:"_id"`
	RestaurantID int  `json:"restaurant_id" bson:"restaurant_id"`
	Capacity     int  `json:"capacity" bson:"capacity"`
	IsAvailable  bool `json:"is_available" bson:"is_available"`
}

// Reservation is a confirmed booking row.
type Reservation struct {
	ID           int    `json:"reservation_id" bson:"_id"`
	UserName     string `json:"user_name" bson:"user_name"`
	UserPhone    string `json:"user_phone" bson:"user_phone"`
	UserEmail    string `json:"user_email,omitempty" bson:"user_email,omitempty"`
	RestaurantID int    `json:"restaurant_id" bson:"restaurant_id"`
	TableID      int    `json:"table_id" bson:"table_id"`
	PartySize    int    `json:"party_size" bson:"party_size"`
	Date         string `json:"date" bson:"date"`
	Time         string `json:"time" bson:"time"`
	Status       string `json:"status" bson:"status"`
	ReminderSent bool   `json:"-" bson:"reminder_sent"`
}

// AvailabilityRequest is the check-availability wire payload.
// Date is "YYYY-MM-DD" and Time is "HH:MM" (24-hour); no other formats.
type AvailabilityRequest struct {
	RestaurantID int    `json:"restaurant_id"`
	PartySize    int    `json:"party_size"`
	Date         string `json:"date"`
	Time         string `json:"time"`
}

// AvailabilityResult carries validation failures as data in Error rather
// than as Go errors; a Go error from the collaborator means transport failure.
type AvailabilityResult struct {
	Available        bool   `json:"available"`
	AvailableTables  int    `json:"available_tables,omitempty"`
	SuggestedTableID *int   `json:"suggested_table_id,omitempty"`
	Error            string `json:"error,omitempty"`
}

// ReservationRequest is the create-reservation wire payload.
type ReservationRequest struct {
	UserName     string `json:"user_name"`
	UserPhone    string `json:"user_phone"`
	UserEmail    string `json:"user_email"`
	RestaurantID int    `json:"restaurant_id"`
	TableID      int    `json:"table_id"`
	PartySize    int    `json:"party_size"`
	Date         string `json:"date"`
	Time         string `json:"time"`
}

// ReservationResult mirrors AvailabilityResult: Error is a validation or
// business failure, not a transport one.
type ReservationResult struct {
	Success       bool   `json:"success"`
	ReservationID *int   `json:"reservation_id,omitempty"`
	Error         string `json:"error,omitempty"`
}
