package models

import (
	"fmt"
	"time"
)

// Step is the dialogue state of one booking conversation.
type Step string

const (
	StepInitial                  Step = "initial"
	StepRestaurantsShown         Step = "restaurants_shown"
	StepCollectingBookingInfo    Step = "collecting_booking_info"
	StepCollectingBookingDetails Step = "collecting_booking_details"
	StepCollectingContact        Step = "collecting_contact"
	StepAvailabilityConfirmed    Step = "availability_confirmed"
	StepReadyToBook              Step = "ready_to_book"
	StepBookingCompleted         Step = "booking_completed"
)

// allowedSteps are the forward edges of the dialogue state machine. A reset
// (the new-conversation override) is the only way back to StepInitial.
var allowedSteps = map[Step][]Step{
	StepInitial:                  {StepRestaurantsShown, StepCollectingBookingInfo, StepCollectingBookingDetails, StepAvailabilityConfirmed},
	StepRestaurantsShown:         {StepRestaurantsShown, StepCollectingBookingInfo, StepCollectingBookingDetails, StepAvailabilityConfirmed},
	StepCollectingBookingInfo:    {StepCollectingBookingInfo, StepCollectingBookingDetails, StepAvailabilityConfirmed},
	StepCollectingBookingDetails: {StepCollectingBookingDetails, StepAvailabilityConfirmed},
	StepAvailabilityConfirmed:    {StepAvailabilityConfirmed, StepCollectingContact},
	StepCollectingContact:        {StepCollectingContact, StepAvailabilityConfirmed},
	StepReadyToBook:              {},
	StepBookingCompleted:         {StepRestaurantsShown, StepCollectingBookingInfo, StepCollectingBookingDetails, StepAvailabilityConfirmed},
}

// BookingSession is the mutable slot set of one conversation. Zero values
// mean "unset"; extraction never clears a field.
type BookingSession struct {
	RestaurantName    string `json:"restaurant_name,omitempty"`
	RestaurantID      int    `json:"restaurant_id,omitempty"`
	PartySize         int    `json:"party_size,omitempty"`
	Date              string `json:"date,omitempty"`
	Time              string `json:"time,omitempty"`
	UserName          string `json:"user_name,omitempty"`
	UserPhone         string `json:"user_phone,omitempty"`
	TableID           int    `json:"table_id,omitempty"`
	CuisinePreference string `json:"cuisine_preference,omitempty"`
	CurrentStep       Step   `json:"current_step"`
}

// NewBookingSession returns a session at the initial step with all slots unset.
func NewBookingSession() *BookingSession {
	return &BookingSession{CurrentStep: StepInitial}
}

// Advance moves the session to the given step, enforcing the defined edges.
// Completing a booking is reachable from any step.
func (s *BookingSession) Advance(to Step) error {
	if to == StepBookingCompleted {
		s.CurrentStep = to
		return nil
	}
	for _, next := range allowedSteps[s.CurrentStep] {
		if next == to {
			s.CurrentStep = to
			return nil
		}
	}
	return fmt.Errorf("invalid step transition %s -> %s", s.CurrentStep, to)
}

// Reset clears every slot and returns the session to the initial step.
func (s *BookingSession) Reset() {
	*s = BookingSession{CurrentStep: StepInitial}
}

// HasBookingSlots reports whether restaurant, party size, date and time are all set.
func (s *BookingSession) HasBookingSlots() bool {
	return s.RestaurantName != "" && s.PartySize > 0 && s.Date != "" && s.Time != ""
}

// HasContactSlots reports whether name and phone are both set.
func (s *BookingSession) HasContactSlots() bool {
	return s.UserName != "" && s.UserPhone != ""
}

// ReadyToBook reports whether all six required slots are present.
func (s *BookingSession) ReadyToBook() bool {
	return s.HasBookingSlots() && s.HasContactSlots()
}

// MissingBookingSlots lists unset booking slots in fixed prompt order.
func (s *BookingSession) MissingBookingSlots() []string {
	var missing []string
	if s.RestaurantName == "" {
		missing = append(missing, "restaurant")
	}
	if s.PartySize == 0 {
		missing = append(missing, "party size")
	}
	if s.Date == "" {
		missing = append(missing, "date")
	}
	if s.Time == "" {
		missing = append(missing, "time")
	}
	return missing
}

// MissingContactSlots lists unset contact slots in fixed prompt order.
func (s *BookingSession) MissingContactSlots() []string {
	var missing []string
	if s.UserName == "" {
		missing = append(missing, "name")
	}
	if s.UserPhone == "" {
		missing = append(missing, "phone number")
	}
	return missing
}

// ChatTurn is one exchange kept in the conversation transcript.
type ChatTurn struct {
	User      string    `json:"user"`
	Agent     string    `json:"agent"`
	Intent    Intent    `json:"intent"`
	Timestamp time.Time `json:"timestamp"`
}
