package models

// Intent is the classified purpose of one utterance.
type Intent string

const (
	IntentRecommendationRequest Intent = "recommendation_request"
	IntentShowRestaurants       Intent = "show_restaurants"
	IntentBookingRequest        Intent = "booking_request"
	IntentRestaurantSelection   Intent = "restaurant_selection"
	IntentContactInfo           Intent = "contact_info"
	IntentBookingDetails        Intent = "booking_details"
	IntentConfirmation          Intent = "confirmation"
	IntentGeneralConversation   Intent = "general_conversation"
)

// ChatRequest is the chat endpoint payload.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatReply is one agent response.
type ChatReply struct {
	Response string `json:"response"`
	Intent   Intent `json:"intent"`
	Step     Step   `json:"step"`
}

// StartConversationResponse is returned when a conversation is opened.
type StartConversationResponse struct {
	ConversationID string `json:"conversation_id"`
	Token          string `json:"token"`
}

// BookingStatus is the status-query view of one conversation.
type BookingStatus struct {
	BookingContext BookingSession `json:"booking_context"`
	CurrentStep    Step           `json:"current_step"`
	ReadyToBook    bool           `json:"ready_to_book"`
	Transcript     []ChatTurn     `json:"transcript,omitempty"`
}
