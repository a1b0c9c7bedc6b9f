package agent

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"dineflow/models"
)

type fakeBooking struct {
	catalog      []models.Restaurant
	availability models.AvailabilityResult
	availErr     error
	reservation  models.ReservationResult
	resErr       error

	lastAvailability models.AvailabilityRequest
	lastReservation  models.ReservationRequest
	reservationCalls int
}

func (f *fakeBooking) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	return f.catalog, nil
}

func (f *fakeBooking) CheckAvailability(ctx context.Context, req models.AvailabilityRequest) (models.AvailabilityResult, error) {
	f.lastAvailability = req
	return f.availability, f.availErr
}

func (f *fakeBooking) CreateReservation(ctx context.Context, req models.ReservationRequest) (models.ReservationResult, error) {
	f.lastReservation = req
	f.reservationCalls++
	return f.reservation, f.resErr
}

type fakeRecommender struct {
	resp models.RecommendationResponse
}

func (f *fakeRecommender) ForUser(ctx context.Context, message string, sess *models.BookingSession) (models.RecommendationResponse, error) {
	return f.resp, nil
}

func intPtr(n int) *int { return &n }

func newTestAgent(t *testing.T, booking *fakeBooking) *Agent {
	t.Helper()
	a := NewAgent(booking, &fakeRecommender{}, time.Second, zap.NewNop())
	a.extractor.now = func() time.Time {
		return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	}
	return a
}

func availableBooking() *fakeBooking {
	return &fakeBooking{
		catalog: testCatalog,
		availability: models.AvailabilityResult{
			Available:        true,
			AvailableTables:  3,
			SuggestedTableID: intPtr(3),
		},
		reservation: models.ReservationResult{Success: true, ReservationID: intPtr(42)},
	}
}

func TestDiscoveryFiltersByCuisine(t *testing.T) {
	a := newTestAgent(t, availableBooking())
	conv := a.StartConversation()

	reply := a.Chat(context.Background(), conv.ID, "Show me Italian restaurants")

	assert.Equal(t, models.IntentShowRestaurants, reply.Intent)
	assert.Equal(t, models.StepRestaurantsShown, reply.Step)
	assert.Contains(t, reply.Response, "Pasta Palace")
	assert.NotContains(t, reply.Response, "Dragon Wok")
	assert.NotContains(t, reply.Response, "Spice Garden")
}

func TestOneShotBookingThenContact(t *testing.T) {
	booking := availableBooking()
	a := newTestAgent(t, booking)
	conv := a.StartConversation()

	reply := a.Chat(context.Background(), conv.ID, "Book a table at Spice Garden for 4 people tomorrow at 7pm")

	require.Equal(t, models.IntentBookingRequest, reply.Intent)
	assert.Equal(t, models.StepAvailabilityConfirmed, reply.Step)
	assert.Contains(t, reply.Response, "contact details")
	assert.Equal(t, models.AvailabilityRequest{
		RestaurantID: 1, PartySize: 4, Date: "2026-09-02", Time: "19:00",
	}, booking.lastAvailability)

	reply = a.Chat(context.Background(), conv.ID, "My name is John Smith and my phone is 9876543210")

	require.Equal(t, models.IntentContactInfo, reply.Intent)
	assert.Equal(t, models.StepBookingCompleted, reply.Step)
	assert.Contains(t, reply.Response, "Reservation Confirmed")
	assert.Contains(t, reply.Response, "42")
	assert.Equal(t, models.ReservationRequest{
		UserName: "John Smith", UserPhone: "9876543210",
		RestaurantID: 1, TableID: 3, PartySize: 4,
		Date: "2026-09-02", Time: "19:00",
	}, booking.lastReservation)
}

func TestPartialSlotsPromptForMissing(t *testing.T) {
	a := newTestAgent(t, availableBooking())
	conv := a.StartConversation()

	reply := a.Chat(context.Background(), conv.ID, "I want to book a table for 4 people")

	assert.Equal(t, models.IntentBookingRequest, reply.Intent)
	assert.Equal(t, models.StepCollectingBookingInfo, reply.Step)
	assert.Contains(t, reply.Response, "restaurant, date, time")
	assert.NotContains(t, reply.Response, "party size", "filled slots are not asked for again")
}

func TestUnavailableSlotSurfacesCollaboratorError(t *testing.T) {
	booking := availableBooking()
	booking.availability = models.AvailabilityResult{Available: false, Error: "No tables available"}
	a := newTestAgent(t, booking)
	conv := a.StartConversation()

	reply := a.Chat(context.Background(), conv.ID, "Book a table at Le Bistro for 2 people tonight at 8pm")

	assert.Contains(t, reply.Response, "Error: No tables available")
	assert.Contains(t, reply.Response, "Le Bistro")
	assert.NotEqual(t, models.StepAvailabilityConfirmed, reply.Step)
	assert.Zero(t, booking.reservationCalls)
}

func TestCompletedBookingRestartsOnDiscovery(t *testing.T) {
	booking := availableBooking()
	a := newTestAgent(t, booking)
	conv := a.StartConversation()

	a.Chat(context.Background(), conv.ID, "Book a table at Spice Garden for 4 people tomorrow at 7pm")
	reply := a.Chat(context.Background(), conv.ID, "My name is John Smith and my phone is 9876543210")
	require.Equal(t, models.StepBookingCompleted, reply.Step)

	reply = a.Chat(context.Background(), conv.ID, "Suggest some Chinese restaurants")

	assert.Equal(t, models.IntentShowRestaurants, reply.Intent)
	assert.Equal(t, models.StepRestaurantsShown, reply.Step)
	assert.Contains(t, reply.Response, "Dragon Wok")
	assert.NotContains(t, reply.Response, "Pasta Palace")

	status, ok := a.Status(conv.ID)
	require.True(t, ok)
	assert.Empty(t, status.BookingContext.UserName, "restart cleared the old slots")
}

func TestContactFirstAttemptsBookingImmediately(t *testing.T) {
	booking := availableBooking()
	booking.reservation = models.ReservationResult{Error: "Invalid restaurant ID"}
	a := newTestAgent(t, booking)
	conv := a.StartConversation()

	// Contact details count even before a restaurant is picked. The booking
	// service rejects the empty request and the reply surfaces its message.
	reply := a.Chat(context.Background(), conv.ID, "My name is John Smith and my phone is 9876543210")

	assert.Equal(t, models.IntentContactInfo, reply.Intent)
	assert.Contains(t, reply.Response, "Booking failed: Invalid restaurant ID")
	assert.Equal(t, 0, booking.lastReservation.RestaurantID)

	status, ok := a.Status(conv.ID)
	require.True(t, ok)
	assert.Equal(t, "John Smith", status.BookingContext.UserName)
}

func TestRestaurantNameFirstStartsSelection(t *testing.T) {
	a := newTestAgent(t, availableBooking())
	conv := a.StartConversation()

	// Naming a restaurant works without a prior listing.
	reply := a.Chat(context.Background(), conv.ID, "Pasta Palace sounds nice")

	assert.Equal(t, models.IntentRestaurantSelection, reply.Intent)
	assert.Equal(t, models.StepCollectingBookingDetails, reply.Step)
	assert.Contains(t, reply.Response, "Great choice! Pasta Palace it is!")
}

func TestConfirmWordMidFlowGetsGenericHelp(t *testing.T) {
	a := newTestAgent(t, availableBooking())
	conv := a.StartConversation()

	a.Chat(context.Background(), conv.ID, "Show me Italian restaurants")
	reply := a.Chat(context.Background(), conv.ID, "yes")

	assert.Equal(t, models.IntentConfirmation, reply.Intent)
	assert.Equal(t, "What would you like me to help you with?", reply.Response)
}

func TestConfirmationAsksForContact(t *testing.T) {
	a := newTestAgent(t, availableBooking())
	conv := a.StartConversation()

	a.Chat(context.Background(), conv.ID, "Book a table at Spice Garden for 4 people tomorrow at 7pm")
	reply := a.Chat(context.Background(), conv.ID, "yes")

	assert.Equal(t, models.IntentConfirmation, reply.Intent)
	assert.Equal(t, models.StepCollectingContact, reply.Step)
	assert.Contains(t, reply.Response, "contact information")
}

func TestTransportFailureGetsGenericApology(t *testing.T) {
	booking := availableBooking()
	booking.availErr = context.DeadlineExceeded
	a := newTestAgent(t, booking)
	conv := a.StartConversation()

	reply := a.Chat(context.Background(), conv.ID, "Book a table at Spice Garden for 4 people tomorrow at 7pm")

	assert.Equal(t, availabilityTroubleReply, reply.Response)
}

func TestStatusAndReset(t *testing.T) {
	a := newTestAgent(t, availableBooking())
	conv := a.StartConversation()

	a.Chat(context.Background(), conv.ID, "Book a table at Spice Garden for 4 people tomorrow at 7pm")

	status, ok := a.Status(conv.ID)
	require.True(t, ok)
	assert.Equal(t, "Spice Garden", status.BookingContext.RestaurantName)
	assert.False(t, status.ReadyToBook)
	assert.Len(t, status.Transcript, 1)

	a.Reset(conv.ID)
	status, ok = a.Status(conv.ID)
	require.True(t, ok)
	assert.Equal(t, models.StepInitial, status.CurrentStep)
	assert.Empty(t, status.Transcript)

	_, ok = a.Status("no-such-conversation")
	assert.False(t, ok)
}
