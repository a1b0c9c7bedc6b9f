package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"dineflow/models"
	"dineflow/services/recommend"
	"dineflow/services/reservation"
)

const (
	troubleReply             = "I'm having trouble right now. Please try again."
	restaurantsTroubleReply  = "I'm having trouble loading restaurants right now. Please try again."
	availabilityTroubleReply = "I'm having trouble checking availability right now. Please try again."
	reservationTroubleReply  = "I'm having trouble completing the reservation right now. Please try again."
	recommendFallbackReply   = "I'd be happy to recommend restaurants! Tell me what type of cuisine you're looking for or any other preferences."
	generalReply             = "I can help you find restaurants and make reservations. Try asking me to 'show restaurants' or 'book a table'!"
)

// Recommender is the recommendation collaborator the agent talks to.
type Recommender interface {
	ForUser(ctx context.Context, message string, sess *models.BookingSession) (models.RecommendationResponse, error)
}

// Agent runs the dialogue policy: extract slots, classify the intent, pick a
// handler, answer in plain text. One Agent serves every conversation; per
// conversation state lives in the session store.
type Agent struct {
	booking     reservation.Service
	recommender Recommender
	sessions    *SessionStore
	logger      *zap.Logger
	extractor   *Extractor
	classifier  *Classifier
	timeout     time.Duration
}

func NewAgent(booking reservation.Service, recommender Recommender, timeout time.Duration, logger *zap.Logger) *Agent {
	return &Agent{
		booking:     booking,
		recommender: recommender,
		sessions:    NewSessionStore(),
		logger:      logger,
		extractor:   NewExtractor(),
		classifier:  NewClassifier(),
		timeout:     timeout,
	}
}

// StartConversation opens a fresh conversation and returns it.
func (a *Agent) StartConversation() *Conversation {
	conv := a.sessions.Create()
	a.logger.Info("conversation started", zap.String("conversationID", conv.ID))
	return conv
}

// Chat processes one user turn. A panic anywhere in the turn is converted to
// a generic apology so one bad message never takes the process down.
func (a *Agent) Chat(ctx context.Context, conversationID, message string) (reply models.ChatReply) {
	conv := a.sessions.GetOrCreate(conversationID)
	conv.mu.Lock()
	defer conv.mu.Unlock()
	sess := conv.Session

	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("chat turn panicked",
				zap.String("conversationID", conversationID), zap.Any("panic", r))
			reply = models.ChatReply{
				Response: troubleReply,
				Intent:   models.IntentGeneralConversation,
				Step:     sess.CurrentStep,
			}
		}
	}()

	catalog := a.catalogSnapshot(ctx)

	if a.classifier.IsNewConversation(message, sess.CurrentStep) {
		a.logger.Debug("restarting conversation", zap.String("conversationID", conversationID))
		conv.Reset()
	}

	a.extractor.Apply(message, catalog, sess)
	intent := a.classifier.Classify(message, sess.CurrentStep, catalog)
	response := a.dispatch(ctx, intent, message, sess, catalog)

	conv.Transcript = append(conv.Transcript, models.ChatTurn{
		User:      message,
		Agent:     response,
		Intent:    intent,
		Timestamp: time.Now(),
	})
	return models.ChatReply{Response: response, Intent: intent, Step: sess.CurrentStep}
}

// Reset clears the conversation's booking slots. Unknown IDs are a no-op.
func (a *Agent) Reset(conversationID string) {
	if conv, ok := a.sessions.Get(conversationID); ok {
		conv.mu.Lock()
		conv.Reset()
		conv.Transcript = nil
		conv.mu.Unlock()
	}
}

// Status reports the conversation's slots and progress.
func (a *Agent) Status(conversationID string) (models.BookingStatus, bool) {
	conv, ok := a.sessions.Get(conversationID)
	if !ok {
		return models.BookingStatus{}, false
	}
	conv.mu.Lock()
	defer conv.mu.Unlock()
	return models.BookingStatus{
		BookingContext: *conv.Session,
		CurrentStep:    conv.Session.CurrentStep,
		ReadyToBook:    conv.Session.ReadyToBook(),
		Transcript:     append([]models.ChatTurn(nil), conv.Transcript...),
	}, true
}

func (a *Agent) dispatch(ctx context.Context, intent models.Intent, message string, sess *models.BookingSession, catalog []models.Restaurant) string {
	switch intent {
	case models.IntentRecommendationRequest:
		return a.handleRecommendationRequest(ctx, message, sess)
	case models.IntentShowRestaurants:
		return a.showRestaurants(message, sess, catalog)
	case models.IntentBookingRequest:
		return a.handleBookingRequest(ctx, sess)
	case models.IntentRestaurantSelection:
		return a.handleRestaurantSelection(ctx, sess)
	case models.IntentContactInfo:
		return a.handleContactInfo(ctx, sess)
	case models.IntentBookingDetails:
		return a.handleBookingDetails(ctx, sess)
	case models.IntentConfirmation:
		return a.handleConfirmation(ctx, sess)
	default:
		return generalReply
	}
}

func (a *Agent) handleRecommendationRequest(ctx context.Context, message string, sess *models.BookingSession) string {
	resp, err := a.recommender.ForUser(ctx, message, sess)
	if err != nil {
		a.logger.Warn("recommendation request failed", zap.Error(err))
		return recommendFallbackReply
	}

	// Preferences feed back into the booking slots.
	prefs := resp.UserPreferences
	if prefs.Cuisine != "" {
		sess.CuisinePreference = prefs.Cuisine
	}
	if prefs.PartySize > 0 {
		sess.PartySize = prefs.PartySize
	}
	if prefs.Date != "" {
		sess.Date = prefs.Date
	}
	if prefs.Time != "" {
		sess.Time = prefs.Time
	}
	return recommend.Format(resp)
}

func (a *Agent) showRestaurants(message string, sess *models.BookingSession, catalog []models.Restaurant) string {
	if catalog == nil {
		return restaurantsTroubleReply
	}

	lower := strings.ToLower(message)
	cuisineFilter := MatchCuisine(lower)
	locationFilter := MatchLocation(lower)

	filtered := catalog
	if cuisineFilter != "" {
		filtered = filterRestaurants(filtered, func(r models.Restaurant) bool {
			return strings.Contains(strings.ToLower(r.Cuisine), strings.ToLower(cuisineFilter))
		})
	}
	if locationFilter != "" {
		filtered = filterRestaurants(filtered, func(r models.Restaurant) bool {
			return strings.Contains(strings.ToLower(r.Location), strings.ToLower(locationFilter))
		})
	}

	filterText := ""
	if len(filtered) == 0 {
		filtered = catalog
	} else if cuisineFilter != "" {
		filterText = " " + cuisineFilter
	} else if locationFilter != "" {
		filterText = " " + locationFilter
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here are our%s restaurants:\n\n", filterText)
	for i, r := range filtered {
		if i == 5 {
			break
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, r.Name)
		fmt.Fprintf(&b, "   %s | %s cuisine\n", r.Location, r.Cuisine)
		fmt.Fprintf(&b, "   Capacity: %d | %d tables available\n\n", r.Capacity, r.AvailableTables)
	}
	b.WriteString("Would you like to book a table at any of these restaurants?")

	a.advance(sess, models.StepRestaurantsShown)
	return b.String()
}

func filterRestaurants(restaurants []models.Restaurant, keep func(models.Restaurant) bool) []models.Restaurant {
	var out []models.Restaurant
	for _, r := range restaurants {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func (a *Agent) handleBookingRequest(ctx context.Context, sess *models.BookingSession) string {
	missing := sess.MissingBookingSlots()
	if len(missing) == 0 {
		return a.checkAvailabilityAndProceed(ctx, sess)
	}

	a.advance(sess, models.StepCollectingBookingInfo)
	return fmt.Sprintf("I'd be happy to help you book a table! I need: %s.\n\n"+
		"Example: 'Book a table at Spice Garden for 4 people tomorrow at 7pm'",
		strings.Join(missing, ", "))
}

func (a *Agent) handleRestaurantSelection(ctx context.Context, sess *models.BookingSession) string {
	if sess.RestaurantName == "" {
		return "Which restaurant would you like to book? Please let me know the name."
	}

	missing := sess.MissingBookingSlots()
	if len(missing) == 0 {
		return a.checkAvailabilityAndProceed(ctx, sess)
	}

	a.advance(sess, models.StepCollectingBookingDetails)
	return fmt.Sprintf("Great choice! %s it is! Now I need: %s.\n\n"+
		"Example: 'For 4 people tomorrow at 7pm'",
		sess.RestaurantName, strings.Join(missing, ", "))
}

func (a *Agent) handleContactInfo(ctx context.Context, sess *models.BookingSession) string {
	if sess.HasContactSlots() {
		return a.executeFinalBooking(ctx, sess)
	}
	return fmt.Sprintf("I still need your %s to complete the booking.\n\n"+
		"Example: 'My name is John Smith and my phone is 9876543210'",
		strings.Join(sess.MissingContactSlots(), " and "))
}

func (a *Agent) handleBookingDetails(ctx context.Context, sess *models.BookingSession) string {
	if sess.HasBookingSlots() {
		return a.checkAvailabilityAndProceed(ctx, sess)
	}
	return fmt.Sprintf("I need: %s to check availability.\n\n"+
		"Example: 'For 4 people at Spice Garden tomorrow at 7pm'",
		strings.Join(sess.MissingBookingSlots(), ", "))
}

func (a *Agent) handleConfirmation(ctx context.Context, sess *models.BookingSession) string {
	switch sess.CurrentStep {
	case models.StepAvailabilityConfirmed:
		return a.askForContactInfo(sess)
	case models.StepReadyToBook:
		return a.executeFinalBooking(ctx, sess)
	default:
		return "What would you like me to help you with?"
	}
}

func (a *Agent) checkAvailabilityAndProceed(ctx context.Context, sess *models.BookingSession) string {
	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	result, err := a.booking.CheckAvailability(callCtx, models.AvailabilityRequest{
		RestaurantID: sess.RestaurantID,
		PartySize:    sess.PartySize,
		Date:         sess.Date,
		Time:         sess.Time,
	})
	if err != nil {
		a.logger.Warn("availability check failed",
			zap.Int("restaurantID", sess.RestaurantID), zap.Error(err))
		return availabilityTroubleReply
	}

	if !result.Available {
		errMsg := result.Error
		if errMsg == "" {
			errMsg = "No tables available"
		}
		return fmt.Sprintf("Sorry, no tables available at %s for your requested time.\n\n"+
			"Error: %s\n\nTry a different time or restaurant?", sess.RestaurantName, errMsg)
	}

	if result.SuggestedTableID != nil {
		sess.TableID = *result.SuggestedTableID
	}
	a.advance(sess, models.StepAvailabilityConfirmed)

	if sess.HasContactSlots() {
		return a.executeFinalBooking(ctx, sess)
	}
	return fmt.Sprintf("Great! Table available at %s:\n\n%d people on %s at %s\n\n"+
		"To complete booking, I need your contact details:\n"+
		"Example: 'My name is John Smith and phone is 9876543210'",
		sess.RestaurantName, sess.PartySize, sess.Date, sess.Time)
}

func (a *Agent) askForContactInfo(sess *models.BookingSession) string {
	a.advance(sess, models.StepCollectingContact)
	return "Perfect! Now I need your contact information:\n\n" +
		"- Your name\n- Phone number\n\n" +
		"Example: 'My name is John Smith and my phone is 9876543210'"
}

func (a *Agent) executeFinalBooking(ctx context.Context, sess *models.BookingSession) string {
	tableID := sess.TableID
	if tableID == 0 {
		tableID = 1
	}

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	result, err := a.booking.CreateReservation(callCtx, models.ReservationRequest{
		UserName:     sess.UserName,
		UserPhone:    sess.UserPhone,
		RestaurantID: sess.RestaurantID,
		TableID:      tableID,
		PartySize:    sess.PartySize,
		Date:         sess.Date,
		Time:         sess.Time,
	})
	if err != nil {
		a.logger.Warn("reservation failed",
			zap.Int("restaurantID", sess.RestaurantID), zap.Error(err))
		return reservationTroubleReply
	}

	if !result.Success {
		errMsg := result.Error
		if errMsg == "" {
			errMsg = "Unknown error"
		}
		return fmt.Sprintf("Booking failed: %s", errMsg)
	}

	reservationID := "N/A"
	if result.ReservationID != nil {
		reservationID = fmt.Sprintf("%d", *result.ReservationID)
	}
	a.advance(sess, models.StepBookingCompleted)

	return fmt.Sprintf("Reservation Confirmed!\n\nDetails:\n"+
		"- Reservation ID: %s\n- Restaurant: %s\n- Name: %s\n- Phone: %s\n"+
		"- Party: %d people\n- Date: %s\n- Time: %s\n\n"+
		"Please arrive 10 minutes early!",
		reservationID, sess.RestaurantName, sess.UserName, sess.UserPhone,
		sess.PartySize, sess.Date, sess.Time)
}

// catalogSnapshot fetches the catalog for this turn. Extraction and
// filtering tolerate a nil catalog; only showRestaurants surfaces the
// failure to the user.
func (a *Agent) catalogSnapshot(ctx context.Context) []models.Restaurant {
	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	catalog, err := a.booking.ListRestaurants(callCtx)
	if err != nil {
		a.logger.Warn("catalog fetch failed", zap.Error(err))
		return nil
	}
	return catalog
}

func (a *Agent) advance(sess *models.BookingSession, to models.Step) {
	if err := sess.Advance(to); err != nil {
		a.logger.Warn("step transition rejected", zap.Error(err))
	}
}
