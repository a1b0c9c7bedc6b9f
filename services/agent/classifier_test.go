package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dineflow/models"
)

func TestClassifyIntents(t *testing.T) {
	c := NewClassifier()

	cases := []struct {
		message string
		step    models.Step
		want    models.Intent
	}{
		{"What do you recommend for Italian food?", models.StepInitial, models.IntentRecommendationRequest},
		{"help me choose a place", models.StepInitial, models.IntentRecommendationRequest},
		{"Show me Italian restaurants", models.StepInitial, models.IntentShowRestaurants},
		{"Suggest some Chinese restaurants", models.StepInitial, models.IntentShowRestaurants},
		{"Show me Mexican places", models.StepRestaurantsShown, models.IntentShowRestaurants},
		{"I want to book a table", models.StepInitial, models.IntentBookingRequest},
		{"Pasta Palace sounds nice", models.StepRestaurantsShown, models.IntentRestaurantSelection},
		{"Pasta Palace sounds nice", models.StepCollectingBookingInfo, models.IntentRestaurantSelection},
		{"Pasta Palace sounds nice", models.StepInitial, models.IntentRestaurantSelection},
		{"My name is John Smith and my phone is 9876543210", models.StepAvailabilityConfirmed, models.IntentContactInfo},
		{"My name is John Smith and my phone is 9876543210", models.StepInitial, models.IntentContactInfo},
		{"for 4 people tomorrow at 7pm", models.StepCollectingBookingDetails, models.IntentBookingDetails},
		{"yes", models.StepAvailabilityConfirmed, models.IntentConfirmation},
		{"yes", models.StepCollectingBookingInfo, models.IntentConfirmation},
		{"hello there", models.StepInitial, models.IntentGeneralConversation},
	}

	for _, tc := range cases {
		got := c.Classify(tc.message, tc.step, testCatalog)
		assert.Equal(t, tc.want, got, "message %q at step %s", tc.message, tc.step)
	}
}

// "book" contains "ok", so the booking rule must win over confirmation even
// at a confirming step.
func TestBookingRuleShadowsConfirmation(t *testing.T) {
	c := NewClassifier()
	got := c.Classify("book it", models.StepAvailabilityConfirmed, testCatalog)
	assert.Equal(t, models.IntentBookingRequest, got)
}

func TestDiscoveryGatedByStep(t *testing.T) {
	c := NewClassifier()

	got := c.Classify("Show me Mexican places", models.StepRestaurantsShown, testCatalog)
	assert.Equal(t, models.IntentShowRestaurants, got,
		"browsing again after a listing is still discovery")

	got = c.Classify("find me something", models.StepCollectingBookingDetails, testCatalog)
	assert.NotEqual(t, models.IntentShowRestaurants, got,
		"discovery keywords mid-booking do not derail the flow")

	// Explicit discovery mid-flow goes through the restart check instead,
	// which resets the session before classification.
	assert.True(t, c.IsNewConversation("find me a restaurant", models.StepCollectingBookingDetails))
}

func TestIsNewConversation(t *testing.T) {
	c := NewClassifier()

	assert.True(t, c.IsNewConversation("Suggest some Chinese restaurants", models.StepBookingCompleted))
	assert.True(t, c.IsNewConversation("hello", models.StepBookingCompleted))
	assert.True(t, c.IsNewConversation("show me restaurants", models.StepCollectingBookingDetails),
		"explicit discovery restarts from any step")
	assert.False(t, c.IsNewConversation("yes", models.StepAvailabilityConfirmed))
	assert.False(t, c.IsNewConversation("hello", models.StepCollectingContact),
		"greeting alone only restarts a completed booking")
}
