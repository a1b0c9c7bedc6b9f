package agent

import (
	"regexp"
	"strings"

	"dineflow/models"
)

var (
	recommendationKeywords = []string{"recommend", "similar", "alternatives", "options", "suggestion", "help me choose"}
	discoveryKeywords      = []string{"show", "suggest", "list", "find", "search", "restaurants", "dining", "eat", "places"}
	bookingKeywords        = []string{"book", "reserve", "reservation", "table"}
	contactMarkers         = []string{"name is", "phone", "number"}
	dateWords              = []string{"tomorrow", "today", "tonight"}
	confirmWords           = []string{"yes", "yeah", "ok", "okay", "sure", "proceed"}

	// Keywords that restart a finished conversation.
	freshStartIndicators = []string{
		"suggest", "show", "list", "find", "recommend", "search",
		"restaurants", "dining", "help", "hello", "hi",
		"book a table", "i want to book", "make a reservation",
	}
	discoveryVerbs = []string{"show", "suggest", "list", "find"}

	timeSignalRe = regexp.MustCompile(`\d+\s*(?:pm|am)`)
)

// Classifier assigns one intent per message. Rules run in a fixed order and
// the first match wins, so earlier rules shadow later ones. "book" also
// contains "ok", which is why the booking rule has to stay ahead of
// confirmation.
type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// IsNewConversation reports whether the message should restart a completed
// booking flow, or re-enter discovery from any step.
func (c *Classifier) IsNewConversation(message string, step models.Step) bool {
	lower := strings.ToLower(message)
	if step == models.StepBookingCompleted && containsAny(lower, freshStartIndicators) {
		return true
	}
	return containsAny(lower, discoveryVerbs) && strings.Contains(lower, "restaurant")
}

// Classify runs the rule cascade over the lowercased message.
func (c *Classifier) Classify(message string, step models.Step, catalog []models.Restaurant) models.Intent {
	lower := strings.ToLower(message)

	if containsAny(lower, recommendationKeywords) {
		return models.IntentRecommendationRequest
	}
	if containsAny(lower, discoveryKeywords) &&
		(step == models.StepInitial || step == models.StepRestaurantsShown || step == models.StepBookingCompleted) {
		return models.IntentShowRestaurants
	}
	if containsAny(lower, bookingKeywords) {
		return models.IntentBookingRequest
	}
	if c.mentionsRestaurant(lower, catalog) {
		return models.IntentRestaurantSelection
	}
	if containsAny(lower, contactMarkers) {
		return models.IntentContactInfo
	}
	if c.hasBookingDetails(lower) {
		return models.IntentBookingDetails
	}
	if containsAny(lower, confirmWords) {
		return models.IntentConfirmation
	}
	return models.IntentGeneralConversation
}

func (c *Classifier) mentionsRestaurant(lower string, catalog []models.Restaurant) bool {
	for _, r := range catalog {
		if strings.Contains(lower, strings.ToLower(r.Name)) {
			return true
		}
	}
	return false
}

func (c *Classifier) hasBookingDetails(lower string) bool {
	return partySizeRe.MatchString(lower) ||
		containsAny(lower, dateWords) ||
		timeSignalRe.MatchString(lower)
}
