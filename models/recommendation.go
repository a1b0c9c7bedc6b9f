package models

// Preference is the transient per-utterance extraction used by the
// recommendation engine; it is merged into the session, never persisted.
type Preference struct {
	Cuisine   string `json:"cuisine,omitempty"`
	PartySize int    `json:"party_size,omitempty"`
	Date      string `json:"date,omitempty"`
	Time      string `json:"time,omitempty"`
	Location  string `json:"location,omitempty"`
}

// CuisineRecommendation is one similarity-ranked restaurant.
type CuisineRecommendation struct {
	RestaurantID    int     `json:"restaurant_id"`
	Name            string  `json:"name"`
	Cuisine         string  `json:"cuisine"`
	Location        string  `json:"location"`
	SimilarityScore float64 `json:"similarity_score"`
	AvailableTables int     `json:"available_tables"`
	Reason          string  `json:"recommendation_reason"`
}

// AvailabilityRecommendation is one bookable restaurant with its score.
type AvailabilityRecommendation struct {
	RestaurantID    int     `json:"restaurant_id"`
	Name            string  `json:"name"`
	Cuisine         string  `json:"cuisine"`
	Location        string  `json:"location"`
	Capacity        int     `json:"capacity"`
	AvailableTables int     `json:"available_tables"`
	Score           float64 `json:"recommendation_score"`
	TableID         *int    `json:"table_id,omitempty"`
	Reason          string  `json:"recommendation_reason"`
}

// AlternativeSlot is one bookable slot near the preferred time.
type AlternativeSlot struct {
	Date          string `json:"date"`
	Time          string `json:"time"`
	DisplayDate   string `json:"display_date"`
	DisplayTime   string `json:"display_time"`
	OffsetMinutes int    `json:"offset_minutes"`
	TableID       *int   `json:"table_id,omitempty"`
}

// PopularChoice is a high-capacity restaurant with good availability.
type PopularChoice struct {
	RestaurantID    int    `json:"restaurant_id"`
	Name            string `json:"name"`
	Cuisine         string `json:"cuisine"`
	Location        string `json:"location"`
	Capacity        int    `json:"capacity"`
	AvailableTables int    `json:"available_tables"`
	Reason          string `json:"recommendation_reason"`
}

// RecommendationSet groups the four recommendation lists of one query.
type RecommendationSet struct {
	Primary          []AvailabilityRecommendation `json:"primary_recommendations"`
	AlternativeTimes []AlternativeSlot            `json:"alternative_times"`
	SimilarCuisines  []CuisineRecommendation      `json:"similar_cuisines"`
	PopularChoices   []PopularChoice              `json:"popular_choices"`
}

// RecommendationResponse is the recommendation endpoint payload.
type RecommendationResponse struct {
	UserPreferences    Preference        `json:"user_preferences"`
	Recommendations    RecommendationSet `json:"recommendations"`
	RecommendationType string            `json:"recommendation_type"`
}
