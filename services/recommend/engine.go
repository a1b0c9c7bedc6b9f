package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"dineflow/models"
	"dineflow/services/reservation"
)

const slotLayout = "2006-01-02 15:04"

// alternativeOffsets are the probed slots around the preferred time, in
// minutes. Negative offsets come first so equal distances keep the earlier
// slot ahead after the stable closeness sort.
var alternativeOffsets = []int{-120, -90, -60, -30, 30, 60, 90, 120}

// popularLocations earn a scoring bonus in availability ranking.
var popularLocations = []string{"downtown", "midtown", "village"}

// Engine ranks restaurants by cuisine similarity and live availability. The
// catalog and the similarity matrix are snapshotted at construction time;
// availability is always re-queried per call. Nothing here returns an error:
// a restaurant the engine cannot score is simply left out.
type Engine struct {
	booking reservation.Service
	logger  *zap.Logger

	catalog []models.Restaurant
	sim     [][]float64
}

// NewEngine snapshots the catalog and builds the TF-IDF similarity matrix.
func NewEngine(ctx context.Context, booking reservation.Service, logger *zap.Logger) (*Engine, error) {
	catalog, err := booking.ListRestaurants(ctx)
	if err != nil {
		return nil, fmt.Errorf("recommendation engine: load catalog: %w", err)
	}

	documents := make([]string, len(catalog))
	for i, r := range catalog {
		documents[i] = featureText(r)
	}

	e := &Engine{
		booking: booking,
		logger:  logger,
		catalog: catalog,
		sim:     cosineMatrix(buildVectors(documents)),
	}
	logger.Info("recommendation engine ready", zap.Int("restaurants", len(catalog)))
	return e, nil
}

// CuisineBased returns up to limit restaurants ranked by cuisine similarity
// to the target, excluding the target itself. Ties keep catalog order.
func (e *Engine) CuisineBased(targetRestaurantID, limit int) []models.CuisineRecommendation {
	targetIdx := -1
	for i, r := range e.catalog {
		if r.ID == targetRestaurantID {
			targetIdx = i
			break
		}
	}
	if targetIdx < 0 {
		return nil
	}

	order := make([]int, 0, len(e.catalog)-1)
	for i := range e.catalog {
		if i != targetIdx {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return e.sim[targetIdx][order[a]] > e.sim[targetIdx][order[b]]
	})
	if len(order) > limit {
		order = order[:limit]
	}

	recs := make([]models.CuisineRecommendation, 0, len(order))
	for _, idx := range order {
		r := e.catalog[idx]
		recs = append(recs, models.CuisineRecommendation{
			RestaurantID:    r.ID,
			Name:            r.Name,
			Cuisine:         r.Cuisine,
			Location:        r.Location,
			SimilarityScore: e.sim[targetIdx][idx],
			AvailableTables: r.AvailableTables,
			Reason:          fmt.Sprintf("Similar %s cuisine", r.Cuisine),
		})
	}
	return recs
}

// AvailabilityBased checks every restaurant for the requested slot and ranks
// the bookable ones. Restaurants the collaborator cannot answer for are
// skipped.
func (e *Engine) AvailabilityBased(ctx context.Context, partySize int, date, timeOfDay, cuisinePreference string) []models.AvailabilityRecommendation {
	var recs []models.AvailabilityRecommendation
	for _, r := range e.catalog {
		result, err := e.booking.CheckAvailability(ctx, models.AvailabilityRequest{
			RestaurantID: r.ID,
			PartySize:    partySize,
			Date:         date,
			Time:         timeOfDay,
		})
		if err != nil {
			e.logger.Warn("availability probe failed",
				zap.Int("restaurantID", r.ID), zap.Error(err))
			continue
		}
		if !result.Available {
			continue
		}
		recs = append(recs, models.AvailabilityRecommendation{
			RestaurantID:    r.ID,
			Name:            r.Name,
			Cuisine:         r.Cuisine,
			Location:        r.Location,
			Capacity:        r.Capacity,
			AvailableTables: r.AvailableTables,
			Score:           availabilityScore(r, cuisinePreference),
			TableID:         result.SuggestedTableID,
			Reason:          recommendationReason(r, cuisinePreference),
		})
	}
	sort.SliceStable(recs, func(a, b int) bool { return recs[a].Score > recs[b].Score })
	return recs
}

// availabilityScore weighs a bookable restaurant: 10 for being available,
// 20 for matching the cuisine preference, 10 when seated utilization sits in
// the 30-70% band, 5 for a popular location.
func availabilityScore(r models.Restaurant, cuisinePreference string) float64 {
	score := 10.0
	if cuisinePreference != "" &&
		strings.Contains(strings.ToLower(r.Cuisine), strings.ToLower(cuisinePreference)) {
		score += 20.0
	}
	if r.Capacity > 0 {
		utilization := float64(r.Capacity-r.AvailableTables) / float64(r.Capacity)
		if utilization >= 0.3 && utilization <= 0.7 {
			score += 10.0
		}
	}
	if isPopularLocation(r.Location) {
		score += 5.0
	}
	return score
}

func isPopularLocation(location string) bool {
	lower := strings.ToLower(location)
	for _, loc := range popularLocations {
		if strings.Contains(lower, loc) {
			return true
		}
	}
	return false
}

func recommendationReason(r models.Restaurant, cuisinePreference string) string {
	var reasons []string
	if cuisinePreference != "" &&
		strings.Contains(strings.ToLower(r.Cuisine), strings.ToLower(cuisinePreference)) {
		reasons = append(reasons, fmt.Sprintf("Matches your %s preference", cuisinePreference))
	}
	if r.AvailableTables > 5 {
		reasons = append(reasons, "Good availability")
	}
	if isPopularLocation(r.Location) {
		reasons = append(reasons, "Popular location")
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "Available now")
	}
	return strings.Join(reasons, " • ")
}

// AlternativeTimes probes slots around the preferred time at one restaurant
// and returns up to five bookable ones, closest first. Slots before 17:00 or
// from 22:00 on are never suggested.
func (e *Engine) AlternativeTimes(ctx context.Context, restaurantID int, preferredDate, preferredTime string, partySize int) []models.AlternativeSlot {
	preferred, err := time.Parse(slotLayout, preferredDate+" "+preferredTime)
	if err != nil {
		e.logger.Warn("unparseable preferred slot",
			zap.String("date", preferredDate), zap.String("time", preferredTime))
		return nil
	}

	var slots []models.AlternativeSlot
	for _, offset := range alternativeOffsets {
		alt := preferred.Add(time.Duration(offset) * time.Minute)
		if alt.Hour() < 17 || alt.Hour() >= 22 {
			continue
		}
		altDate := alt.Format("2006-01-02")
		altTime := alt.Format("15:04")
		result, err := e.booking.CheckAvailability(ctx, models.AvailabilityRequest{
			RestaurantID: restaurantID,
			PartySize:    partySize,
			Date:         altDate,
			Time:         altTime,
		})
		if err != nil || !result.Available {
			continue
		}
		slots = append(slots, models.AlternativeSlot{
			Date:          altDate,
			Time:          altTime,
			DisplayDate:   alt.Format("Monday, January 02"),
			DisplayTime:   alt.Format("03:04 PM"),
			OffsetMinutes: offset,
			TableID:       result.SuggestedTableID,
		})
	}

	sort.SliceStable(slots, func(a, b int) bool {
		return abs(slots[a].OffsetMinutes) < abs(slots[b].OffsetMinutes)
	})
	if len(slots) > 5 {
		slots = slots[:5]
	}
	return slots
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// SmartRecommendations assembles the four recommendation lists for one set
// of preferences. Each list degrades to empty on its own; a partial answer
// beats none.
func (e *Engine) SmartRecommendations(ctx context.Context, prefs models.Preference) models.RecommendationSet {
	partySize := prefs.PartySize
	if partySize == 0 {
		partySize = 2
	}

	var set models.RecommendationSet

	if prefs.Date != "" && prefs.Time != "" {
		primary := e.AvailabilityBased(ctx, partySize, prefs.Date, prefs.Time, prefs.Cuisine)
		if len(primary) > 5 {
			primary = primary[:5]
		}
		set.Primary = primary

		if len(set.Primary) < 3 && len(e.catalog) > 0 {
			set.AlternativeTimes = e.AlternativeTimes(ctx, e.catalog[0].ID, prefs.Date, prefs.Time, partySize)
		}
	}

	if prefs.Cuisine != "" {
		for _, r := range e.catalog {
			if strings.Contains(strings.ToLower(r.Cuisine), strings.ToLower(prefs.Cuisine)) {
				set.SimilarCuisines = e.CuisineBased(r.ID, 5)
				break
			}
		}
	}

	for _, r := range e.catalog {
		if r.Capacity >= 80 && r.AvailableTables >= 5 {
			set.PopularChoices = append(set.PopularChoices, models.PopularChoice{
				RestaurantID:    r.ID,
				Name:            r.Name,
				Cuisine:         r.Cuisine,
				Location:        r.Location,
				Capacity:        r.Capacity,
				AvailableTables: r.AvailableTables,
				Reason:          "Popular choice with good availability",
			})
			if len(set.PopularChoices) == 5 {
				break
			}
		}
	}

	return set
}
