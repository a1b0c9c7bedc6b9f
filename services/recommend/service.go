package recommend

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"dineflow/models"
)

var (
	preferenceCuisines  = []string{"italian", "indian", "chinese", "french", "mexican", "american", "japanese"}
	preferenceLocations = []string{"downtown", "midtown", "uptown", "village"}

	prefPartyRe = regexp.MustCompile(`(\d+)\s*(?:people|person)`)
	prefTimeRe  = regexp.MustCompile(`(\d{1,2})\s*(?:pm|am)`)
)

// Service is the recommendation facade consumed by the dialogue agent and
// the HTTP layer.
type Service struct {
	engine *Engine
	logger *zap.Logger
	now    func() time.Time
}

func NewService(engine *Engine, logger *zap.Logger) *Service {
	return &Service{engine: engine, logger: logger, now: time.Now}
}

// ForUser extracts preferences from the message, falling back to the
// caller's booking session for missing fields, and runs the engine.
func (s *Service) ForUser(ctx context.Context, message string, sess *models.BookingSession) (models.RecommendationResponse, error) {
	prefs := s.extractPreferences(message, sess)
	return models.RecommendationResponse{
		UserPreferences:    prefs,
		Recommendations:    s.engine.SmartRecommendations(ctx, prefs),
		RecommendationType: recommendationType(prefs),
	}, nil
}

func (s *Service) extractPreferences(message string, sess *models.BookingSession) models.Preference {
	lower := strings.ToLower(message)
	var prefs models.Preference

	for _, cuisine := range preferenceCuisines {
		if strings.Contains(lower, cuisine) {
			prefs.Cuisine = strings.ToUpper(cuisine[:1]) + cuisine[1:]
			break
		}
	}

	if m := prefPartyRe.FindStringSubmatch(lower); m != nil {
		prefs.PartySize, _ = strconv.Atoi(m[1])
	} else if sess != nil && sess.PartySize > 0 {
		prefs.PartySize = sess.PartySize
	}

	switch {
	case strings.Contains(lower, "tomorrow"):
		prefs.Date = s.now().AddDate(0, 0, 1).Format("2006-01-02")
	case strings.Contains(lower, "today"), strings.Contains(lower, "tonight"):
		prefs.Date = s.now().Format("2006-01-02")
	default:
		if sess != nil && sess.Date != "" {
			prefs.Date = sess.Date
		}
	}

	if m := prefTimeRe.FindStringSubmatch(lower); m != nil {
		hour, _ := strconv.Atoi(m[1])
		if strings.Contains(lower, "pm") && hour != 12 {
			hour += 12
		}
		prefs.Time = fmt.Sprintf("%02d:00", hour)
	} else if sess != nil && sess.Time != "" {
		prefs.Time = sess.Time
	}

	for _, location := range preferenceLocations {
		if strings.Contains(lower, location) {
			prefs.Location = strings.ToUpper(location[:1]) + location[1:]
			break
		}
	}

	return prefs
}

func recommendationType(prefs models.Preference) string {
	switch {
	case prefs.Date != "" && prefs.Time != "":
		return "availability_based"
	case prefs.Cuisine != "":
		return "cuisine_based"
	default:
		return "general"
	}
}

// Format renders a recommendation response as chat text. The lists are
// trimmed to three entries each; popular choices only show when no primary
// match exists.
func Format(resp models.RecommendationResponse) string {
	var b strings.Builder
	b.WriteString("Here are my recommendations for you:\n\n")

	prefs := resp.UserPreferences
	if prefs != (models.Preference{}) {
		b.WriteString("Based on your preferences:\n")
		if prefs.Cuisine != "" {
			fmt.Fprintf(&b, "- Cuisine: %s\n", prefs.Cuisine)
		}
		if prefs.PartySize > 0 {
			fmt.Fprintf(&b, "- Party size: %d people\n", prefs.PartySize)
		}
		if prefs.Date != "" {
			fmt.Fprintf(&b, "- Date: %s\n", prefs.Date)
		}
		if prefs.Time != "" {
			fmt.Fprintf(&b, "- Time: %s\n", prefs.Time)
		}
		b.WriteString("\n")
	}

	recs := resp.Recommendations
	if len(recs.Primary) > 0 {
		b.WriteString("Best Matches:\n")
		for i, rec := range recs.Primary {
			if i == 3 {
				break
			}
			fmt.Fprintf(&b, "%d. %s (%s)\n   %s • %s\n\n", i+1, rec.Name, rec.Cuisine, rec.Location, rec.Reason)
		}
	}

	if len(recs.AlternativeTimes) > 0 {
		b.WriteString("Alternative Times:\n")
		for i, alt := range recs.AlternativeTimes {
			if i == 3 {
				break
			}
			fmt.Fprintf(&b, "- %s at %s\n", alt.DisplayDate, alt.DisplayTime)
		}
		b.WriteString("\n")
	}

	if len(recs.SimilarCuisines) > 0 {
		b.WriteString("Similar Restaurants:\n")
		for i, rec := range recs.SimilarCuisines {
			if i == 3 {
				break
			}
			fmt.Fprintf(&b, "- %s (%s) - %s\n", rec.Name, rec.Cuisine, rec.Location)
		}
		b.WriteString("\n")
	}

	if len(recs.PopularChoices) > 0 && len(recs.Primary) == 0 {
		b.WriteString("Popular Choices:\n")
		for i, rec := range recs.PopularChoices {
			if i == 3 {
				break
			}
			fmt.Fprintf(&b, "- %s (%s) - %s\n", rec.Name, rec.Cuisine, rec.Location)
		}
		b.WriteString("\n")
	}

	b.WriteString("Would you like to book any of these restaurants? Just let me know which one!")
	return b.String()
}
