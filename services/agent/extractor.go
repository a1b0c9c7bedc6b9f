package agent

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"dineflow/models"
)

var (
	partySizeRe = regexp.MustCompile(`(\d+)\s*(?:people|person|pax)`)
	timeClockRe = regexp.MustCompile(`(\d{1,2}):(\d{2})\s*(pm|am)`)
	timeHourRe  = regexp.MustCompile(`(\d{1,2})\s*(pm|am)`)

	// Name captures stop at a following " and " or end of message.
	namePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)my name is ([a-zA-Z][a-zA-Z ]*?)(?:\s+and\b|$)`),
		regexp.MustCompile(`(?i)\bi am ([a-zA-Z][a-zA-Z ]*?)(?:\s+and\b|$)`),
		regexp.MustCompile(`(?i)name[:\s]+([a-zA-Z][a-zA-Z ]*?)(?:\s+and\b|$)`),
	}

	// Phone-prefixed patterns run before the bare-digit fallback. The
	// fallback can mis-capture unrelated 10-15 digit runs; that matches the
	// collaborator's own length rule, so it stays.
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)phone[:\s]*(?:is[:\s]*)?(\d{10,15})`),
		regexp.MustCompile(`(?i)number[:\s]*(?:is[:\s]*)?(\d{10,15})`),
		regexp.MustCompile(`\b(\d{10,15})\b`),
	}
)

// cuisineSynonyms maps a canonical cuisine to the message tokens that imply
// it. Order matters: the first matching cuisine wins.
var cuisineSynonyms = []struct {
	cuisine  string
	keywords []string
}{
	{"Italian", []string{"italian", "pasta", "pizza"}},
	{"Indian", []string{"indian", "curry", "spice"}},
	{"Chinese", []string{"chinese", "asian", "wok"}},
	{"French", []string{"french", "bistro"}},
	{"Mexican", []string{"mexican", "taco"}},
}

var locationTokens = []string{"delhi", "mumbai", "downtown", "midtown", "uptown", "chinatown", "southside"}

// Extractor pulls booking fields out of free text. Extraction is silent:
// fields that do not match are left untouched, and nothing is ever cleared.
type Extractor struct {
	now func() time.Time
}

func NewExtractor() *Extractor {
	return &Extractor{now: time.Now}
}

// extractRule is one ordered step of the extraction pass.
type extractRule struct {
	field string
	apply func(e *Extractor, message, lower string, catalog []models.Restaurant, sess *models.BookingSession)
}

var extractRules = []extractRule{
	{"party_size", (*Extractor).extractPartySize},
	{"date", (*Extractor).extractDate},
	{"time", (*Extractor).extractTime},
	{"restaurant", (*Extractor).extractRestaurant},
	{"cuisine", (*Extractor).extractCuisine},
	{"contact", (*Extractor).extractContact},
}

// Apply runs every extraction rule against the message and merges the
// results into the session.
func (e *Extractor) Apply(message string, catalog []models.Restaurant, sess *models.BookingSession) {
	lower := strings.ToLower(message)
	for _, rule := range extractRules {
		rule.apply(e, message, lower, catalog, sess)
	}
}

func (e *Extractor) extractPartySize(_ string, lower string, _ []models.Restaurant, sess *models.BookingSession) {
	m := partySizeRe.FindStringSubmatch(lower)
	if m == nil {
		return
	}
	if n, err := strconv.Atoi(m[1]); err == nil {
		sess.PartySize = n
	}
}

func (e *Extractor) extractDate(_ string, lower string, _ []models.Restaurant, sess *models.BookingSession) {
	switch {
	case strings.Contains(lower, "tomorrow"):
		sess.Date = e.now().AddDate(0, 0, 1).Format("2006-01-02")
	case strings.Contains(lower, "today"), strings.Contains(lower, "tonight"):
		sess.Date = e.now().Format("2006-01-02")
	}
}

func (e *Extractor) extractTime(_ string, lower string, _ []models.Restaurant, sess *models.BookingSession) {
	if m := timeClockRe.FindStringSubmatch(lower); m != nil {
		sess.Time = normalizeTime(m[1], m[2], m[3])
		return
	}
	if m := timeHourRe.FindStringSubmatch(lower); m != nil {
		sess.Time = normalizeTime(m[1], "", m[2])
	}
}

// normalizeTime converts a matched clock reading to 24-hour "HH:MM" form.
// "pm" adds twelve hours unless the hour is already twelve or later; a bare
// hour with neither colon nor meridiem keeps its digits and gains ":00".
func normalizeTime(hour, minute, meridiem string) string {
	h, err := strconv.Atoi(hour)
	if err != nil {
		return ""
	}
	switch meridiem {
	case "pm":
		if h < 12 {
			h += 12
		}
	case "am":
		// keep the hour as spoken
	default:
		if minute == "" {
			return hour + ":00"
		}
		return hour + ":" + minute
	}
	if minute == "" {
		minute = "00"
	}
	return fmt.Sprintf("%02d:%s", h, minute)
}

func (e *Extractor) extractRestaurant(_ string, lower string, catalog []models.Restaurant, sess *models.BookingSession) {
	for _, r := range catalog {
		if strings.Contains(lower, strings.ToLower(r.Name)) {
			sess.RestaurantName = r.Name
			sess.RestaurantID = r.ID
			return
		}
	}
}

func (e *Extractor) extractCuisine(_ string, lower string, _ []models.Restaurant, sess *models.BookingSession) {
	if c := MatchCuisine(lower); c != "" {
		sess.CuisinePreference = c
	}
}

func (e *Extractor) extractContact(message, _ string, _ []models.Restaurant, sess *models.BookingSession) {
	for _, re := range namePatterns {
		m := re.FindStringSubmatch(message)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if parts := strings.Fields(name); len(parts) > 3 {
			name = strings.Join(parts[:2], " ")
		}
		if name != "" {
			sess.UserName = name
		}
		break
	}

	for _, re := range phonePatterns {
		if m := re.FindStringSubmatch(message); m != nil {
			sess.UserPhone = m[1]
			break
		}
	}
}

// MatchCuisine resolves a cuisine preference from message text via the
// synonym table. Returns "" when nothing matches.
func MatchCuisine(lower string) string {
	for _, entry := range cuisineSynonyms {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.cuisine
			}
		}
	}
	return ""
}

// MatchLocation resolves a location preference from message text.
func MatchLocation(lower string) string {
	for _, loc := range locationTokens {
		if strings.Contains(lower, loc) {
			return strings.ToUpper(loc[:1]) + loc[1:]
		}
	}
	return ""
}
