package recommend

import (
	"strings"

	"dineflow/models"
)

// cuisineExpansions widen a cuisine label into related terms so that, for
// example, Italian and French both carry "european" and end up measurably
// similar.
var cuisineExpansions = map[string]string{
	"italian":    "italian pasta pizza mediterranean european",
	"indian":     "indian curry spicy asian tandoori",
	"chinese":    "chinese asian wok stir-fry noodles",
	"french":     "french european fine-dining bistro",
	"mexican":    "mexican latin spicy tex-mex",
	"american":   "american comfort casual burgers",
	"japanese":   "japanese asian sushi ramen",
	"seafood":    "seafood fish ocean coastal",
	"steakhouse": "steakhouse meat grill american",
}

var locationExpansions = map[string]string{
	"downtown":     "downtown central business urban",
	"midtown":      "midtown central business",
	"uptown":       "uptown residential quiet",
	"chinatown":    "chinatown ethnic cultural",
	"little italy": "little-italy ethnic cultural",
	"financial":    "financial business corporate",
	"village":      "village trendy artistic",
}

func expand(value string, table map[string]string) string {
	lower := strings.ToLower(value)
	for key, expansion := range table {
		if strings.Contains(lower, key) {
			return expansion
		}
	}
	return lower
}

// featureText builds the text document a restaurant is vectorized from.
func featureText(r models.Restaurant) string {
	return expand(r.Cuisine, cuisineExpansions) + " " + expand(r.Location, locationExpansions)
}
