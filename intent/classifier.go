package intent

import "strings"

// weatherKeywords trip the needs-weather flag on substring presence.
var weatherKeywords = []string{
	"weather", "temperature", "temp", "climate", "forecast", "hot", "cold", "rain",
}

// placesKeywords trip the needs-places flag on substring presence.
var placesKeywords = []string{
	"place", "places", "attraction", "attractions", "visit", "see",
	"tourist", "tourism", "plan", "trip", "things to do", "sightseeing",
}

// Classify flags whether weather and/or attractions are requested. Matching
// is lower-cased substring membership; there is no negation handling.
func Classify(text string) (needsWeather, needsPlaces bool) {
	lower := strings.ToLower(text)
	return containsAny(lower, weatherKeywords), containsAny(lower, placesKeywords)
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
