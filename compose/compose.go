// Package compose renders collaborator data into reply text and merges
// fragments into a single response. Templates and the combination rules live
// here so they can be tested without any collaborator in the loop.
package compose

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tourmesh/tourmesh/core"
)

// Clarification templates used when no place could be extracted.
const (
	// ClarifyGeneric is the bare heuristic-mode reply.
	ClarifyGeneric = "I don't know if this place exists. Please provide a valid location name."
	// ClarifyDuration answers length-of-stay questions that lack a destination.
	ClarifyDuration = "How long you stay depends on the destination. Tell me where you want to go and I can help you plan the trip."
	// ClarifyTrip answers general trip-planning prompts that lack a destination.
	ClarifyTrip = "I'd love to help you plan a trip! Which destination do you have in mind?"
)

// placesConnective joins a weather fragment with the body of a places
// fragment when both were explicitly requested and both carry data.
const placesConnective = " And these are the places you can go:\n"

var (
	durationKeywords = []string{"how many days", "how long", "duration", "stay"}
	tripKeywords     = []string{"trip", "travel", "vacation", "holiday", "tour"}
)

// WeatherFragment renders current conditions. A nil temperature renders as "N/A".
func WeatherFragment(f *core.WeatherFact) string {
	temp := "N/A"
	if f.TemperatureC != nil {
		temp = strconv.FormatFloat(*f.TemperatureC, 'f', -1, 64)
	}
	return fmt.Sprintf("In %s it's currently %s°C with a chance of %d%% to rain.", f.Place, temp, f.PrecipitationPct)
}

// PlacesFragment renders a bulleted attraction list, or the unavailable
// message when the list is empty.
func PlacesFragment(place string, names []string) string {
	if len(names) == 0 {
		return PlacesUnavailable(place)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "In %s these are the places you can go:\n", place)
	for i, name := range names {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(name)
	}
	return b.String()
}

// WeatherUnavailable substitutes for a failed weather lookup.
func WeatherUnavailable(place string) string {
	return fmt.Sprintf("Unable to fetch weather information for %s.", place)
}

// PlacesUnavailable substitutes for a failed attractions lookup.
func PlacesUnavailable(place string) string {
	return fmt.Sprintf("Unable to find tourist attractions in %s.", place)
}

// UnknownPlace is the reply when verification rejects an extracted name.
func UnknownPlace(place string) string {
	return fmt.Sprintf("I don't know if %s exists. Please check the spelling or try a different location.", place)
}

// Clarify selects the clarification template for an utterance with no
// extractable place: duration keywords first, then trip keywords, then the
// generic reply.
func Clarify(text string) string {
	lower := strings.ToLower(text)
	for _, kw := range durationKeywords {
		if strings.Contains(lower, kw) {
			return ClarifyDuration
		}
	}
	for _, kw := range tripKeywords {
		if strings.Contains(lower, kw) {
			return ClarifyTrip
		}
	}
	return ClarifyGeneric
}

// Combine merges reply fragments. A single fragment passes through verbatim.
// When both weather and places were explicitly requested and both carry real
// data, the places fragment loses its leading label and is attached with the
// fixed connective. Every other multi-fragment case joins with a blank line,
// the deterministic fallback for partial failure.
func Combine(fragments []string, bothWithData bool) string {
	switch {
	case len(fragments) == 0:
		return ""
	case len(fragments) == 1:
		return fragments[0]
	case len(fragments) == 2 && bothWithData:
		return fragments[0] + placesConnective + stripLabel(fragments[1])
	default:
		return strings.Join(fragments, "\n\n")
	}
}

// stripLabel drops everything up to and including the first ":\n" so the
// connective does not duplicate the places label.
func stripLabel(fragment string) string {
	if _, body, ok := strings.Cut(fragment, ":\n"); ok {
		return body
	}
	return fragment
}
