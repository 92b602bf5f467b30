package intent

import (
	"context"

	"github.com/tourmesh/tourmesh/core"
)

// PatternExtractor is the heuristic core.IntentExtractor. It ignores
// conversation history and never returns an error, which makes it the
// terminal strategy of the extraction fallback ladder.
type PatternExtractor struct{}

// NewPatternExtractor constructs the heuristic extractor.
func NewPatternExtractor() *PatternExtractor { return &PatternExtractor{} }

// Extract implements core.IntentExtractor.
func (*PatternExtractor) Extract(_ context.Context, text string, _ []core.Turn) (core.Intent, error) {
	needsWeather, needsPlaces := Classify(text)
	return core.Intent{
		Place:        ExtractPlace(text),
		NeedsWeather: needsWeather,
		NeedsPlaces:  needsPlaces,
	}, nil
}
