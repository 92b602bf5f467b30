package intent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourmesh/tourmesh/core"
)

var _ core.IntentExtractor = (*PatternExtractor)(nil)

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		needsWeather bool
		needsPlaces  bool
	}{
		{name: "weather only", text: "weather in Tokyo", needsWeather: true},
		{name: "forecast keyword", text: "what's the forecast like", needsWeather: true},
		{name: "places only", text: "attractions in Rome", needsPlaces: true},
		{name: "trip keyword", text: "plan a trip to Rome", needsPlaces: true},
		{name: "both", text: "Weather and places in Atlantis", needsWeather: true, needsPlaces: true},
		{name: "neither", text: "hello there", needsWeather: false, needsPlaces: false},
		{name: "case insensitive", text: "WEATHER IN OSLO", needsWeather: true},
		{name: "substring match without word boundary", text: "overseer duties", needsPlaces: true}, // "see"
		{name: "no negation handling", text: "I don't care about the weather", needsWeather: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			needsWeather, needsPlaces := Classify(tt.text)
			assert.Equal(t, tt.needsWeather, needsWeather, "needsWeather")
			assert.Equal(t, tt.needsPlaces, needsPlaces, "needsPlaces")
		})
	}
}

func TestPatternExtractor_Extract(t *testing.T) {
	extractor := NewPatternExtractor()

	in, err := extractor.Extract(context.Background(), "What's the weather in Tokyo?", nil)
	require.NoError(t, err)

	assert.Equal(t, "Tokyo", in.Place)
	assert.True(t, in.PlaceExists())
	assert.True(t, in.NeedsWeather)
	assert.False(t, in.NeedsPlaces)
}

func TestPatternExtractor_NoPlaceInvariant(t *testing.T) {
	extractor := NewPatternExtractor()

	in, err := extractor.Extract(context.Background(), "how long should i stay", nil)
	require.NoError(t, err)

	assert.False(t, in.PlaceExists())
	assert.Empty(t, in.Place)
}
