package agent

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourmesh/tourmesh/compose"
	"github.com/tourmesh/tourmesh/core"
)

func floatPtr(f float64) *float64 { return &f }

type stubVerifier struct {
	coords *core.Coordinates
	err    error
	calls  int
}

func (s *stubVerifier) Verify(_ context.Context, name string) (*core.Coordinates, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if s.coords != nil {
		return s.coords, nil
	}
	return nil, nil
}

type stubWeather struct {
	fact  *core.WeatherFact
	err   error
	calls int
}

func (s *stubWeather) Fetch(_ context.Context, place string) (*core.WeatherFact, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if s.fact == nil {
		return nil, nil
	}
	fact := *s.fact
	fact.Place = place
	return &fact, nil
}

type stubPlaces struct {
	names []string
	err   error
	calls int
	limit int
}

func (s *stubPlaces) Fetch(_ context.Context, _ string, limit int) ([]string, error) {
	s.calls++
	s.limit = limit
	return s.names, s.err
}

type stubExtractor struct {
	intent core.Intent
	err    error
}

func (s *stubExtractor) Extract(context.Context, string, []core.Turn) (core.Intent, error) {
	return s.intent, s.err
}

type stubClarifier struct {
	reply   string
	err     error
	history []core.Turn
}

func (s *stubClarifier) Respond(_ context.Context, _ string, history []core.Turn) (string, error) {
	s.history = history
	return s.reply, s.err
}

func verified() *stubVerifier {
	return &stubVerifier{coords: &core.Coordinates{Lat: 35.68, Lon: 139.69, DisplayName: "Tokyo, Japan"}}
}

func TestProcess_WeatherOnly(t *testing.T) {
	weather := &stubWeather{fact: &core.WeatherFact{TemperatureC: floatPtr(22), PrecipitationPct: 10}}
	places := &stubPlaces{}
	o := NewOrchestrator(verified(), weather, places)

	reply, history := o.Process(context.Background(), "What's the weather in Tokyo?", nil)

	assert.Equal(t, "In Tokyo it's currently 22°C with a chance of 10% to rain.", reply)
	assert.Equal(t, 1, weather.calls)
	assert.Zero(t, places.calls, "places collaborator must not run for a weather-only query")
	require.Len(t, history, 2)
	assert.Equal(t, core.UserTurn("What's the weather in Tokyo?"), history[0])
	assert.Equal(t, core.AssistantTurn(reply), history[1])
}

func TestProcess_PlacesOnly(t *testing.T) {
	weather := &stubWeather{}
	places := &stubPlaces{names: []string{"Colosseum", "Trevi Fountain"}}
	o := NewOrchestrator(verified(), weather, places)

	reply, _ := o.Process(context.Background(), "Plan a trip to Rome", nil)

	assert.Equal(t, "In Rome these are the places you can go:\n- Colosseum\n- Trevi Fountain", reply)
	assert.Zero(t, weather.calls)
	assert.Equal(t, 5, places.limit)
}

func TestProcess_TripPlanningDefault(t *testing.T) {
	// Neither flag set: attractions are fetched anyway.
	weather := &stubWeather{}
	places := &stubPlaces{names: []string{"Alfama"}}
	o := NewOrchestrator(verified(), weather, places, func(o *Options) {
		o.Extractor = &stubExtractor{intent: core.Intent{Place: "Lisbon"}}
	})

	reply, _ := o.Process(context.Background(), "Lisbon", nil)

	assert.Equal(t, "In Lisbon these are the places you can go:\n- Alfama", reply)
	assert.Zero(t, weather.calls)
	assert.Equal(t, 1, places.calls)
}

func TestProcess_BothRequested(t *testing.T) {
	weather := &stubWeather{fact: &core.WeatherFact{TemperatureC: floatPtr(22), PrecipitationPct: 10}}
	places := &stubPlaces{names: []string{"Senso-ji", "Meiji Shrine"}}
	o := NewOrchestrator(verified(), weather, places)

	reply, _ := o.Process(context.Background(), "Weather and places in Tokyo", nil)

	assert.Equal(t,
		"In Tokyo it's currently 22°C with a chance of 10% to rain."+
			" And these are the places you can go:\n- Senso-ji\n- Meiji Shrine",
		reply)
}

func TestProcess_BothRequestedPartialFailure(t *testing.T) {
	weather := &stubWeather{fact: &core.WeatherFact{TemperatureC: floatPtr(22), PrecipitationPct: 10}}
	places := &stubPlaces{err: fmt.Errorf("overpass unavailable")}
	o := NewOrchestrator(verified(), weather, places)

	reply, _ := o.Process(context.Background(), "Weather and places in Tokyo", nil)

	// The successful fragment survives and the failed collaborator is
	// replaced by a single substitute sentence, blank-line joined.
	assert.Equal(t,
		"In Tokyo it's currently 22°C with a chance of 10% to rain.\n\n"+
			"Unable to find tourist attractions in Tokyo.",
		reply)
	assert.NotContains(t, reply, "overpass unavailable")
}

func TestProcess_WeatherFailureSubstituted(t *testing.T) {
	weather := &stubWeather{err: fmt.Errorf("timeout")}
	places := &stubPlaces{}
	o := NewOrchestrator(verified(), weather, places)

	reply, _ := o.Process(context.Background(), "weather in Tokyo", nil)

	assert.Equal(t, "Unable to fetch weather information for Tokyo.", reply)
}

func TestProcess_UnknownPlace(t *testing.T) {
	weather := &stubWeather{}
	places := &stubPlaces{}
	o := NewOrchestrator(&stubVerifier{}, weather, places)

	reply, history := o.Process(context.Background(), "Weather and places in Atlantis", nil)

	assert.Equal(t, "I don't know if Atlantis exists. Please check the spelling or try a different location.", reply)
	assert.Zero(t, weather.calls, "weather must not run for an unverified place")
	assert.Zero(t, places.calls, "places must not run for an unverified place")
	assert.Len(t, history, 2)
}

func TestProcess_NoPlaceClarificationLadder(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		want      string
	}{
		{name: "trip planning", utterance: "trip", want: compose.ClarifyTrip},
		{name: "duration", utterance: "how many days", want: compose.ClarifyDuration},
		{name: "generic", utterance: "hello", want: compose.ClarifyGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &stubVerifier{}
			o := NewOrchestrator(verifier, &stubWeather{}, &stubPlaces{})

			reply, history := o.Process(context.Background(), tt.utterance, nil)

			assert.Equal(t, tt.want, reply)
			assert.Zero(t, verifier.calls, "no verification for an unextractable place")
			assert.Len(t, history, 2)
		})
	}
}

func TestProcess_ClarifierPreferred(t *testing.T) {
	clarifier := &stubClarifier{reply: "Did you mean Rome or Milan?"}
	o := NewOrchestrator(&stubVerifier{}, &stubWeather{}, &stubPlaces{}, func(o *Options) {
		o.Clarifier = clarifier
	})

	reply, _ := o.Process(context.Background(), "trip", nil)

	assert.Equal(t, "Did you mean Rome or Milan?", reply)
}

func TestProcess_ClarifierFailureFallsThrough(t *testing.T) {
	clarifier := &stubClarifier{err: fmt.Errorf("model down")}
	o := NewOrchestrator(&stubVerifier{}, &stubWeather{}, &stubPlaces{}, func(o *Options) {
		o.Clarifier = clarifier
	})

	reply, _ := o.Process(context.Background(), "trip", nil)

	assert.Equal(t, compose.ClarifyTrip, reply)
}

func TestProcess_ClarifierHistoryWindow(t *testing.T) {
	clarifier := &stubClarifier{reply: "Where to?"}
	o := NewOrchestrator(&stubVerifier{}, &stubWeather{}, &stubPlaces{}, func(o *Options) {
		o.Clarifier = clarifier
	})

	history := make([]core.Turn, 0, 8)
	for i := 0; i < 8; i++ {
		history = append(history, core.UserTurn(fmt.Sprintf("turn %d", i)))
	}
	o.Process(context.Background(), "trip", history)

	require.Len(t, clarifier.history, 5)
	assert.Equal(t, "turn 3", clarifier.history[0].Content)
}

func TestProcess_EnhancedExtractorPreferred(t *testing.T) {
	weather := &stubWeather{fact: &core.WeatherFact{TemperatureC: floatPtr(5), PrecipitationPct: 70}}
	o := NewOrchestrator(verified(), weather, &stubPlaces{}, func(o *Options) {
		o.Enhanced = &stubExtractor{intent: core.Intent{Place: "Reykjavik", NeedsWeather: true}}
	})

	reply, _ := o.Process(context.Background(), "is it cold there", nil)

	assert.Equal(t, "In Reykjavik it's currently 5°C with a chance of 70% to rain.", reply)
}

func TestProcess_EnhancedExtractorFailureFallsBack(t *testing.T) {
	weather := &stubWeather{fact: &core.WeatherFact{TemperatureC: floatPtr(22), PrecipitationPct: 10}}
	o := NewOrchestrator(verified(), weather, &stubPlaces{}, func(o *Options) {
		o.Enhanced = &stubExtractor{err: fmt.Errorf("model down")}
	})

	reply, _ := o.Process(context.Background(), "weather in Tokyo", nil)

	// The heuristic path still resolves the place.
	assert.Equal(t, "In Tokyo it's currently 22°C with a chance of 10% to rain.", reply)
}

func TestProcess_HistoryMonotonicity(t *testing.T) {
	o := NewOrchestrator(verified(), &stubWeather{}, &stubPlaces{names: []string{"Colosseum"}})

	history := []core.Turn{core.UserTurn("hi"), core.AssistantTurn("hello")}
	_, updated := o.Process(context.Background(), "places in Rome", history)

	assert.Len(t, updated, len(history)+2)
	assert.Equal(t, history, updated[:2], "existing turns are never reordered or removed")
}

func TestProcess_DoesNotMutateInputHistory(t *testing.T) {
	o := NewOrchestrator(verified(), &stubWeather{}, &stubPlaces{names: []string{"Colosseum"}})

	history := make([]core.Turn, 1, 8)
	history[0] = core.UserTurn("hi")
	o.Process(context.Background(), "places in Rome", history)

	require.Len(t, history, 1)
	assert.Equal(t, core.UserTurn("hi"), history[0])
}

func TestProcess_CustomPlacesLimit(t *testing.T) {
	places := &stubPlaces{names: []string{"One"}}
	o := NewOrchestrator(verified(), &stubWeather{}, places, func(o *Options) {
		o.PlacesLimit = 3
	})

	o.Process(context.Background(), "places in Rome", nil)

	assert.Equal(t, 3, places.limit)
}
