package agent

import (
	"context"
	"time"

	"github.com/tourmesh/tourmesh/compose"
	"github.com/tourmesh/tourmesh/core"
	"github.com/tourmesh/tourmesh/intent"
	"github.com/tourmesh/tourmesh/logging"
)

// Options configure the Orchestrator.
type Options struct {
	// Extractor is the terminal heuristic strategy. Defaults to the pattern extractor.
	Extractor core.IntentExtractor
	// Enhanced, when set, is tried before Extractor and may fail freely.
	Enhanced core.IntentExtractor
	// Clarifier, when set, is asked for no-place replies before the template ladder.
	Clarifier core.Clarifier
	// PlacesLimit bounds the attraction list length.
	PlacesLimit int
	// CollaboratorTimeout bounds each verification / fetch call.
	CollaboratorTimeout time.Duration
	// HistoryWindow bounds the context offered to enhanced implementations.
	HistoryWindow int
	// Logger defaults to NoOpLogger.
	Logger logging.Logger
}

// Orchestrator routes one utterance through intent extraction, place
// verification and the weather / attractions collaborators, and merges the
// results into a single reply. It holds configuration only; all
// conversational state travels through the history argument.
type Orchestrator struct {
	verifier core.PlaceVerifier
	weather  core.WeatherSource
	places   core.PlacesSource
	opts     Options
}

// NewOrchestrator wires the orchestrator with its collaborator boundaries.
func NewOrchestrator(
	verifier core.PlaceVerifier,
	weather core.WeatherSource,
	places core.PlacesSource,
	optFns ...func(o *Options),
) *Orchestrator {
	opts := Options{
		Extractor:           intent.NewPatternExtractor(),
		PlacesLimit:         5,
		CollaboratorTimeout: 30 * time.Second,
		HistoryWindow:       5,
		Logger:              logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Orchestrator{verifier: verifier, weather: weather, places: places, opts: opts}
}

// Process handles one utterance. It appends the user turn and the composed
// assistant turn to a copy of history and returns the reply with the updated
// sequence; the input slice is never mutated. Every failure mode resolves to
// a user-facing sentence, so Process itself cannot fail.
func (o *Orchestrator) Process(ctx context.Context, utterance string, history []core.Turn) (string, []core.Turn) {
	updated := append(core.CloneHistory(history), core.UserTurn(utterance))

	in := o.extract(ctx, utterance, history)
	o.opts.Logger.Debug("intent resolved",
		"place", in.Place, "needs_weather", in.NeedsWeather, "needs_places", in.NeedsPlaces)

	var reply string
	switch {
	case !in.PlaceExists():
		reply = o.clarify(ctx, utterance, history)
	default:
		reply = o.answer(ctx, in)
	}

	return reply, append(updated, core.AssistantTurn(reply))
}

// extract runs the enhanced extractor first when configured and falls back
// silently to the heuristic path on any error.
func (o *Orchestrator) extract(ctx context.Context, utterance string, history []core.Turn) core.Intent {
	window := core.Window(history, o.opts.HistoryWindow)
	if o.opts.Enhanced != nil {
		in, err := o.opts.Enhanced.Extract(ctx, utterance, window)
		if err == nil {
			return in
		}
		o.opts.Logger.Warn("enhanced extraction failed, using pattern path", "error", err)
	}
	in, _ := o.opts.Extractor.Extract(ctx, utterance, window)
	return in
}

// clarify implements the no-place fallback ladder: configured clarifier
// first, then the keyword-selected template.
func (o *Orchestrator) clarify(ctx context.Context, utterance string, history []core.Turn) string {
	if o.opts.Clarifier != nil {
		reply, err := o.opts.Clarifier.Respond(ctx, utterance, core.Window(history, o.opts.HistoryWindow))
		if err == nil {
			return reply
		}
		o.opts.Logger.Warn("clarifier failed, using template ladder", "error", err)
	}
	return compose.Clarify(utterance)
}

// answer verifies the place and fans out to the requested collaborators.
func (o *Orchestrator) answer(ctx context.Context, in core.Intent) string {
	coords, err := o.verify(ctx, in.Place)
	if err != nil || coords == nil {
		if err != nil {
			o.opts.Logger.Warn("place verification failed", "place", in.Place, "error", err)
		}
		return compose.UnknownPlace(in.Place)
	}
	o.opts.Logger.Debug("place verified", "place", in.Place, "display_name", coords.DisplayName)

	var fragments []string
	weatherHasData, placesHasData := false, false

	if in.NeedsWeather {
		fragment, ok := o.fetchWeather(ctx, in.Place)
		fragments = append(fragments, fragment)
		weatherHasData = ok
	}

	// Trip-planning default: attractions when neither flag is set.
	if in.NeedsPlaces || (!in.NeedsWeather && !in.NeedsPlaces) {
		fragment, ok := o.fetchPlaces(ctx, in.Place)
		fragments = append(fragments, fragment)
		placesHasData = ok
	}

	bothWithData := in.NeedsWeather && in.NeedsPlaces && weatherHasData && placesHasData
	return compose.Combine(fragments, bothWithData)
}

func (o *Orchestrator) verify(ctx context.Context, place string) (*core.Coordinates, error) {
	callCtx, cancel := context.WithTimeout(ctx, o.opts.CollaboratorTimeout)
	defer cancel()
	return o.verifier.Verify(callCtx, place)
}

// fetchWeather returns the weather fragment and whether it carries real data.
func (o *Orchestrator) fetchWeather(ctx context.Context, place string) (string, bool) {
	callCtx, cancel := context.WithTimeout(ctx, o.opts.CollaboratorTimeout)
	defer cancel()

	fact, err := o.weather.Fetch(callCtx, place)
	if err != nil || fact == nil {
		if err != nil {
			o.opts.Logger.Warn("weather fetch failed", "place", place, "error", err)
		}
		return compose.WeatherUnavailable(place), false
	}
	return compose.WeatherFragment(fact), true
}

// fetchPlaces returns the attractions fragment and whether it carries real data.
func (o *Orchestrator) fetchPlaces(ctx context.Context, place string) (string, bool) {
	callCtx, cancel := context.WithTimeout(ctx, o.opts.CollaboratorTimeout)
	defer cancel()

	names, err := o.places.Fetch(callCtx, place, o.opts.PlacesLimit)
	if err != nil || len(names) == 0 {
		if err != nil {
			o.opts.Logger.Warn("places fetch failed", "place", place, "error", err)
		}
		return compose.PlacesUnavailable(place), false
	}
	return compose.PlacesFragment(place, names), true
}
