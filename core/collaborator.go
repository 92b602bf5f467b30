package core

import "context"

// PlaceVerifier confirms that a candidate place name resolves to real-world
// coordinates. A nil result with a nil error means the name did not resolve;
// a non-nil error means the lookup itself failed. The orchestrator treats
// both the same way.
type PlaceVerifier interface {
	Verify(ctx context.Context, name string) (*Coordinates, error)
}

// WeatherSource produces current weather facts for a verified place.
// A nil fact means no data was available.
type WeatherSource interface {
	Fetch(ctx context.Context, place string) (*WeatherFact, error)
}

// PlacesSource produces a ranked, deduplicated, length-bounded sequence of
// attraction display names for a verified place. Implementations may
// over-fetch internally and rank/filter before truncating to limit.
type PlacesSource interface {
	Fetch(ctx context.Context, place string, limit int) ([]string, error)
}

// IntentExtractor derives an Intent from raw text plus an optional recency
// window of prior turns. Implementations must be stateless across calls.
type IntentExtractor interface {
	Extract(ctx context.Context, text string, history []Turn) (Intent, error)
}

// Clarifier produces a short context-aware clarification when no place could
// be extracted. Any error routes the caller to the template ladder instead.
type Clarifier interface {
	Respond(ctx context.Context, text string, history []Turn) (string, error)
}

// HistoryStore persists per-session conversation histories. Histories are
// append-only; Save replaces the stored sequence with an extended one.
type HistoryStore interface {
	Get(ctx context.Context, sessionID string) ([]Turn, error)
	Save(ctx context.Context, sessionID string, history []Turn) error
}
