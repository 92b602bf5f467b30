package core

// Role identifies the author of a conversation turn.
type Role string

const (
	// RoleUser marks a turn authored by the end user.
	RoleUser Role = "user"
	// RoleAssistant marks a turn authored by the system.
	RoleAssistant Role = "assistant"
)

// Turn is a single immutable entry in a conversation history.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// UserTurn builds a user-authored turn.
func UserTurn(content string) Turn { return Turn{Role: RoleUser, Content: content} }

// AssistantTurn builds an assistant-authored turn.
func AssistantTurn(content string) Turn { return Turn{Role: RoleAssistant, Content: content} }

// CloneHistory returns an independent copy of a turn sequence so a processing
// call can append without mutating the caller's slice.
func CloneHistory(history []Turn) []Turn {
	clone := make([]Turn, len(history))
	copy(clone, history)
	return clone
}

// Window returns the trailing n turns of a history (the whole history when it
// is shorter). Recency is defined by insertion order.
func Window(history []Turn, n int) []Turn {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}

// Intent is the structured reading of one utterance: a candidate place plus
// the weather / attractions request flags.
type Intent struct {
	Place        string `json:"place"`
	NeedsWeather bool   `json:"needs_weather"`
	NeedsPlaces  bool   `json:"needs_places"`
}

// PlaceExists reports whether a non-empty place candidate was produced.
func (i Intent) PlaceExists() bool { return i.Place != "" }

// Coordinates is the verification token returned by a PlaceVerifier. The
// orchestration core treats it as a present/absent signal plus a display
// label and never interprets Lat/Lon itself.
type Coordinates struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	DisplayName string  `json:"display_name"`
}

// WeatherFact holds the current conditions for a verified place.
// TemperatureC is nil when the provider reported no reading.
type WeatherFact struct {
	TemperatureC     *float64 `json:"temperature_c"`
	PrecipitationPct int      `json:"precipitation_pct"`
	Place            string   `json:"place"`
	DisplayName      string   `json:"display_name"`
}
