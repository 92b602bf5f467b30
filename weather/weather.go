// Package weather fetches current conditions from the Open-Meteo forecast
// API, implementing the core.WeatherSource boundary. The place name is
// geocoded first through an injected verifier; an unresolvable place yields
// a nil fact.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tourmesh/tourmesh/core"
)

// Options configure the Open-Meteo client.
type Options struct {
	BaseURL string
	Timeout time.Duration
}

// Client fetches current weather for geocodable places.
type Client struct {
	geocoder   core.PlaceVerifier
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs an Open-Meteo client over the given geocoder.
func NewClient(geocoder core.PlaceVerifier, optFns ...func(o *Options)) *Client {
	opts := Options{
		BaseURL: "https://api.open-meteo.com/v1/forecast",
		Timeout: 10 * time.Second,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Client{
		geocoder:   geocoder,
		baseURL:    opts.BaseURL,
		httpClient: &http.Client{Timeout: opts.Timeout},
	}
}

// forecastResponse mirrors the subset of the Open-Meteo payload we read.
type forecastResponse struct {
	Current struct {
		Temperature2m            *float64 `json:"temperature_2m"`
		PrecipitationProbability int      `json:"precipitation_probability"`
	} `json:"current"`
}

// Fetch implements core.WeatherSource.
func (c *Client) Fetch(ctx context.Context, place string) (*core.WeatherFact, error) {
	coords, err := c.geocoder.Verify(ctx, place)
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", place, err)
	}
	if coords == nil {
		return nil, nil
	}

	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(coords.Lat, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(coords.Lon, 'f', -1, 64))
	query.Set("current", "temperature_2m,precipitation_probability,weather_code")
	query.Set("timezone", "auto")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build forecast request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forecast request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forecast request: unexpected status %d", resp.StatusCode)
	}

	var payload forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode forecast response: %w", err)
	}

	return &core.WeatherFact{
		TemperatureC:     payload.Current.Temperature2m,
		PrecipitationPct: payload.Current.PrecipitationProbability,
		Place:            place,
		DisplayName:      coords.DisplayName,
	}, nil
}
