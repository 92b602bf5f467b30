// Package geo verifies place names against the Nominatim geocoding API,
// implementing the core.PlaceVerifier boundary. An unresolvable name is not
// an error: it returns a nil result.
package geo

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

// Options configure the Nominatim client.
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Client resolves place names to coordinates via Nominatim.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewClient constructs a Nominatim client. Nominatim's usage policy requires
// an identifying User-Agent, so one is always set.
func NewClient(optFns ...func(o *Options)) *Client {
	opts := Options{
		BaseURL:   "https://nominatim.openstreetmap.org/search",
		UserAgent: "tourmesh/1.0",
		Timeout:   10 * time.Second,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Client{
		baseURL:    opts.BaseURL,
		userAgent:  opts.UserAgent,
		httpClient: &http.Client{Timeout: opts.Timeout},
	}
}

// searchResult mirrors the subset of the Nominatim response we read.
// Nominatim serializes lat/lon as strings.
type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Verify implements core.PlaceVerifier. It returns the first hit's
// coordinates, or nil when the name does not resolve.
func (c *Client) Verify(ctx context.Context, name string) (*core.Coordinates, error) {
	query := url.Values{}
	query.Set("q", name)
	query.Set("format", "json")
	query.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build geocoding request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding request: unexpected status %d", resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decode geocoding response: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parse latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parse longitude %q: %w", results[0].Lon, err)
	}

	displayName := results[0].DisplayName
	if displayName == "" {
		displayName = name
	}
	return &core.Coordinates{Lat: lat, Lon: lon, DisplayName: displayName}, nil
}
