// Package places fetches tourist attractions from the Overpass API,
// implementing the core.PlacesSource boundary. Results are over-fetched,
// deduplicated case-insensitively, passed through a replaceable ranking
// policy and truncated to the caller's limit.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tourmesh/tourmesh/core"
)

// Ranker orders candidate attraction names, most notable first. The default
// preserves provider order, which Overpass already emits most-notable-first.
type Ranker func(names []string) []string

// Options configure the Overpass client.
type Options struct {
	BaseURL string
	// RadiusMeters bounds the search around the geocoded center.
	RadiusMeters int
	Timeout      time.Duration
	Ranker       Ranker
}

// Client fetches named tourism/historic/park features near a place.
type Client struct {
	geocoder   core.PlaceVerifier
	baseURL    string
	radius     int
	ranker     Ranker
	httpClient *http.Client
}

// NewClient constructs an Overpass client over the given geocoder.
func NewClient(geocoder core.PlaceVerifier, optFns ...func(o *Options)) *Client {
	opts := Options{
		BaseURL:      "https://overpass-api.de/api/interpreter",
		RadiusMeters: 20000,
		Timeout:      30 * time.Second,
		Ranker:       func(names []string) []string { return names },
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Client{
		geocoder:   geocoder,
		baseURL:    opts.BaseURL,
		radius:     opts.RadiusMeters,
		ranker:     opts.Ranker,
		httpClient: &http.Client{Timeout: opts.Timeout},
	}
}

// overpassResponse mirrors the subset of the Overpass payload we read.
type overpassResponse struct {
	Elements []struct {
		Tags map[string]string `json:"tags"`
	} `json:"elements"`
}

// Fetch implements core.PlacesSource. It over-fetches three times the limit
// so deduplication and ranking still fill the list.
func (c *Client) Fetch(ctx context.Context, place string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 5
	}

	coords, err := c.geocoder.Verify(ctx, place)
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", place, err)
	}
	if coords == nil {
		return nil, nil
	}

	query := c.buildQuery(coords.Lat, coords.Lon, limit*3)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(query))
	if err != nil {
		return nil, fmt.Errorf("build overpass request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("overpass request: unexpected status %d", resp.StatusCode)
	}

	var payload overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode overpass response: %w", err)
	}

	var names []string
	seen := map[string]struct{}{}
	for _, el := range payload.Elements {
		name := el.Tags["name"]
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		names = append(names, name)
	}

	names = c.ranker(names)
	if len(names) > limit {
		names = names[:limit]
	}
	return names, nil
}

// buildQuery assembles the Overpass QL query for tourism, historic and park
// features around a center point.
func (c *Client) buildQuery(lat, lon float64, fetch int) string {
	around := fmt.Sprintf("(around:%d,%f,%f)", c.radius, lat, lon)
	var b strings.Builder
	b.WriteString("[out:json];\n(\n")
	for _, selector := range []string{`["tourism"]`, `["historic"]`, `["leisure"="park"]`} {
		fmt.Fprintf(&b, "  node%s%s;\n", selector, around)
		fmt.Fprintf(&b, "  way%s%s;\n", selector, around)
	}
	fmt.Fprintf(&b, ");\nout body %d;\n", fetch)
	return b.String()
}
