package places

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourmesh/tourmesh/core"
)

var _ core.PlacesSource = (*Client)(nil)

type stubGeocoder struct {
	coords *core.Coordinates
}

func (s *stubGeocoder) Verify(context.Context, string) (*core.Coordinates, error) {
	return s.coords, nil
}

func romeGeocoder() *stubGeocoder {
	return &stubGeocoder{coords: &core.Coordinates{Lat: 41.89, Lon: 12.49, DisplayName: "Rome, Italy"}}
}

func elements(names ...string) string {
	var parts []string
	for _, n := range names {
		if n == "" {
			parts = append(parts, `{"tags":{}}`)
			continue
		}
		parts = append(parts, `{"tags":{"name":"`+n+`"}}`)
	}
	return `{"elements":[` + strings.Join(parts, ",") + `]}`
}

func TestFetch(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Write([]byte(elements("Colosseum", "Trevi Fountain")))
	}))
	defer srv.Close()

	client := NewClient(romeGeocoder(), func(o *Options) { o.BaseURL = srv.URL })
	names, err := client.Fetch(context.Background(), "Rome", 5)
	require.NoError(t, err)

	assert.Equal(t, []string{"Colosseum", "Trevi Fountain"}, names)
	assert.Contains(t, gotBody, `node["tourism"]`)
	assert.Contains(t, gotBody, `way["historic"]`)
	assert.Contains(t, gotBody, `["leisure"="park"]`)
	assert.Contains(t, gotBody, "out body 15;", "over-fetch is three times the limit")
}

func TestFetch_DeduplicatesCaseInsensitively(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(elements("Colosseum", "colosseum", "COLOSSEUM", "Pantheon")))
	}))
	defer srv.Close()

	client := NewClient(romeGeocoder(), func(o *Options) { o.BaseURL = srv.URL })
	names, err := client.Fetch(context.Background(), "Rome", 5)
	require.NoError(t, err)

	assert.Equal(t, []string{"Colosseum", "Pantheon"}, names)
}

func TestFetch_SkipsUnnamedAndTruncates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(elements("", "A", "B", "C", "")))
	}))
	defer srv.Close()

	client := NewClient(romeGeocoder(), func(o *Options) { o.BaseURL = srv.URL })
	names, err := client.Fetch(context.Background(), "Rome", 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, names)
}

func TestFetch_CustomRanker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(elements("Pantheon", "Colosseum")))
	}))
	defer srv.Close()

	client := NewClient(romeGeocoder(), func(o *Options) {
		o.BaseURL = srv.URL
		o.Ranker = func(names []string) []string {
			sort.Strings(names)
			return names
		}
	})
	names, err := client.Fetch(context.Background(), "Rome", 5)
	require.NoError(t, err)

	assert.Equal(t, []string{"Colosseum", "Pantheon"}, names)
}

func TestFetch_UnresolvablePlace(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("overpass endpoint must not be called for an unresolvable place")
	}))
	defer srv.Close()

	client := NewClient(&stubGeocoder{}, func(o *Options) { o.BaseURL = srv.URL })
	names, err := client.Fetch(context.Background(), "Atlantis", 5)
	require.NoError(t, err)

	assert.Nil(t, names)
}

func TestFetch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(romeGeocoder(), func(o *Options) { o.BaseURL = srv.URL })
	_, err := client.Fetch(context.Background(), "Rome", 5)
	assert.Error(t, err)
}
