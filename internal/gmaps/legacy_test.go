package gmaps

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/paulmach/orb"

	"github.com/octobees/places-gateway/internal/entity"
)

func newLegacyTestClient(t *testing.T, handler http.HandlerFunc) *LegacyClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewLegacyClient(server.Client(), server.URL+"/", "maps-key")
}

func TestLegacyClient_Geocode(t *testing.T) {
	client := newLegacyTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/maps/api/geocode/json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("address") != "10 Downing St" || r.URL.Query().Get("key") != "maps-key" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"status":"OK","results":[{"place_id":"x"}]}`))
	})

	result, err := client.Geocode(context.Background(), "10 Downing St")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != "OK" || !strings.Contains(string(result.Results), `"place_id":"x"`) {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestLegacyClient_ReverseGeocode(t *testing.T) {
	client := newLegacyTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("latlng") != "51.5,-0.12" {
			t.Errorf("unexpected latlng %q", r.URL.Query().Get("latlng"))
		}
		_, _ = w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}` + "\n"))
	})

	raw, err := client.ReverseGeocode(context.Background(), 51.5, -0.12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != `{"status":"ZERO_RESULTS","results":[]}` {
		t.Fatalf("expected trimmed passthrough body, got %s", raw)
	}
}

func TestLegacyClient_ReverseGeocodeForwardsErrorPayload(t *testing.T) {
	tests := map[string]struct {
		status    int
		body      string
		expectRaw string
		expectErr bool
	}{
		"json error reply": {
			status:    http.StatusBadRequest,
			body:      `{"status":"INVALID_REQUEST","error_message":"Invalid request. Invalid 'latlng' parameter."}`,
			expectRaw: `{"status":"INVALID_REQUEST","error_message":"Invalid request. Invalid 'latlng' parameter."}`,
		},
		"html error reply": {
			status:    http.StatusBadGateway,
			body:      `<html>bad gateway</html>`,
			expectErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			client := newLegacyTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			raw, err := client.ReverseGeocode(context.Background(), 1, 2)
			if tt.expectErr {
				var apiErr *APIError
				if !errors.As(err, &apiErr) || apiErr.StatusCode != tt.status {
					t.Fatalf("expected APIError with status %d, got %v", tt.status, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(raw) != tt.expectRaw {
				t.Fatalf("expected upstream body, got %s", raw)
			}
		})
	}
}

func TestLegacyClient_HTTPError(t *testing.T) {
	client := newLegacyTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error_message":"backend down"}`))
	})

	_, err := client.PlaceDetails(context.Background(), "abc")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway || apiErr.Body != "backend down" {
		t.Fatalf("unexpected api error: %+v", apiErr)
	}
}

func TestLegacyClient_InvalidJSON(t *testing.T) {
	client := newLegacyTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	})
	if _, err := client.PlaceDetails(context.Background(), "abc"); err == nil {
		t.Fatalf("expected invalid JSON error")
	}
}

func TestLegacyProvider_TextSearch(t *testing.T) {
	tests := map[string]struct {
		query       entity.SearchQuery
		expectQuery map[string]string
		absent      []string
	}{
		"keyword and type": {
			query:       entity.SearchQuery{RadiusMeters: 800, Keyword: "craft beer", PlaceType: "bar", TextQuery: "craft beer"},
			expectQuery: map[string]string{"radius": "800", "keyword": "craft beer", "type": "bar"},
		},
		"falls back to text query": {
			query:       entity.SearchQuery{RadiusMeters: 5000, TextQuery: "pub"},
			expectQuery: map[string]string{"keyword": "pub"},
			absent:      []string{"type"},
		},
		"rank by distance drops radius": {
			query:       entity.SearchQuery{RadiusMeters: 5000, Keyword: "pub", RankPreference: entity.RankDistance},
			expectQuery: map[string]string{"rankby": "distance"},
			absent:      []string{"radius"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			client := newLegacyTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/maps/api/place/nearbysearch/json" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				q := r.URL.Query()
				if q.Get("location") != "51.5,-0.1" {
					t.Errorf("unexpected location %q", q.Get("location"))
				}
				for key, value := range tt.expectQuery {
					if q.Get(key) != value {
						t.Errorf("expected %s=%q, got %q", key, value, q.Get(key))
					}
				}
				for _, key := range tt.absent {
					if q.Has(key) {
						t.Errorf("expected %s to be absent", key)
					}
				}
				_, _ = w.Write([]byte(`{"status":"OK","results":[{"place_id":"p1","name":"The Crown","vicinity":"High St","rating":4.1,"user_ratings_total":9,"types":["bar"],"geometry":{"location":{"lat":51.5,"lng":-0.1}}}]}`))
			})

			center := orb.Point{-0.1, 51.5}
			tt.query.Center = &center
			summaries, err := NewLegacyProvider(client).TextSearch(context.Background(), tt.query)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(summaries) != 1 || summaries[0].ID != "p1" || summaries[0].Name() != "The Crown" || summaries[0].FormattedAddress != "High St" {
				t.Fatalf("unexpected summaries: %+v", summaries)
			}
		})
	}
}

func TestLegacyProvider_TextSearchStatusError(t *testing.T) {
	client := newLegacyTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"REQUEST_DENIED","error_message":"The provided API key is invalid.","results":[]}`))
	})

	center := orb.Point{0, 0}
	_, err := NewLegacyProvider(client).TextSearch(context.Background(), entity.SearchQuery{Center: &center})
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != "REQUEST_DENIED" {
		t.Fatalf("expected REQUEST_DENIED APIError, got %v", err)
	}
}

func TestLegacyProvider_FetchDetails(t *testing.T) {
	client := newLegacyTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("fields") != "serves_beer,serves_wine" {
			t.Errorf("unexpected fields %q", r.URL.Query().Get("fields"))
		}
		switch r.URL.Query().Get("place_id") {
		case "ok":
			_, _ = w.Write([]byte(`{"status":"OK","result":{"serves_beer":true}}`))
		default:
			_, _ = w.Write([]byte(`{"status":"NOT_FOUND"}`))
		}
	})
	provider := NewLegacyProvider(client)

	attrs, err := provider.FetchDetails(context.Background(), "ok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !attrs.ServesBeer || attrs.ServesWine || attrs.AllowsDogs {
		t.Fatalf("unexpected attributes: %+v", attrs)
	}

	if _, err := provider.FetchDetails(context.Background(), "gone"); err == nil {
		t.Fatalf("expected NOT_FOUND to fail")
	}
}

func TestExtractUpstreamError(t *testing.T) {
	if msg := extractUpstreamError(strings.NewReader(`{"error":{"message":"boom"}}`)); msg != "boom" {
		t.Fatalf("expected boom, got %s", msg)
	}
	if msg := extractUpstreamError(strings.NewReader(`not-json`)); msg != "not-json" {
		t.Fatalf("expected raw body fallback, got %s", msg)
	}
	if msg := extractUpstreamError(strings.NewReader("")); msg != "upstream returned an error" {
		t.Fatalf("expected default message, got %s", msg)
	}
}
