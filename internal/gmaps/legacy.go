package gmaps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/octobees/places-gateway/internal/entity"
)

// DefaultMapsBaseURL is the host of the JSON web service APIs.
const DefaultMapsBaseURL = "https://maps.googleapis.com"

// LegacyClient calls the key-authenticated JSON web services
// (Geocoding, Nearby Search, Place Details).
type LegacyClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewLegacyClient builds a client rooted at baseURL.
func NewLegacyClient(client *http.Client, baseURL, apiKey string) *LegacyClient {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = DefaultMapsBaseURL
	}
	return &LegacyClient{client: client, baseURL: baseURL, apiKey: apiKey}
}

// Geocode resolves a free-form address.
func (c *LegacyClient) Geocode(ctx context.Context, address string) (*entity.GeocodeResult, error) {
	params := url.Values{}
	params.Set("address", address)

	body, err := c.getJSON(ctx, "geocode", "/maps/api/geocode/json", params)
	if err != nil {
		return nil, err
	}

	var result entity.GeocodeResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("geocode: decode response: %w", err)
	}
	return &result, nil
}

// ReverseGeocode returns the raw Geocoding API payload for a coordinate.
// JSON error replies are returned as payload whatever their HTTP status.
func (c *LegacyClient) ReverseGeocode(ctx context.Context, lat, lng float64) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("latlng", formatLatLng(lat, lng))
	return c.fetchJSON(ctx, "reverse geocode", "/maps/api/geocode/json", params, true)
}

// PlaceDetails returns the raw Place Details payload. fields may be empty.
func (c *LegacyClient) PlaceDetails(ctx context.Context, placeID string, fields ...string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	if len(fields) > 0 {
		params.Set("fields", strings.Join(fields, ","))
	}
	return c.getJSON(ctx, "place details", "/maps/api/place/details/json", params)
}

// NearbySearchRequest mirrors the Nearby Search query parameters.
type NearbySearchRequest struct {
	Lat, Lng     float64
	RadiusMeters float64
	Keyword      string
	Type         string
	RankBy       string
}

// NearbySearchResponse is the decoded Nearby Search payload.
type NearbySearchResponse struct {
	Status       string         `json:"status"`
	ErrorMessage string         `json:"error_message,omitempty"`
	Results      []legacyResult `json:"results"`
}

type legacyResult struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	Vicinity         string   `json:"vicinity"`
	FormattedAddress string   `json:"formatted_address"`
	Rating           float64  `json:"rating"`
	UserRatingsTotal int64    `json:"user_ratings_total"`
	Types            []string `json:"types"`
	Geometry         struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

// NearbySearch runs a legacy Nearby Search.
func (c *LegacyClient) NearbySearch(ctx context.Context, req NearbySearchRequest) (*NearbySearchResponse, error) {
	params := url.Values{}
	params.Set("location", formatLatLng(req.Lat, req.Lng))
	if req.RankBy == "distance" {
		// radius is rejected alongside rankby=distance
		params.Set("rankby", req.RankBy)
	} else {
		params.Set("radius", strconv.FormatFloat(req.RadiusMeters, 'f', -1, 64))
	}
	if req.Keyword != "" {
		params.Set("keyword", req.Keyword)
	}
	if req.Type != "" {
		params.Set("type", req.Type)
	}

	body, err := c.getJSON(ctx, "nearby search", "/maps/api/place/nearbysearch/json", params)
	if err != nil {
		return nil, err
	}

	var resp NearbySearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("nearby search: decode response: %w", err)
	}
	return &resp, nil
}

func (c *LegacyClient) getJSON(ctx context.Context, operation, path string, params url.Values) (json.RawMessage, error) {
	return c.fetchJSON(ctx, operation, path, params, false)
}

// fetchJSON issues a keyed GET. With forwardErrors set, a non-2xx reply whose
// body is valid JSON is returned as the payload instead of an *APIError.
func (c *LegacyClient) fetchJSON(ctx context.Context, operation, path string, params url.Values, forwardErrors bool) (json.RawMessage, error) {
	params.Set("key", c.apiKey)
	endpoint := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: create request: %w", operation, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: request failed: %w", operation, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", operation, err)
	}
	body = bytes.TrimSpace(body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if forwardErrors && json.Valid(body) {
			return body, nil
		}
		return nil, &APIError{
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Body:       extractUpstreamError(bytes.NewReader(body)),
		}
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("%s: upstream returned invalid JSON", operation)
	}
	return body, nil
}

func formatLatLng(lat, lng float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lng, 'f', -1, 64)
}
