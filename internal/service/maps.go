package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/octobees/places-gateway/internal/entity"
	"github.com/octobees/places-gateway/internal/metrics"
)

// geocodeMessages maps non-OK Geocoding statuses to caller-facing messages.
var geocodeMessages = map[string]string{
	"ZERO_RESULTS":     "No results found for this address",
	"OVER_QUERY_LIMIT": "API quota exceeded",
	"REQUEST_DENIED":   "Geocoding request denied",
	"INVALID_REQUEST":  "Invalid geocoding request",
	"UNKNOWN_ERROR":    "Server error, please try again",
}

var emptyResults = json.RawMessage("[]")

// MapsClient is the subset of the JSON web services used by MapsService.
type MapsClient interface {
	Geocode(ctx context.Context, address string) (*entity.GeocodeResult, error)
	ReverseGeocode(ctx context.Context, lat, lng float64) (json.RawMessage, error)
	PlaceDetails(ctx context.Context, placeID string, fields ...string) (json.RawMessage, error)
}

// MapsService proxies geocoding and place detail lookups.
type MapsService struct {
	client  MapsClient
	apiKey  string
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewMapsService creates a new instance of MapsService. m and logger may be nil.
func NewMapsService(client MapsClient, apiKey string, m *metrics.Metrics, logger *slog.Logger) *MapsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MapsService{client: client, apiKey: apiKey, metrics: m, logger: logger}
}

// APIKey returns the configured browser key.
func (s *MapsService) APIKey() (string, error) {
	if s.apiKey == "" {
		return "", ErrNotConfigured
	}
	return s.apiKey, nil
}

// Geocode resolves an address. A non-OK upstream status is not an error: the
// result carries the status, a readable message, and no results.
func (s *MapsService) Geocode(ctx context.Context, address string) (*entity.GeocodeResult, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, RequestError{Message: "Address is required"}
	}
	if s.apiKey == "" {
		return nil, ErrNotConfigured
	}

	result, err := s.client.Geocode(ctx, address)
	if err != nil {
		return nil, s.upstreamFailure(ctx, "geocode", err)
	}
	s.metrics.ObserveUpstream("geocode", metrics.OutcomeSuccess)

	if result.Status == "OK" {
		if len(result.Results) == 0 {
			result.Results = emptyResults
		}
		return &entity.GeocodeResult{Status: result.Status, Results: result.Results}, nil
	}

	message, ok := geocodeMessages[result.Status]
	if !ok {
		message = "Geocoding failed"
	}
	s.logger.InfoContext(ctx, "geocode returned no usable result",
		slog.String("status", result.Status),
		slog.String("upstream_message", result.ErrorMessage),
	)
	return &entity.GeocodeResult{Status: result.Status, Results: emptyResults, ErrorMessage: message}, nil
}

// ReverseGeocode returns the upstream payload for a coordinate unchanged.
func (s *MapsService) ReverseGeocode(ctx context.Context, lat, lng *float64) (json.RawMessage, error) {
	if lat == nil || lng == nil {
		return nil, RequestError{Message: "Missing lat or lng in request body"}
	}

	body, err := s.client.ReverseGeocode(ctx, *lat, *lng)
	if err != nil {
		return nil, s.upstreamFailure(ctx, "reverse_geocode", err)
	}
	s.metrics.ObserveUpstream("reverse_geocode", metrics.OutcomeSuccess)
	return body, nil
}

// PlaceDetails returns the upstream Place Details payload unchanged.
func (s *MapsService) PlaceDetails(ctx context.Context, placeID string) (json.RawMessage, error) {
	placeID = strings.TrimSpace(placeID)
	if placeID == "" {
		return nil, RequestError{Message: "place_id is required"}
	}
	if s.apiKey == "" {
		return nil, ErrNotConfigured
	}

	body, err := s.client.PlaceDetails(ctx, placeID)
	if err != nil {
		return nil, s.upstreamFailure(ctx, "place_details", err)
	}
	s.metrics.ObserveUpstream("place_details", metrics.OutcomeSuccess)
	return body, nil
}

func (s *MapsService) upstreamFailure(ctx context.Context, operation string, err error) *UpstreamError {
	s.metrics.ObserveUpstream(operation, metrics.OutcomeError)
	upErr := newUpstreamError(strings.ReplaceAll(operation, "_", " "), err)
	s.logger.ErrorContext(ctx, "upstream call failed",
		slog.String("operation", operation),
		slog.Int("status", upErr.StatusCode),
		slog.Any("error", err),
	)
	return upErr
}
