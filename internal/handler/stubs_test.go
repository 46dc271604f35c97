package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/octobees/places-gateway/internal/entity"
	"github.com/octobees/places-gateway/internal/service"
)

type stubPlacesProvider struct {
	summaries   []entity.PlaceSummary
	attrs       map[string]entity.PlaceAttributes
	searchErr   error
	lastQuery   entity.SearchQuery
	searchCalls int
}

func (s *stubPlacesProvider) TextSearch(ctx context.Context, query entity.SearchQuery) ([]entity.PlaceSummary, error) {
	s.searchCalls++
	s.lastQuery = query
	return s.summaries, s.searchErr
}

func (s *stubPlacesProvider) FetchDetails(ctx context.Context, placeID string) (entity.PlaceAttributes, error) {
	return s.attrs[placeID], nil
}

type stubMapsClient struct {
	geocode *entity.GeocodeResult
	raw     json.RawMessage
	err     error
	calls   int
	placeID string
}

func (s *stubMapsClient) Geocode(ctx context.Context, address string) (*entity.GeocodeResult, error) {
	s.calls++
	return s.geocode, s.err
}

func (s *stubMapsClient) ReverseGeocode(ctx context.Context, lat, lng float64) (json.RawMessage, error) {
	s.calls++
	return s.raw, s.err
}

func (s *stubMapsClient) PlaceDetails(ctx context.Context, placeID string, fields ...string) (json.RawMessage, error) {
	s.calls++
	s.placeID = placeID
	return s.raw, s.err
}

type upstreamFailure struct{}

func (upstreamFailure) Error() string        { return "upstream returned 403" }
func (upstreamFailure) HTTPStatus() int      { return 403 }
func (upstreamFailure) ResponseBody() string { return "API key not valid" }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestPlacesHandler(provider *stubPlacesProvider) *PlacesHandler {
	return NewPlacesHandler(service.NewPlacesService(provider, service.SearchOptions{DefaultQuery: "pub"}, nil, quietLogger()))
}

func newTestMapsService(client *stubMapsClient, apiKey string) *service.MapsService {
	return service.NewMapsService(client, apiKey, nil, quietLogger())
}
