package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"golang.org/x/sync/errgroup"

	"github.com/octobees/places-gateway/internal/dto"
	"github.com/octobees/places-gateway/internal/entity"
	"github.com/octobees/places-gateway/internal/metrics"
)

// worldBound is the valid range of WGS84 coordinates.
var worldBound = orb.Bound{Min: orb.Point{-180, -90}, Max: orb.Point{180, 90}}

// PlacesProvider is the pair of upstream capabilities the pipeline depends on.
type PlacesProvider interface {
	TextSearch(ctx context.Context, query entity.SearchQuery) ([]entity.PlaceSummary, error)
	FetchDetails(ctx context.Context, placeID string) (entity.PlaceAttributes, error)
}

// SearchOptions tunes how requests are turned into queries.
type SearchOptions struct {
	// DefaultQuery is used when the caller sends neither keyword nor type.
	DefaultQuery   string
	RankPreference string
}

// PlacesService runs the search-then-enrich pipeline.
type PlacesService struct {
	provider PlacesProvider
	opts     SearchOptions
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewPlacesService creates a new instance of PlacesService. m and logger may be nil.
func NewPlacesService(provider PlacesProvider, opts SearchOptions, m *metrics.Metrics, logger *slog.Logger) *PlacesService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlacesService{provider: provider, opts: opts, metrics: m, logger: logger}
}

// BuildQuery turns a search request into a query.
func (s *PlacesService) BuildQuery(req dto.SearchPlacesRequest) (entity.SearchQuery, error) {
	location := strings.TrimSpace(req.Location)
	if location == "" {
		return entity.SearchQuery{}, RequestError{Message: "Location is required"}
	}

	center, err := ParseLocation(location)
	if err != nil {
		return entity.SearchQuery{}, err
	}

	radius := float64(req.Radius)
	if radius <= 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		radius = entity.DefaultRadiusMeters
	}

	keyword := strings.TrimSpace(req.Keyword)
	placeType := strings.TrimSpace(req.Type)

	text := keyword
	if text == "" {
		text = placeType
	}
	if text == "" {
		text = s.opts.DefaultQuery
	}

	return entity.SearchQuery{
		Center:         &center,
		RadiusMeters:   radius,
		TextQuery:      text,
		Keyword:        keyword,
		PlaceType:      placeType,
		RankPreference: s.opts.RankPreference,
		MaxResults:     entity.MaxResultCount,
	}, nil
}

// ParseLocation parses a "lat,lng" pair into a point.
func ParseLocation(value string) (orb.Point, error) {
	latStr, lngStr, ok := strings.Cut(value, ",")
	if !ok {
		return orb.Point{}, RequestError{Message: "location must be formatted as lat,lng"}
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return orb.Point{}, RequestError{Message: fmt.Sprintf("invalid latitude %q", strings.TrimSpace(latStr))}
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil {
		return orb.Point{}, RequestError{Message: fmt.Sprintf("invalid longitude %q", strings.TrimSpace(lngStr))}
	}

	point := orb.Point{lng, lat}
	if !worldBound.Contains(point) {
		return orb.Point{}, RequestError{Message: "location is out of range"}
	}
	return point, nil
}

// FindPlaces searches for places and annotates each with its amenity
// attributes. Results keep the order of the search stage. A failed detail
// lookup leaves that place with default attributes.
func (s *PlacesService) FindPlaces(ctx context.Context, query entity.SearchQuery) ([]entity.EnrichedPlace, error) {
	if query.Center == nil {
		return nil, RequestError{Message: "Location is required"}
	}
	if query.RadiusMeters <= 0 {
		query.RadiusMeters = entity.DefaultRadiusMeters
	}
	if query.MaxResults <= 0 || query.MaxResults > entity.MaxResultCount {
		query.MaxResults = entity.MaxResultCount
	}

	summaries, err := s.provider.TextSearch(ctx, query)
	if err != nil {
		s.metrics.ObserveUpstream("text_search", metrics.OutcomeError)
		upErr := newUpstreamError("text search", err)
		s.logger.ErrorContext(ctx, "text search failed",
			slog.Int("status", upErr.StatusCode),
			slog.String("body", upErr.Body),
			slog.Any("error", err),
		)
		return nil, upErr
	}
	s.metrics.ObserveUpstream("text_search", metrics.OutcomeSuccess)

	if len(summaries) == 0 {
		return []entity.EnrichedPlace{}, nil
	}
	if len(summaries) > query.MaxResults {
		summaries = summaries[:query.MaxResults]
	}

	// detail lookups run to completion even if the caller goes away
	detailCtx := context.WithoutCancel(ctx)
	results := make([]entity.EnrichedPlace, len(summaries))

	var g errgroup.Group
	for i, summary := range summaries {
		g.Go(func() error {
			results[i] = entity.Enrich(summary, s.enrich(detailCtx, summary))
			return nil
		})
	}
	// branches always return nil; Wait is only the join
	_ = g.Wait()

	return results, nil
}

func (s *PlacesService) enrich(ctx context.Context, summary entity.PlaceSummary) (attrs entity.PlaceAttributes) {
	defer func() {
		if r := recover(); r != nil {
			s.fallback(ctx, summary, fmt.Errorf("panic: %v", r))
			attrs = entity.PlaceAttributes{}
		}
	}()

	attrs, err := s.provider.FetchDetails(ctx, summary.LookupID())
	if err != nil {
		s.fallback(ctx, summary, err)
		return entity.PlaceAttributes{}
	}
	s.metrics.ObserveUpstream("place_attributes", metrics.OutcomeSuccess)
	return attrs
}

func (s *PlacesService) fallback(ctx context.Context, summary entity.PlaceSummary, err error) {
	s.metrics.ObserveUpstream("place_attributes", metrics.OutcomeError)
	s.metrics.EnrichmentFallback()
	s.logger.WarnContext(ctx, "place details lookup failed, using defaults",
		slog.String("place_id", summary.ID),
		slog.String("name", summary.Name()),
		slog.Any("error", err),
	)
}
