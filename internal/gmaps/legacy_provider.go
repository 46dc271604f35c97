package gmaps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/octobees/places-gateway/internal/entity"
)

// legacyAttributeFields are the only amenity flags Place Details exposes.
var legacyAttributeFields = []string{"serves_beer", "serves_wine"}

// LegacyProvider implements the search pipeline on Nearby Search and the
// legacy Place Details endpoint.
type LegacyProvider struct {
	client *LegacyClient
}

// NewLegacyProvider wraps a legacy client.
func NewLegacyProvider(client *LegacyClient) *LegacyProvider {
	return &LegacyProvider{client: client}
}

// TextSearch maps the query onto Nearby Search. The keyword falls back to the
// composed text query only when neither keyword nor type was supplied.
func (p *LegacyProvider) TextSearch(ctx context.Context, query entity.SearchQuery) ([]entity.PlaceSummary, error) {
	if query.Center == nil {
		return nil, fmt.Errorf("nearby search: location is required")
	}

	req := NearbySearchRequest{
		Lat:          query.Center.Lat(),
		Lng:          query.Center.Lon(),
		RadiusMeters: query.RadiusMeters,
		Keyword:      query.Keyword,
		Type:         query.PlaceType,
	}
	if req.Keyword == "" && req.Type == "" {
		req.Keyword = query.TextQuery
	}
	if query.RankPreference == entity.RankDistance {
		req.RankBy = "distance"
	}

	resp, err := p.client.NearbySearch(ctx, req)
	if err != nil {
		return nil, err
	}

	switch resp.Status {
	case "OK", "ZERO_RESULTS":
	default:
		return nil, &APIError{
			Operation:  "nearby search",
			StatusCode: http.StatusOK,
			Status:     resp.Status,
			Body:       resp.ErrorMessage,
		}
	}

	summaries := make([]entity.PlaceSummary, 0, len(resp.Results))
	for _, r := range resp.Results {
		address := r.FormattedAddress
		if address == "" {
			address = r.Vicinity
		}
		summaries = append(summaries, entity.PlaceSummary{
			ID:               r.PlaceID,
			DisplayName:      &entity.LocalizedText{Text: r.Name},
			FormattedAddress: address,
			Location:         &entity.LatLng{Latitude: r.Geometry.Location.Lat, Longitude: r.Geometry.Location.Lng},
			Rating:           r.Rating,
			UserRatingCount:  r.UserRatingsTotal,
			Types:            r.Types,
		})
	}
	return summaries, nil
}

// FetchDetails reads the beer and wine flags; the remaining attributes are
// not available on the legacy API and stay false.
func (p *LegacyProvider) FetchDetails(ctx context.Context, placeID string) (entity.PlaceAttributes, error) {
	body, err := p.client.PlaceDetails(ctx, placeID, legacyAttributeFields...)
	if err != nil {
		return entity.PlaceAttributes{}, err
	}

	var resp struct {
		Status       string `json:"status"`
		ErrorMessage string `json:"error_message"`
		Result       struct {
			ServesBeer bool `json:"serves_beer"`
			ServesWine bool `json:"serves_wine"`
		} `json:"result"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return entity.PlaceAttributes{}, fmt.Errorf("place details: decode response: %w", err)
	}
	if resp.Status != "OK" {
		return entity.PlaceAttributes{}, &APIError{
			Operation:  "place details",
			StatusCode: http.StatusOK,
			Status:     resp.Status,
			Body:       resp.ErrorMessage,
		}
	}

	return entity.PlaceAttributes{
		ServesBeer: resp.Result.ServesBeer,
		ServesWine: resp.Result.ServesWine,
	}, nil
}
