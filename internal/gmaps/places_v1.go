package gmaps

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/option"
	places "google.golang.org/api/places/v1"

	"github.com/octobees/places-gateway/internal/entity"
)

const (
	fieldMaskHeader = "X-Goog-FieldMask"

	searchFieldMask = "places.id,places.displayName,places.formattedAddress,places.location," +
		"places.rating,places.userRatingCount,places.types,places.editorialSummary"

	detailsFieldMask = "id,allowsDogs,outdoorSeating,goodForWatchingSports," +
		"servesBeer,servesWine,servesCocktails,goodForGroups"
)

// PlacesV1Provider implements the search pipeline on the Places API (New).
type PlacesV1Provider struct {
	svc *places.Service
}

// NewPlacesV1Provider builds a provider that authenticates with apiKey.
// baseURL overrides the API endpoint; client supplies the transport and timeout.
func NewPlacesV1Provider(ctx context.Context, apiKey, baseURL string, client *http.Client) (*PlacesV1Provider, error) {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	opts := []option.ClientOption{option.WithHTTPClient(withAPIKey(client, apiKey))}
	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		opts = append(opts, option.WithEndpoint(baseURL))
	}

	svc, err := places.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create places service: %w", err)
	}
	return &PlacesV1Provider{svc: svc}, nil
}

// TextSearch runs places:searchText with a circular location bias.
func (p *PlacesV1Provider) TextSearch(ctx context.Context, query entity.SearchQuery) ([]entity.PlaceSummary, error) {
	req := &places.GoogleMapsPlacesV1SearchTextRequest{
		TextQuery:      query.TextQuery,
		MaxResultCount: int64(query.MaxResults),
		RankPreference: query.RankPreference,
	}
	if query.Center != nil {
		req.LocationBias = &places.GoogleMapsPlacesV1SearchTextRequestLocationBias{
			Circle: &places.GoogleMapsPlacesV1Circle{
				Center: &places.GoogleTypeLatLng{
					Latitude:  query.Center.Lat(),
					Longitude: query.Center.Lon(),
				},
				Radius: query.RadiusMeters,
			},
		}
	}

	call := p.svc.Places.SearchText(req).Context(ctx)
	call.Header().Set(fieldMaskHeader, searchFieldMask)

	resp, err := call.Do()
	if err != nil {
		return nil, fromGoogleAPI("text search", err)
	}

	summaries := make([]entity.PlaceSummary, 0, len(resp.Places))
	for _, place := range resp.Places {
		if place == nil {
			continue
		}
		summaries = append(summaries, summaryFromV1(place))
	}
	return summaries, nil
}

// FetchDetails reads the amenity attributes of a single place.
func (p *PlacesV1Provider) FetchDetails(ctx context.Context, placeID string) (entity.PlaceAttributes, error) {
	call := p.svc.Places.Get("places/" + placeID).Context(ctx)
	call.Header().Set(fieldMaskHeader, detailsFieldMask)

	place, err := call.Do()
	if err != nil {
		return entity.PlaceAttributes{}, fromGoogleAPI("place details", err)
	}

	return entity.PlaceAttributes{
		AllowsDogs:            place.AllowsDogs,
		OutdoorSeating:        place.OutdoorSeating,
		GoodForWatchingSports: place.GoodForWatchingSports,
		ServesBeer:            place.ServesBeer,
		ServesWine:            place.ServesWine,
		ServesCocktails:       place.ServesCocktails,
		GoodForGroups:         place.GoodForGroups,
	}, nil
}

func summaryFromV1(place *places.GoogleMapsPlacesV1Place) entity.PlaceSummary {
	summary := entity.PlaceSummary{
		ID:               place.Id,
		FormattedAddress: place.FormattedAddress,
		Rating:           place.Rating,
		UserRatingCount:  place.UserRatingCount,
		Types:            place.Types,
		DisplayName:      localizedText(place.DisplayName),
		EditorialSummary: localizedText(place.EditorialSummary),
	}
	if place.Location != nil {
		summary.Location = &entity.LatLng{
			Latitude:  place.Location.Latitude,
			Longitude: place.Location.Longitude,
		}
	}
	return summary
}

func localizedText(text *places.GoogleTypeLocalizedText) *entity.LocalizedText {
	if text == nil {
		return nil
	}
	return &entity.LocalizedText{Text: text.Text, LanguageCode: text.LanguageCode}
}
