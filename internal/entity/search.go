package entity

import (
	"encoding/json"

	"github.com/paulmach/orb"
)

const (
	// DefaultRadiusMeters applies when the caller omits the search radius.
	DefaultRadiusMeters = 5000.0
	// MaxResultCount bounds both the search stage and the enrichment fan-out.
	MaxResultCount = 20
)

// Rank preferences accepted by the text search provider.
const (
	RankUnspecified = ""
	RankDistance    = "DISTANCE"
	RankRelevance   = "RELEVANCE"
)

// SearchQuery describes a text search biased towards a circle.
type SearchQuery struct {
	// Center is nil when the caller did not supply a location.
	Center         *orb.Point
	RadiusMeters   float64
	TextQuery      string
	Keyword        string
	PlaceType      string
	RankPreference string
	MaxResults     int
}

// GeocodeResult is the decoded envelope of a Geocoding API response.
type GeocodeResult struct {
	Status       string          `json:"status"`
	Results      json.RawMessage `json:"results"`
	ErrorMessage string          `json:"error_message,omitempty"`
}
