package entity

import "strings"

// placeResourcePrefix namespaces identifiers returned by the Places API (New).
const placeResourcePrefix = "places/"

// LocalizedText is a display string with its language tag.
type LocalizedText struct {
	Text         string `json:"text"`
	LanguageCode string `json:"languageCode,omitempty"`
}

// LatLng is a WGS84 coordinate pair as returned by the search provider.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PlaceSummary is a single result of the search stage.
type PlaceSummary struct {
	ID               string         `json:"id"`
	DisplayName      *LocalizedText `json:"displayName,omitempty"`
	FormattedAddress string         `json:"formattedAddress,omitempty"`
	Location         *LatLng        `json:"location,omitempty"`
	Rating           float64        `json:"rating,omitempty"`
	UserRatingCount  int64          `json:"userRatingCount,omitempty"`
	Types            []string       `json:"types,omitempty"`
	EditorialSummary *LocalizedText `json:"editorialSummary,omitempty"`
}

// LookupID strips the resource namespace so the identifier can key a detail lookup.
func (p PlaceSummary) LookupID() string {
	return strings.TrimPrefix(p.ID, placeResourcePrefix)
}

// Name returns the display text, or an empty string when the provider sent none.
func (p PlaceSummary) Name() string {
	if p.DisplayName == nil {
		return ""
	}
	return p.DisplayName.Text
}

// PlaceAttributes holds the amenity flags fetched by the enrichment stage.
// The zero value is the fallback used when a lookup fails.
type PlaceAttributes struct {
	AllowsDogs            bool `json:"allowsDogs"`
	OutdoorSeating        bool `json:"outdoorSeating"`
	GoodForWatchingSports bool `json:"goodForWatchingSports"`
	ServesBeer            bool `json:"servesBeer"`
	ServesWine            bool `json:"servesWine"`
	ServesCocktails       bool `json:"servesCocktails"`
	GoodForGroups         bool `json:"goodForGroups"`
}

// EnrichedPlace is a search result merged with its amenity attributes.
// Both halves are flattened into a single JSON object.
type EnrichedPlace struct {
	PlaceSummary
	PlaceAttributes
}

// Enrich merges a summary with its attributes.
func Enrich(summary PlaceSummary, attrs PlaceAttributes) EnrichedPlace {
	return EnrichedPlace{PlaceSummary: summary, PlaceAttributes: attrs}
}
