package dto

import "encoding/json"

// GeocodeRequest is the body of POST /geocode.
type GeocodeRequest struct {
	Address string `json:"address"`
}

// GeocodeResponse is returned for both resolved and unresolved addresses.
type GeocodeResponse struct {
	Status  string          `json:"status"`
	Error   string          `json:"error,omitempty"`
	Results json.RawMessage `json:"results"`
}

// ReverseGeocodeRequest is the body of POST /reverse-geocode. A nil
// coordinate means the field was absent or null.
type ReverseGeocodeRequest struct {
	Lat *FlexibleFloat `json:"lat"`
	Lng *FlexibleFloat `json:"lng"`
}

// StatusMessage is the error body used by the reverse geocoding endpoint.
type StatusMessage struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
