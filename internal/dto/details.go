package dto

// PlaceDetailsRequest carries the place identifier from the query string or body.
type PlaceDetailsRequest struct {
	PlaceID string `json:"place_id" query:"place_id"`
}

// APIKeyResponse is returned by GET /get-api-key.
type APIKeyResponse struct {
	APIKey  string `json:"apiKey"`
	Success bool   `json:"success"`
}
