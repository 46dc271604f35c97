package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/octobees/places-gateway/internal/entity"
)

// FlexibleFloat decodes a JSON number, a numeric string, or null.
// Strings that do not parse as a number decode to zero.
type FlexibleFloat float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexibleFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = FlexibleFloat(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = FlexibleFloat(v)
	return nil
}

// SearchPlacesRequest is the body of POST /search-places.
type SearchPlacesRequest struct {
	Location string        `json:"location"`
	Radius   FlexibleFloat `json:"radius"`
	Type     string        `json:"type"`
	Keyword  string        `json:"keyword"`
}

// SearchPlacesResponse wraps the enriched search results.
type SearchPlacesResponse struct {
	Places []entity.EnrichedPlace `json:"places"`
	Status string                 `json:"status"`
}
