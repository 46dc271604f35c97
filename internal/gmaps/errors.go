package gmaps

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"google.golang.org/api/googleapi"
)

// APIError reports a Google API call that answered with a failure.
type APIError struct {
	Operation  string
	StatusCode int
	// Status is the legacy API "status" field, when the call reached the API
	// but the payload reported a failure.
	Status string
	Body   string
}

func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("%s: upstream status %s", e.Operation, e.Status)
	}
	return fmt.Sprintf("%s: upstream returned %d", e.Operation, e.StatusCode)
}

// HTTPStatus returns the upstream HTTP status code.
func (e *APIError) HTTPStatus() int { return e.StatusCode }

// ResponseBody returns the upstream body kept for diagnostics.
func (e *APIError) ResponseBody() string { return e.Body }

// fromGoogleAPI converts errors from the generated client; transport errors
// are wrapped unchanged.
func fromGoogleAPI(operation string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		body := gerr.Body
		if body == "" {
			body = gerr.Message
		}
		return &APIError{Operation: operation, StatusCode: gerr.Code, Body: body}
	}
	return fmt.Errorf("%s: %w", operation, err)
}

func extractUpstreamError(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 64<<10))
	if err != nil || len(data) == 0 {
		return "upstream returned an error"
	}

	var payload struct {
		ErrorMessage string `json:"error_message"`
		Error        struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		switch {
		case payload.ErrorMessage != "":
			return payload.ErrorMessage
		case payload.Error.Message != "":
			return payload.Error.Message
		}
	}
	return strings.TrimSpace(string(data))
}
