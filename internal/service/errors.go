package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest marks caller input that cannot be served.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrNotConfigured is returned when the Google API key is missing.
	ErrNotConfigured = errors.New("API key not configured")
)

// RequestError indicates that the provided input is invalid. It matches
// ErrInvalidRequest with errors.Is.
type RequestError struct {
	Message string
}

// Error implements the error interface.
func (e RequestError) Error() string {
	return e.Message
}

// Is reports whether target is ErrInvalidRequest.
func (e RequestError) Is(target error) bool {
	return target == ErrInvalidRequest
}

// UpstreamError reports a failed call to a Google API.
type UpstreamError struct {
	Operation  string
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s failed: %d", e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("%s failed: %v", e.Operation, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// upstreamDetails is implemented by provider errors that carry the upstream
// response.
type upstreamDetails interface {
	HTTPStatus() int
	ResponseBody() string
}

func newUpstreamError(operation string, err error) *UpstreamError {
	upErr := &UpstreamError{Operation: operation, Err: err}
	var details upstreamDetails
	if errors.As(err, &details) {
		upErr.StatusCode = details.HTTPStatus()
		upErr.Body = details.ResponseBody()
	}
	return upErr
}
