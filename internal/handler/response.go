package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// APIResponse describes the envelope returned by operational endpoints.
type APIResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Success sends a successful response using the shared envelope format.
func Success(c echo.Context, status int, message string, data any) error {
	if status == 0 {
		status = http.StatusOK
	}
	payload := APIResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	}
	return c.JSON(status, payload)
}

// Error sends an error response.
func Error(c echo.Context, status int, errText, message string) error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	if errText == "" {
		errText = http.StatusText(status)
	}
	return c.JSON(status, ErrorResponse{Error: errText, Message: message})
}

// HTTPErrorHandler renders framework errors (unknown route, method mismatch,
// bind failures, recovered panics) with the ErrorResponse body.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	errText := "Internal server error"
	message := ""

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		switch status {
		case http.StatusNotFound:
			errText = "Not found"
			message = fmt.Sprintf("no route for %s %s", c.Request().Method, c.Request().URL.Path)
		case http.StatusMethodNotAllowed:
			errText = "Method not allowed"
		default:
			errText = http.StatusText(status)
			if msg, ok := he.Message.(string); ok {
				message = msg
			}
		}
	} else {
		slog.ErrorContext(c.Request().Context(), "unhandled error", slog.Any("error", err))
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = Error(c, status, errText, message)
	}
	if writeErr != nil {
		slog.ErrorContext(c.Request().Context(), "failed to write error response", slog.Any("error", writeErr))
	}
}

// bindRequest binds the query string and body into dst. Bodies sent without a
// content type are treated as JSON.
func bindRequest(c echo.Context, dst any) error {
	req := c.Request()
	if req.ContentLength != 0 && strings.TrimSpace(req.Header.Get(echo.HeaderContentType)) == "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return c.Bind(dst)
}
