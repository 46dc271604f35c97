package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestAPIKeyHandler_Get(t *testing.T) {
	tests := map[string]struct {
		apiKey     string
		expectCode int
		expectBody string
	}{
		"configured": {
			apiKey:     "browser-key",
			expectCode: http.StatusOK,
			expectBody: `{"apiKey":"browser-key","success":true}`,
		},
		"not configured": {
			expectCode: http.StatusInternalServerError,
			expectBody: `{"error":"API key not configured on server"}`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h := NewAPIKeyHandler(newTestMapsService(&stubMapsClient{}, tt.apiKey))

			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/get-api-key", nil), rec)

			if err := h.Get(c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Code != tt.expectCode {
				t.Fatalf("expected %d, got %d", tt.expectCode, rec.Code)
			}
			if strings.TrimSpace(rec.Body.String()) != tt.expectBody {
				t.Fatalf("unexpected body %s", rec.Body.String())
			}
		})
	}
}
