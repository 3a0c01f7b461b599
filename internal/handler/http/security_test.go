package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecurityHeaders(t *testing.T) {
	h := SecurityHeaders(okHandler())

	tests := []struct {
		path     string
		contains string
	}{
		{"/", "form-action 'self'"},
		{"/api/headlines", "form-action 'none'"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Contains(t, rr.Header().Get("Content-Security-Policy"), tt.contains)
			assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
			assert.Equal(t, "no-referrer", rr.Header().Get("Referrer-Policy"))
		})
	}
}
