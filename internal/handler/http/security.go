package http

import (
	"net/http"
	"strings"

	"headlines/pkg/security/csp"
)

// SecurityHeaders sets the Content-Security-Policy and related headers.
// Paths under /api/ get the strict policy; everything else gets the page policy.
func SecurityHeaders(next http.Handler) http.Handler {
	pageValue, strictValue := csp.PagePolicy().Build(), csp.StrictPolicy().Build()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		if strings.HasPrefix(r.URL.Path, "/api/") {
			h.Set(csp.HeaderName, strictValue)
		} else {
			h.Set(csp.HeaderName, pageValue)
		}
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}
