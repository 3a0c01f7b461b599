// Package http provides the HTTP server plumbing for web mode: middleware,
// health and metrics endpoints. Headline routes live in the headlines subpackage.
package http

import (
	"net/http"
	"time"

	"headlines/internal/handler/http/respond"
)

// BreakerReporter exposes the state of the upstream circuit breaker.
type BreakerReporter interface {
	BreakerState() string
	BreakerOpen() bool
}

// CacheReporter exposes the response cache size.
type CacheReporter interface {
	CacheLen() int
}

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "degraded"
	Timestamp string                 `json:"timestamp"` // RFC 3339
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthHandler reports the upstream circuit state and cache size.
// An open circuit marks the service degraded and answers 503.
type HealthHandler struct {
	Version string
	Breaker BreakerReporter
	Cache   CacheReporter
	Now     func() time.Time
}

// ServeHTTP writes the health report.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}

	checks := make(map[string]CheckStatus)
	healthy := true

	if h.Breaker != nil {
		check := CheckStatus{Status: "healthy", Details: map[string]interface{}{"circuit": h.Breaker.BreakerState()}}
		if h.Breaker.BreakerOpen() {
			check.Status = "unhealthy"
			check.Message = "news API circuit breaker is open"
			healthy = false
		}
		checks["upstream"] = check
	}

	if h.Cache != nil {
		checks["cache"] = CheckStatus{
			Status:  "healthy",
			Details: map[string]interface{}{"entries": h.Cache.CacheLen()},
		}
	}

	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	}
	code := http.StatusOK
	if !healthy {
		resp.Status = "degraded"
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, code, resp)
}

// LiveHandler answers liveness checks.
type LiveHandler struct{}

// ServeHTTP always reports the process as alive.
func (LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, http.StatusOK, map[string]string{"status": "alive"})
}
