package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"headlines/internal/observability/metrics"
)

// knownPaths bounds the path label. Anything else is reported as "other".
var knownPaths = map[string]bool{
	"/":              true,
	"/api/headlines": true,
	"/health":        true,
	"/live":          true,
	"/metrics":       true,
}

func metricPath(path string) string {
	if knownPaths[path] {
		return path
	}
	return "other"
}

// MetricsMiddleware records request count, duration and in-flight requests.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		path := metricPath(r.URL.Path)
		rec := newRecorder(w)

		start := time.Now()
		next.ServeHTTP(rec, r)
		duration := time.Since(start).Seconds()

		status := strconv.Itoa(rec.status)
		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, path, status).Observe(duration)
	})
}

// MetricsHandler returns an HTTP handler for the Prometheus metrics endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
