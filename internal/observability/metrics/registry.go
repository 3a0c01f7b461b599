package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestsInFlight tracks the current number of HTTP requests being processed
	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)

	// HTTPThrottledTotal counts requests rejected by the request throttle
	HTTPThrottledTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "http_throttled_requests_total",
			Help: "Total number of HTTP requests rejected with 429",
		},
	)
)

// Cache metrics track the headline response cache
var (
	// CacheLookupsTotal counts cache lookups by result (hit, miss, shared)
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "headlines_cache_lookups_total",
			Help: "Total number of headline cache lookups by result",
		},
		[]string{"result"},
	)

	// CacheEntries reports the number of unexpired cache entries
	CacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "headlines_cache_entries",
			Help: "Number of entries currently held by the headline cache",
		},
	)
)

// Upstream metrics track calls to the NewsData API
var (
	// UpstreamRequestsTotal counts news API calls by outcome
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "headlines_upstream_requests_total",
			Help: "Total number of news API requests by outcome",
		},
		[]string{"outcome"},
	)

	// UpstreamRequestDuration measures news API latency in seconds
	UpstreamRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "headlines_upstream_request_duration_seconds",
			Help:    "News API request duration in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
	)

	// PrewarmRunsTotal counts cache pre-warm runs by status
	PrewarmRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "headlines_prewarm_runs_total",
			Help: "Total number of cache pre-warm runs by status",
		},
		[]string{"status"},
	)

	// ConfigFallbacksTotal counts configuration values replaced by their default
	ConfigFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "headlines_config_fallbacks_total",
			Help: "Total number of invalid configuration values replaced by defaults",
		},
		[]string{"key"},
	)
)
