package metrics

import (
	"errors"
	"time"

	"headlines/internal/domain/entity"
)

// Cache lookup results.
const (
	CacheHit    = "hit"
	CacheMiss   = "miss"
	CacheShared = "shared"
)

// Upstream request outcomes.
const (
	OutcomeSuccess     = "success"
	OutcomeNetworkErr  = "network_error"
	OutcomeClientErr   = "client_error"
	OutcomeRateLimited = "rate_limited"
	OutcomeOther       = "error"
)

// RecordCacheLookup records a single cache lookup.
func RecordCacheLookup(result string) {
	CacheLookupsTotal.WithLabelValues(result).Inc()
}

// UpdateCacheEntries sets the current number of cache entries.
func UpdateCacheEntries(count int) {
	CacheEntries.Set(float64(count))
}

// OutcomeFor classifies an upstream call result for the outcome label.
func OutcomeFor(err error) string {
	if err == nil {
		return OutcomeSuccess
	}

	var netErr *entity.NetworkError
	if errors.As(err, &netErr) {
		return OutcomeNetworkErr
	}

	var clientErr *entity.ClientError
	if errors.As(err, &clientErr) {
		if clientErr.RateLimited() {
			return OutcomeRateLimited
		}
		return OutcomeClientErr
	}

	return OutcomeOther
}

// RecordUpstreamRequest records the outcome and latency of one news API call.
func RecordUpstreamRequest(outcome string, duration time.Duration) {
	UpstreamRequestsTotal.WithLabelValues(outcome).Inc()
	UpstreamRequestDuration.Observe(duration.Seconds())
}

// RecordPrewarm records a finished pre-warm run.
func RecordPrewarm(success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	PrewarmRunsTotal.WithLabelValues(status).Inc()
}

// RecordThrottled records a request rejected by the throttle.
func RecordThrottled() {
	HTTPThrottledTotal.Inc()
}

// RecordConfigFallback records that an invalid value for key was ignored.
func RecordConfigFallback(key string) {
	ConfigFallbacksTotal.WithLabelValues(key).Inc()
}
