// Package metrics provides the Prometheus metrics registry and recording utilities.
//
// All metrics are registered with the Prometheus default registry and exposed
// via the /metrics endpoint in web mode:
//   - HTTP request metrics (duration, count, in-flight, throttled)
//   - Response cache metrics (lookups by result, live entries)
//   - Upstream news API metrics (requests by outcome, latency)
//
// Example usage:
//
//	start := time.Now()
//	articles, err := client.Fetch(ctx, q)
//	metrics.RecordUpstreamRequest(metrics.OutcomeFor(err), time.Since(start))
package metrics
