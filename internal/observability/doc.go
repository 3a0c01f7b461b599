// Package observability groups the structured logging, Prometheus metrics and
// OpenTelemetry tracing used by the headlines service.
package observability
