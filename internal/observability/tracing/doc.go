// Package tracing provides OpenTelemetry tracing integration.
//
// Init installs an SDK tracer provider and the W3C trace-context propagator.
// No exporter is configured by default; spans still carry real trace IDs,
// which the request logs use for correlation.
//
// Example usage:
//
//	shutdown := tracing.Init("headlines", version)
//	defer shutdown(context.Background())
//
//	ctx, span := tracing.Tracer().Start(ctx, "newsdata.latest")
//	defer span.End()
package tracing
