// Package logging provides structured logging utilities with context propagation.
//
// The web server logs JSON to stdout; the terminal command logs text to stderr
// so stdout stays reserved for the headline table.
//
// Example usage:
//
//	logger := logging.NewLogger(os.Stdout, cfg.Log.Level)
//	slog.SetDefault(logger)
//
//	logging.WithRequestID(ctx, logger).Info("processing request")
package logging
