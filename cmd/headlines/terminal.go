package main

import (
	"context"
	"io"

	"headlines/internal/config"
	"headlines/internal/domain/entity"
	"headlines/internal/observability/tracing"
	"headlines/internal/render/table"
)

// runTerminal performs one lookup and writes the table to stdout.
// Validation and fetch failures are returned for the caller to report.
func runTerminal(ctx context.Context, cfg *config.Config, in entity.QueryInput, stdout io.Writer) error {
	shutdown := tracing.Init("headlines", cfg.Version)
	defer func() { _ = shutdown(context.Background()) }()

	svc, _, err := newService(cfg)
	if err != nil {
		return err
	}

	_, articles, err := svc.Headlines(ctx, in)
	if err != nil {
		return err
	}
	return table.Render(stdout, articles)
}
