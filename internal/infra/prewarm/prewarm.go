// Package prewarm keeps the default headline query warm in the cache by
// requesting it on a cron schedule.
package prewarm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"headlines/internal/domain/entity"
	"headlines/internal/observability/metrics"
)

// Service resolves a query through the headline cache.
type Service interface {
	Headlines(ctx context.Context, in entity.QueryInput) (entity.Query, []entity.Article, error)
}

// Job requests Input from Svc on every tick of the schedule.
// Runs never overlap; a tick that fires while a run is in progress is skipped.
type Job struct {
	svc      Service
	input    entity.QueryInput
	schedule string
	timeout  time.Duration
	logger   *slog.Logger
	cron     *cron.Cron
}

// New parses schedule (standard 5-field cron syntax, or descriptors such as
// "@every 5m") and returns a job that is not yet started.
func New(svc Service, input entity.QueryInput, schedule string, timeout time.Duration, logger *slog.Logger) (*Job, error) {
	if logger == nil {
		logger = slog.Default()
	}
	j := &Job{
		svc:      svc,
		input:    input,
		schedule: schedule,
		timeout:  timeout,
		logger:   logger,
	}

	j.cron = cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := j.cron.AddFunc(schedule, func() { j.Run(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid pre-warm schedule %q: %w", schedule, err)
	}
	return j, nil
}

// Start begins running the job in the background.
func (j *Job) Start() {
	j.cron.Start()
	j.logger.Info("cache pre-warm started",
		slog.String("schedule", j.schedule),
		slog.String("query", fmt.Sprintf("%+v", j.input)))
}

// Stop stops the scheduler and waits for a running job to finish or ctx to expire.
func (j *Job) Stop(ctx context.Context) {
	done := j.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		j.logger.Warn("cache pre-warm did not stop in time")
	}
}

// Run performs one pre-warm request. Failures are logged and never returned.
func (j *Job) Run(ctx context.Context) bool {
	start := time.Now()
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	_, articles, err := j.svc.Headlines(ctx, j.input)
	metrics.RecordPrewarm(err == nil)
	if err != nil {
		j.logger.Warn("cache pre-warm failed",
			slog.Duration("duration", time.Since(start)),
			slog.Any("error", err))
		return false
	}

	j.logger.Debug("cache pre-warm finished",
		slog.Int("articles", len(articles)),
		slog.Duration("duration", time.Since(start)))
	return true
}
