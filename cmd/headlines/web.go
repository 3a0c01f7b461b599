package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"headlines/internal/config"
	"headlines/internal/domain/entity"
	hhttp "headlines/internal/handler/http"
	hheadlines "headlines/internal/handler/http/headlines"
	"headlines/internal/handler/http/requestid"
	"headlines/internal/infra/prewarm"
	"headlines/internal/observability/tracing"
	uc "headlines/internal/usecase/headlines"
)

// runWeb serves the headline page until ctx is cancelled, then shuts down gracefully.
// defaults fills whatever a page request leaves out.
func runWeb(ctx context.Context, cfg *config.Config, defaults entity.QueryInput, logger *slog.Logger) error {
	shutdownTracing := tracing.Init("headlines", cfg.Version)
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("tracer shutdown failed", slog.Any("error", err))
		}
	}()

	svc, client, err := newService(cfg)
	if err != nil {
		return err
	}
	handler, err := newHandler(cfg, svc, client, defaults, logger)
	if err != nil {
		return err
	}

	if cfg.Prewarm.Schedule != "" {
		job, err := prewarm.New(svc, defaults, cfg.Prewarm.Schedule, cfg.NewsData.Timeout, logger)
		if err != nil {
			return &config.ConfigError{Key: "PREWARM_SCHEDULE", Err: err}
		}
		job.Start()
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
			defer cancel()
			job.Stop(stopCtx)
		}()
	}

	srv := &http.Server{
		Addr:              cfg.Web.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.NewsData.Timeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Web.Addr),
			slog.String("version", cfg.Version),
			slog.Duration("cache_ttl", cfg.Cache.TTL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", slog.Any("error", err))
			return err
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
		return err
	}
	logger.Info("server stopped")
	return nil
}

// newHandler builds the routes and the middleware chain.
func newHandler(cfg *config.Config, svc *uc.Service, breaker hhttp.BreakerReporter, defaults entity.QueryInput, logger *slog.Logger) (http.Handler, error) {
	trusted, err := cfg.Web.TrustedProxyPrefixes()
	if err != nil {
		return nil, &config.ConfigError{Key: "WEB_TRUSTED_PROXIES", Err: err}
	}

	mux := http.NewServeMux()
	hheadlines.Register(mux, svc, defaults, cfg.Version, logger)
	mux.Handle("GET /health", &hhttp.HealthHandler{
		Version: cfg.Version,
		Breaker: breaker,
		Cache:   svc,
	})
	mux.Handle("GET /live", hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	throttle := hhttp.NewThrottle(cfg.Web.RateLimit, cfg.Web.RateBurst, hhttp.NewIPExtractor(trusted))

	return hhttp.Chain(mux,
		requestid.Middleware,
		hhttp.SecurityHeaders,
		tracing.Middleware,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		throttle.Middleware,
		hhttp.MetricsMiddleware,
	), nil
}
