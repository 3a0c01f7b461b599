// Package headlines serves headline lookups over HTTP, as an HTML page and as JSON.
package headlines

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"

	"headlines/internal/domain/entity"
	"headlines/internal/handler/http/respond"
	"headlines/internal/observability/logging"
	"headlines/internal/render/page"
)

// Service resolves raw query input into headlines.
type Service interface {
	Headlines(ctx context.Context, in entity.QueryInput) (entity.Query, []entity.Article, error)
}

// PageHandler renders the HTML headline page. Failures are shown as a banner
// on the page with a matching status code.
type PageHandler struct {
	Svc      Service
	Defaults entity.QueryInput
	Version  string
	Logger   *slog.Logger
}

func (h PageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithTrace(ctx, logging.WithRequestID(ctx, h.Logger))

	view := page.View{Version: h.Version}
	status := http.StatusOK

	in, err := parseInput(r, h.Defaults)
	view.Input = in
	if err == nil {
		_, view.Articles, err = h.Svc.Headlines(ctx, in)
	}
	if err != nil {
		status, view.Error = classify(err)
		logFailure(logger, status, err)
	}

	var buf bytes.Buffer
	if err := page.Render(&buf, view); err != nil {
		logger.Error("render headline page", slog.String("error", err.Error()))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// APIHandler serves GET /api/headlines as JSON.
type APIHandler struct {
	Svc      Service
	Defaults entity.QueryInput
	Logger   *slog.Logger
}

func (h APIHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithTrace(ctx, logging.WithRequestID(ctx, h.Logger))

	in, err := parseInput(r, h.Defaults)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	q, articles, err := h.Svc.Headlines(ctx, in)
	if err != nil {
		status, msg := classify(err)
		logFailure(logger, status, err)
		respond.SafeError(w, status, respond.NewAppError(status, msg, nil))
		return
	}

	respond.JSON(w, http.StatusOK, newListResponse(q, articles))
}

func logFailure(logger *slog.Logger, status int, err error) {
	level := slog.LevelWarn
	if status == http.StatusBadRequest {
		level = slog.LevelInfo
	}
	logger.Log(context.Background(), level, "headline request failed",
		slog.Int("status", status),
		slog.String("error", respond.SanitizeError(err)))
}
