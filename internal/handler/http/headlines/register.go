package headlines

import (
	"log/slog"
	"net/http"

	"headlines/internal/domain/entity"
)

// Register registers the headline page and JSON API with mux.
func Register(mux *http.ServeMux, svc Service, defaults entity.QueryInput, version string, logger *slog.Logger) {
	mux.Handle("GET /{$}", PageHandler{
		Svc:      svc,
		Defaults: defaults,
		Version:  version,
		Logger:   logger,
	})
	mux.Handle("GET /api/headlines", APIHandler{
		Svc:      svc,
		Defaults: defaults,
		Logger:   logger,
	})
}
