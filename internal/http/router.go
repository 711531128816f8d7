package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/preston-bernstein/park-waits-service/internal/http/handlers"
	"github.com/preston-bernstein/park-waits-service/internal/http/middleware"
	"github.com/preston-bernstein/park-waits-service/internal/metrics"
)

// NewRouter registers HTTP routes on a chi router.
func NewRouter(h *handlers.Handler, logger *slog.Logger, recorder *metrics.Recorder) nethttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logging(logger, recorder))
	r.Use(chimw.Recoverer)

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Get("/parks", h.Parks)
	r.Route("/parks/{"+handlers.ParamEntityID+"}", func(pr chi.Router) {
		pr.Get("/schedule", h.Schedule)
		pr.Get("/waits", h.Waits)
	})
	return r
}
