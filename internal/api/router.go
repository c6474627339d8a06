package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the HTTP routing table around a handler.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/twin/telemetry", h.handleTelemetry)
		r.Get("/twin/state", h.handleState)
		r.Put("/twin/preferences", h.handlePreferences)
		r.Get("/telemetry/recent", h.handleRecent)
	})

	return r
}
