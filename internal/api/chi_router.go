// Showboard - Sonarr to Notion Dashboard Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showboard

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter assembles the Chi router: global middleware, health and
// metrics endpoints, the versioned catalog API, and the webhook
// receiver.
func NewRouter(handler *Handler, mw *ChiMiddleware) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.CORS())
	r.Use(RequestLogging())

	r.Get("/health", handler.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.RateLimit())

		r.Get("/series", handler.Series)
		r.Get("/series/{id}", handler.SeriesByID)
		r.Get("/series/{id}/episodes", handler.SeriesEpisodes)
		r.Get("/calendar", handler.Calendar)
	})

	r.With(mw.RateLimit()).Post("/webhook", handler.Webhook)

	return r
}
