// Showboard - Sonarr to Notion Dashboard Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showboard

package api

import (
	"net/http"
	"strconv"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/tomtom215/showboard/internal/config"
	"github.com/tomtom215/showboard/internal/logging"
	"github.com/tomtom215/showboard/internal/metrics"
)

// ChiMiddleware provides Chi-compatible middleware factories built from
// the security configuration.
type ChiMiddleware struct {
	cfg *config.SecurityConfig
}

// NewChiMiddleware creates the middleware factory set.
func NewChiMiddleware(cfg *config.SecurityConfig) *ChiMiddleware {
	return &ChiMiddleware{cfg: cfg}
}

// CORS builds the CORS handler. With no configured origins, cross-origin
// requests are denied.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: m.cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Api-Key"},
		MaxAge:         86400,
	})
}

// RateLimit builds the per-IP rate limiter. Disabled limiting yields a
// pass-through.
func (m *ChiMiddleware) RateLimit() func(http.Handler) http.Handler {
	if m.cfg.RateLimitDisabled {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.LimitByIP(m.cfg.RateLimitReqs, m.cfg.RateLimitWindow)
}

// RequestLogging logs each request with method, path, status and
// duration, and records the Prometheus request metrics.
func RequestLogging() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			metrics.TrackActiveRequest(true)
			defer metrics.TrackActiveRequest(false)

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			elapsed := time.Since(start)
			metrics.RecordAPIRequest(r.Method, r.URL.Path, strconv.Itoa(ww.Status()), elapsed)

			logging.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("elapsed", elapsed).
				Str("request_id", chimiddleware.GetReqID(r.Context())).
				Msg("HTTP request")
		})
	}
}
