// Showboard - Sonarr to Notion Dashboard Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showboard

// Package api exposes the HTTP surface: catalog reads, the Sonarr
// webhook receiver, health and Prometheus metrics. Every endpoint
// responds with the uniform status/data/message envelope.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/showboard/internal/cache"
	"github.com/tomtom215/showboard/internal/config"
	"github.com/tomtom215/showboard/internal/models"
)

// CatalogSource is the cache-backed catalog surface the handlers read
// from.
type CatalogSource interface {
	GetSeries(ctx context.Context) ([]models.Series, error)
	GetSeriesByID(ctx context.Context, seriesID int) (models.Series, bool, error)
	GetSeasonBySeriesID(ctx context.Context, seriesID, seasonNumber int) ([]models.Episode, error)
	GetEpisodesBySeriesID(ctx context.Context, seriesID int) ([]models.Episode, error)
	GetEpisodesCalendar(ctx context.Context, pastDays, futureDays int) ([]models.Episode, error)
}

// EventSink consumes webhook events. HandleEvent never fails; bad
// events are logged and dropped.
type EventSink interface {
	HandleEvent(event models.WebhookEvent)
}

// Handler holds the HTTP handler dependencies.
type Handler struct {
	catalog   CatalogSource
	cache     *cache.CatalogCache
	events    EventSink
	cfg       *config.Config
	version   string
	startTime time.Time
}

// NewHandler creates the HTTP handler set.
func NewHandler(catalog CatalogSource, c *cache.CatalogCache, events EventSink, cfg *config.Config, version string) *Handler {
	return &Handler{
		catalog:   catalog,
		cache:     c,
		events:    events,
		cfg:       cfg,
		version:   version,
		startTime: time.Now(),
	}
}

// Health reports process liveness and cache warmth.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	stats := h.cache.Stats()
	respondSuccess(w, models.HealthStatus{
		Status:       "healthy",
		Version:      h.version,
		CacheWarm:    !stats.LastFullUpdate.IsZero(),
		CachedShows:  stats.Shows,
		UptimeSecond: time.Since(h.startTime).Seconds(),
	})
}
