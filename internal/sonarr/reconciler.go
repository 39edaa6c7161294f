// Showboard - Sonarr to Notion Dashboard Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showboard

package sonarr

import (
	"github.com/tomtom215/showboard/internal/cache"
	"github.com/tomtom215/showboard/internal/logging"
	"github.com/tomtom215/showboard/internal/metrics"
	"github.com/tomtom215/showboard/internal/models"
)

// Reconciler applies webhook-driven partial updates to the catalog cache
// without a full refresh. Each event is processed independently and
// atomically against the cache.
//
// HandleEvent never returns an error: webhook delivery must not fail the
// sender because of an unrecognized or malformed event, so problems are
// logged and the event is dropped.
type Reconciler struct {
	cache *cache.CatalogCache
}

// NewReconciler creates a webhook reconciler over the given cache.
func NewReconciler(c *cache.CatalogCache) *Reconciler {
	return &Reconciler{cache: c}
}

// HandleEvent dispatches a webhook event by kind:
//   - Download: upsert the show; if season/episode numbers are present,
//     upsert that episode too.
//   - Grab: log only; a grab indicates a pending download, not confirmed
//     content.
//   - Rename: upsert the show (title/path may have changed).
//   - Anything else: logged as unhandled, no mutation.
//   - Missing eventType: logged as an error, event dropped.
func (r *Reconciler) HandleEvent(event models.WebhookEvent) {
	if event.EventType == "" {
		logging.Error().Msg("Received webhook with no eventType")
		metrics.WebhookEventsTotal.WithLabelValues("missing").Inc()
		return
	}

	logging.Info().Str("event_type", event.EventType).Msg("Received Sonarr webhook event")

	switch event.EventType {
	case models.WebhookEventDownload:
		metrics.WebhookEventsTotal.WithLabelValues(event.EventType).Inc()
		r.handleDownload(event)
	case models.WebhookEventGrab:
		metrics.WebhookEventsTotal.WithLabelValues(event.EventType).Inc()
		r.handleGrab(event)
	case models.WebhookEventRename:
		metrics.WebhookEventsTotal.WithLabelValues(event.EventType).Inc()
		r.handleRename(event)
	default:
		metrics.WebhookEventsTotal.WithLabelValues("unknown").Inc()
		logging.Warn().Str("event_type", event.EventType).Msg("Unhandled webhook event type")
	}
}

// handleDownload updates the show and, when episode coordinates are
// present, the first episode of the payload.
func (r *Reconciler) handleDownload(event models.WebhookEvent) {
	if event.Series == nil {
		logging.Warn().Msg("Download event without series payload")
		return
	}

	r.cache.UpdateShow(event.Series.ToSeries())

	var episodeTitle string
	if len(event.Episodes) > 0 {
		ep := event.Episodes[0]
		episodeTitle = ep.Title
		if ep.SeasonNumber > 0 || ep.EpisodeNumber > 0 {
			r.cache.UpdateEpisode(event.Series.ID, ep.SeasonNumber, ep.EpisodeNumber, ep.ToEpisode(event.Series.ID))
		}
	}

	logging.Info().
		Str("series", event.Series.Title).
		Str("episode", episodeTitle).
		Msg("Download completed")
}

// handleGrab logs the grab without mutating the cache.
func (r *Reconciler) handleGrab(event models.WebhookEvent) {
	var seriesTitle, episodeTitle string
	if event.Series != nil {
		seriesTitle = event.Series.Title
	}
	if len(event.Episodes) > 0 {
		episodeTitle = event.Episodes[0].Title
	}

	logging.Info().
		Str("series", seriesTitle).
		Str("episode", episodeTitle).
		Msg("Episode grabbed")
}

// handleRename updates the show; renames have no episode-level effect.
func (r *Reconciler) handleRename(event models.WebhookEvent) {
	if event.Series == nil {
		logging.Warn().Msg("Rename event without series payload")
		return
	}

	r.cache.UpdateShow(event.Series.ToSeries())
	logging.Info().Str("series", event.Series.Title).Msg("Rename event for series")
}
