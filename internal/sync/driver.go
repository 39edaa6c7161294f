// Showboard - Sonarr to Notion Dashboard Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showboard

// Package sync drives the periodic synchronization passes that keep the
// Notion dashboard tables aligned with the Sonarr catalog and YouTube
// channel statistics.
package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/showboard/internal/config"
	"github.com/tomtom215/showboard/internal/logging"
	"github.com/tomtom215/showboard/internal/metrics"
	"github.com/tomtom215/showboard/internal/models"
	"github.com/tomtom215/showboard/internal/notion"
	"github.com/tomtom215/showboard/internal/youtube"
)

// Metric label values for the two sync jobs.
const (
	jobCalendar     = "calendar"
	jobChannelStats = "channel_stats"
)

// Calendar table column names.
const (
	colName      = "Name"
	colShowTitle = "Show Title"
	colDate      = "Date"
	colEpisodeID = "Episode ID"
)

// catalogReader is the catalog surface the driver needs.
type catalogReader interface {
	GetSeriesByID(ctx context.Context, seriesID int) (models.Series, bool, error)
	GetEpisodesCalendar(ctx context.Context, pastDays, futureDays int) ([]models.Episode, error)
}

// tableResolver maps database titles to ids.
type tableResolver interface {
	DatabaseID(title string) (string, error)
}

// rowSyncer is the table write surface the driver needs.
type rowSyncer interface {
	CreateOrUpdateRow(ctx context.Context, databaseID string, properties notion.Properties, matchFilter notion.Filter) (string, error)
	DeleteRowsWhere(ctx context.Context, databaseID string, filter notion.Filter) (int, error)
	ClearTable(ctx context.Context, databaseID string) (int, error)
}

// Driver executes the calendar and channel-stats sync passes. Each pass
// is self-contained: it resolves its target table, prunes or clears
// stale rows, and upserts current data.
type Driver struct {
	catalog  catalogReader
	engine   rowSyncer
	resolver tableResolver
	stats    youtube.StatsAPI // nil when the stats integration is disabled
	cfg      *config.Config
}

// NewDriver creates a sync driver. stats may be nil when the YouTube
// integration is disabled; SyncChannelStats then fails fast.
func NewDriver(catalog catalogReader, engine rowSyncer, resolver tableResolver, stats youtube.StatsAPI, cfg *config.Config) *Driver {
	return &Driver{
		catalog:  catalog,
		engine:   engine,
		resolver: resolver,
		stats:    stats,
		cfg:      cfg,
	}
}

// SyncCalendar brings the upcoming-episodes table in line with the
// catalog calendar window [now - PastDays, now + FutureDays].
//
// Rows dated before the window start are archived first, then every
// calendar entry in the window is upserted, matched by episode id and
// air date. Entries whose series cannot be resolved against the catalog
// are logged and skipped; they never abort the pass.
func (d *Driver) SyncCalendar(ctx context.Context) error {
	databaseID, err := d.resolver.DatabaseID(d.cfg.Notion.CalendarDatabase)
	if err != nil {
		return fmt.Errorf("calendar sync: %w", err)
	}

	windowStart := time.Now().AddDate(0, 0, -d.cfg.Sync.PastDays).Format("2006-01-02")
	deleted, err := d.engine.DeleteRowsWhere(ctx, databaseID, notion.DateBefore(colDate, windowStart))
	if err != nil {
		return fmt.Errorf("calendar sync: failed to prune rows before %s: %w", windowStart, err)
	}
	metrics.RowsDeleted.WithLabelValues(jobCalendar).Add(float64(deleted))

	entries, err := d.catalog.GetEpisodesCalendar(ctx, d.cfg.Sync.PastDays, d.cfg.Sync.FutureDays)
	if err != nil {
		return fmt.Errorf("calendar sync: failed to fetch calendar: %w", err)
	}

	upserted := 0
	for _, entry := range entries {
		show, found, err := d.catalog.GetSeriesByID(ctx, entry.SeriesID)
		if err != nil {
			return fmt.Errorf("calendar sync: failed to resolve series %d: %w", entry.SeriesID, err)
		}
		if !found {
			logging.Warn().
				Int("series_id", entry.SeriesID).
				Int("episode_id", entry.ID).
				Msg("Calendar entry references unknown series, skipping")
			metrics.SyncEntriesSkipped.Inc()
			continue
		}

		airDate := entryAirDate(entry)
		if airDate == "" {
			logging.Warn().Int("episode_id", entry.ID).Msg("Calendar entry has no air date, skipping")
			metrics.SyncEntriesSkipped.Inc()
			continue
		}

		properties := notion.Properties{
			colName:      notion.MustFormat(notion.PropertyTitle, show.Title),
			colShowTitle: notion.MustFormat(notion.PropertyRichText, episodeLabel(show, entry)),
			colDate:      notion.MustFormat(notion.PropertyDate, airDate),
			colEpisodeID: notion.MustFormat(notion.PropertyNumber, entry.ID),
		}
		matchFilter := notion.And(
			notion.NumberEquals(colEpisodeID, float64(entry.ID)),
			notion.DateEquals(colDate, airDate),
		)

		if _, err := d.engine.CreateOrUpdateRow(ctx, databaseID, properties, matchFilter); err != nil {
			return fmt.Errorf("calendar sync: failed to upsert episode %d: %w", entry.ID, err)
		}
		metrics.RowsUpserted.WithLabelValues(jobCalendar).Inc()
		upserted++
	}

	logging.Info().
		Int("entries", len(entries)).
		Int("upserted", upserted).
		Int("pruned", deleted).
		Msg("Calendar sync complete")
	return nil
}

// SyncChannelStats rewrites the channel-stats table with one row of
// current counters. The table holds a single snapshot, so it is cleared
// and rewritten rather than diffed.
func (d *Driver) SyncChannelStats(ctx context.Context) error {
	if d.stats == nil {
		return fmt.Errorf("channel stats sync: youtube integration is disabled")
	}

	databaseID, err := d.resolver.DatabaseID(d.cfg.Notion.StatsDatabase)
	if err != nil {
		return fmt.Errorf("channel stats sync: %w", err)
	}

	channelID, err := d.stats.ResolveChannelID(ctx, d.cfg.YouTube.Channel)
	if err != nil {
		return fmt.Errorf("channel stats sync: %w", err)
	}

	stats, found, err := d.stats.GetChannelStats(ctx, channelID)
	if err != nil {
		return fmt.Errorf("channel stats sync: %w", err)
	}
	if !found {
		return fmt.Errorf("channel stats sync: channel %s not found", channelID)
	}

	cleared, err := d.engine.ClearTable(ctx, databaseID)
	if err != nil {
		return fmt.Errorf("channel stats sync: failed to clear table: %w", err)
	}
	metrics.RowsDeleted.WithLabelValues(jobChannelStats).Add(float64(cleared))

	properties := notion.Properties{
		"Name":        notion.MustFormat(notion.PropertyTitle, stats.Title),
		"Subscribers": notion.MustFormat(notion.PropertyNumber, stats.Subscribers),
		"Views":       notion.MustFormat(notion.PropertyNumber, stats.Views),
		"Videos":      notion.MustFormat(notion.PropertyNumber, stats.Videos),
		"Updated":     notion.MustFormat(notion.PropertyDate, stats.FetchedAt),
	}
	if _, err := d.engine.CreateOrUpdateRow(ctx, databaseID, properties, nil); err != nil {
		return fmt.Errorf("channel stats sync: failed to write row: %w", err)
	}
	metrics.RowsUpserted.WithLabelValues(jobChannelStats).Inc()

	logging.Info().
		Str("channel_id", channelID).
		Int64("subscribers", stats.Subscribers).
		Msg("Channel stats sync complete")
	return nil
}

// episodeLabel renders the descriptive row text, e.g.
// "Show A - S2E5: The Pilot".
func episodeLabel(show models.Series, ep models.Episode) string {
	return fmt.Sprintf("%s - S%dE%d: %s", show.Title, ep.SeasonNumber, ep.EpisodeNumber, ep.Title)
}

// entryAirDate picks the calendar entry's air date, preferring the plain
// date and falling back to the UTC timestamp's date.
func entryAirDate(ep models.Episode) string {
	if ep.AirDate != "" {
		return ep.AirDate
	}
	if ep.AirDateUTC != nil {
		return ep.AirDateUTC.Format("2006-01-02")
	}
	return ""
}
