// Showboard - Sonarr to Notion Dashboard Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showboard

// Package cache provides the in-memory catalog cache: a thread-safe store
// of show/season/episode entities with staleness tracking.
//
// The cache is the single source of truth consulted before any upstream
// catalog call. It is volatile and rebuilt on restart. Only
// BulkUpdateShows advances the freshness timestamp; single-entity upserts
// and the other bulk operations leave it untouched, so point lookups can
// be served from cache indefinitely while webhooks keep individual
// entries current between full refreshes.
package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/tomtom215/showboard/internal/logging"
	"github.com/tomtom215/showboard/internal/models"
)

// DefaultStaleness is the interval after which a catalog-wide read must
// trigger a full refresh.
const DefaultStaleness = 12 * time.Hour

// SeasonKey identifies a season within the cache.
type SeasonKey struct {
	SeriesID     int
	SeasonNumber int
}

// EpisodeKey identifies an episode within the cache.
type EpisodeKey struct {
	SeriesID      int
	SeasonNumber  int
	EpisodeNumber int
}

// Stats is a point-in-time snapshot of cache contents and performance.
type Stats struct {
	Hits           int64
	Misses         int64
	Shows          int
	Seasons        int
	Episodes       int
	LastFullUpdate time.Time
}

// CatalogCache is a thread-safe in-memory store of catalog entities.
//
// All operations are local, synchronous and total: absent data yields an
// explicit absent result, never an error. Mutations replace whole records
// for an identity; entries are never partially merged.
type CatalogCache struct {
	mu             sync.RWMutex
	shows          map[int]models.Series
	seasons        map[SeasonKey]models.Season
	episodes       map[EpisodeKey]models.Episode
	lastFullUpdate time.Time
	staleness      time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a catalog cache with the given staleness interval.
// A zero or negative staleness falls back to DefaultStaleness.
func New(staleness time.Duration) *CatalogCache {
	if staleness <= 0 {
		staleness = DefaultStaleness
	}
	return &CatalogCache{
		shows:     make(map[int]models.Series),
		seasons:   make(map[SeasonKey]models.Season),
		episodes:  make(map[EpisodeKey]models.Episode),
		staleness: staleness,
	}
}

// GetShow returns the cached show for a series id.
func (c *CatalogCache) GetShow(seriesID int) (models.Series, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	show, ok := c.shows[seriesID]
	c.record(ok)
	return show, ok
}

// GetSeason returns the cached season for (series id, season number).
func (c *CatalogCache) GetSeason(seriesID, seasonNumber int) (models.Season, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	season, ok := c.seasons[SeasonKey{SeriesID: seriesID, SeasonNumber: seasonNumber}]
	c.record(ok)
	return season, ok
}

// GetEpisode returns the cached episode for (series id, season, episode).
func (c *CatalogCache) GetEpisode(seriesID, seasonNumber, episodeNumber int) (models.Episode, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	episode, ok := c.episodes[EpisodeKey{
		SeriesID:      seriesID,
		SeasonNumber:  seasonNumber,
		EpisodeNumber: episodeNumber,
	}]
	c.record(ok)
	return episode, ok
}

// AllShows returns every cached show. The slice is a copy; callers may
// mutate it freely.
func (c *CatalogCache) AllShows() []models.Series {
	c.mu.RLock()
	defer c.mu.RUnlock()

	shows := make([]models.Series, 0, len(c.shows))
	for _, show := range c.shows {
		shows = append(shows, show)
	}
	return shows
}

// UpdateShow upserts a single show. A show without an id is dropped with
// a warning rather than cached under a zero key.
func (c *CatalogCache) UpdateShow(show models.Series) {
	if show.ID == 0 {
		logging.Warn().Str("title", show.Title).Msg("Attempted to cache show without ID")
		return
	}

	c.mu.Lock()
	c.shows[show.ID] = show
	c.mu.Unlock()

	logging.Debug().Int("series_id", show.ID).Msg("Updated show cache")
}

// UpdateSeason upserts a single season.
func (c *CatalogCache) UpdateSeason(seriesID, seasonNumber int, season models.Season) {
	c.mu.Lock()
	c.seasons[SeasonKey{SeriesID: seriesID, SeasonNumber: seasonNumber}] = season
	c.mu.Unlock()

	logging.Debug().
		Int("series_id", seriesID).
		Int("season", seasonNumber).
		Msg("Updated season cache")
}

// UpdateEpisode upserts a single episode.
func (c *CatalogCache) UpdateEpisode(seriesID, seasonNumber, episodeNumber int, episode models.Episode) {
	c.mu.Lock()
	c.episodes[EpisodeKey{
		SeriesID:      seriesID,
		SeasonNumber:  seasonNumber,
		EpisodeNumber: episodeNumber,
	}] = episode
	c.mu.Unlock()

	logging.Debug().
		Int("series_id", seriesID).
		Int("season", seasonNumber).
		Int("episode", episodeNumber).
		Msg("Updated episode cache")
}

// BulkUpdateShows merges many shows in one call and resets the freshness
// timestamp to now. This is the only operation that advances freshness.
func (c *CatalogCache) BulkUpdateShows(shows map[int]models.Series) {
	c.mu.Lock()
	for id, show := range shows {
		c.shows[id] = show
	}
	c.lastFullUpdate = time.Now()
	c.mu.Unlock()

	logging.Info().Int("count", len(shows)).Msg("Updated shows in cache")
}

// BulkUpdateSeasons merges many seasons without affecting freshness.
func (c *CatalogCache) BulkUpdateSeasons(seasons map[SeasonKey]models.Season) {
	c.mu.Lock()
	for key, season := range seasons {
		c.seasons[key] = season
	}
	c.mu.Unlock()

	logging.Info().Int("count", len(seasons)).Msg("Updated seasons in cache")
}

// BulkUpdateEpisodes merges many episodes without affecting freshness.
func (c *CatalogCache) BulkUpdateEpisodes(episodes map[EpisodeKey]models.Episode) {
	c.mu.Lock()
	for key, episode := range episodes {
		c.episodes[key] = episode
	}
	c.mu.Unlock()

	logging.Info().Int("count", len(episodes)).Msg("Updated episodes in cache")
}

// NeedsUpdate reports whether a full refresh is required: true when the
// cache has never been bulk-refreshed or the staleness interval has
// elapsed since the last refresh.
func (c *CatalogCache) NeedsUpdate() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.lastFullUpdate.IsZero() {
		return true
	}
	return time.Since(c.lastFullUpdate) > c.staleness
}

// Clear drops all entries and resets freshness to never-refreshed.
func (c *CatalogCache) Clear() {
	c.mu.Lock()
	c.shows = make(map[int]models.Series)
	c.seasons = make(map[SeasonKey]models.Season)
	c.episodes = make(map[EpisodeKey]models.Episode)
	c.lastFullUpdate = time.Time{}
	c.mu.Unlock()

	logging.Info().Msg("Cleared all cache data")
}

// Stats returns a snapshot of cache contents and hit/miss counters.
func (c *CatalogCache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Stats{
		Hits:           c.hits.Load(),
		Misses:         c.misses.Load(),
		Shows:          len(c.shows),
		Seasons:        len(c.seasons),
		Episodes:       len(c.episodes),
		LastFullUpdate: c.lastFullUpdate,
	}
}

// record updates hit/miss counters. Atomic so concurrent readers holding
// only the read lock can update them safely.
func (c *CatalogCache) record(hit bool) {
	if hit {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
}
