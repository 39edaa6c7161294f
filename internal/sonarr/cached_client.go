// Showboard - Sonarr to Notion Dashboard Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showboard

package sonarr

import (
	"context"
	"time"

	"github.com/tomtom215/showboard/internal/cache"
	"github.com/tomtom215/showboard/internal/logging"
	"github.com/tomtom215/showboard/internal/metrics"
	"github.com/tomtom215/showboard/internal/models"
)

// CachedClient layers the catalog cache over a CatalogAPI. It is the
// single entry point for catalog reads: every lookup consults the cache
// first and only falls through to the upstream API on a miss or when the
// cache has gone stale.
type CachedClient struct {
	api   CatalogAPI
	cache *cache.CatalogCache
}

// NewCachedClient creates a cache-backed catalog client.
func NewCachedClient(api CatalogAPI, c *cache.CatalogCache) *CachedClient {
	return &CachedClient{api: api, cache: c}
}

// Cache exposes the underlying catalog cache for the webhook reconciler
// and health reporting.
func (cc *CachedClient) Cache() *cache.CatalogCache {
	return cc.cache
}

// GetSeriesByID returns the show for a series id.
//
// Resolution order: cached show; else, if the cache is stale, one
// full-catalog refresh and a re-check; else a single-entity fetch that is
// cached on success. This amortizes the cost of a full refresh across
// many individual lookups while still answering correctly for an id the
// full refresh might have missed.
func (cc *CachedClient) GetSeriesByID(ctx context.Context, seriesID int) (models.Series, bool, error) {
	if show, ok := cc.cache.GetShow(seriesID); ok {
		return show, true, nil
	}

	if cc.cache.NeedsUpdate() {
		if err := cc.refreshShows(ctx); err != nil {
			return models.Series{}, false, err
		}
		if show, ok := cc.cache.GetShow(seriesID); ok {
			return show, true, nil
		}
	}

	show, found, err := cc.api.GetSeriesByID(ctx, seriesID)
	if err != nil || !found {
		return models.Series{}, false, err
	}

	cc.cache.UpdateShow(show)
	return show, true, nil
}

// GetSeries returns the full show listing, refreshing the cache first
// when it is stale.
func (cc *CachedClient) GetSeries(ctx context.Context) ([]models.Series, error) {
	if cc.cache.NeedsUpdate() {
		if err := cc.refreshShows(ctx); err != nil {
			return nil, err
		}
	}
	return cc.cache.AllShows(), nil
}

// GetSeasonBySeriesID returns the episodes of one season. On a cache miss
// it fetches the series' full episode list, partitions it by season,
// caches every season and episode, and returns the requested season's
// episodes.
func (cc *CachedClient) GetSeasonBySeriesID(ctx context.Context, seriesID, seasonNumber int) ([]models.Episode, error) {
	if season, ok := cc.cache.GetSeason(seriesID, seasonNumber); ok {
		return season.Episodes, nil
	}

	episodes, err := cc.api.GetEpisodesBySeriesID(ctx, seriesID)
	if err != nil {
		return nil, err
	}

	cc.cacheSeriesEpisodes(seriesID, episodes)

	if season, ok := cc.cache.GetSeason(seriesID, seasonNumber); ok {
		return season.Episodes, nil
	}
	// Series exists but has no such season.
	return []models.Episode{}, nil
}

// GetEpisodesBySeriesID returns every episode of a series, caching the
// season partition as a side effect.
func (cc *CachedClient) GetEpisodesBySeriesID(ctx context.Context, seriesID int) ([]models.Episode, error) {
	episodes, err := cc.api.GetEpisodesBySeriesID(ctx, seriesID)
	if err != nil {
		return nil, err
	}
	cc.cacheSeriesEpisodes(seriesID, episodes)
	return episodes, nil
}

// GetEpisodesCalendar fetches upstream calendar entries in the closed
// window [now - pastDays, now + futureDays]. It does not update the
// cache; callers resolve entries against cached shows themselves.
func (cc *CachedClient) GetEpisodesCalendar(ctx context.Context, pastDays, futureDays int) ([]models.Episode, error) {
	now := time.Now()
	start := now.AddDate(0, 0, -pastDays)
	end := now.AddDate(0, 0, futureDays)

	return cc.api.GetCalendar(ctx, start, end)
}

// WarmCache performs one full show fetch, then fetches every show's full
// episode list and bulk-populates the season and episode caches. Used
// once at startup; failures propagate to the caller and are fatal to the
// startup sequence.
func (cc *CachedClient) WarmCache(ctx context.Context) error {
	start := time.Now()

	if err := cc.refreshShows(ctx); err != nil {
		return err
	}

	shows := cc.cache.AllShows()
	seasons := make(map[cache.SeasonKey]models.Season)
	episodes := make(map[cache.EpisodeKey]models.Episode)

	for _, show := range shows {
		eps, err := cc.api.GetEpisodesBySeriesID(ctx, show.ID)
		if err != nil {
			return err
		}

		for key, season := range partitionBySeason(show.ID, eps) {
			seasons[key] = season
		}
		for _, ep := range eps {
			episodes[cache.EpisodeKey{
				SeriesID:      show.ID,
				SeasonNumber:  ep.SeasonNumber,
				EpisodeNumber: ep.EpisodeNumber,
			}] = ep
		}
	}

	cc.cache.BulkUpdateSeasons(seasons)
	cc.cache.BulkUpdateEpisodes(episodes)
	cc.publishCacheGauges()

	logging.Info().
		Int("shows", len(shows)).
		Int("episodes", len(episodes)).
		Dur("elapsed", time.Since(start)).
		Msg("Catalog cache warmed")
	return nil
}

// refreshShows performs a full-catalog fetch and bulk-updates the show
// cache, advancing the freshness timestamp.
func (cc *CachedClient) refreshShows(ctx context.Context) error {
	shows, err := cc.api.GetSeries(ctx)
	if err != nil {
		return err
	}

	mapping := make(map[int]models.Series, len(shows))
	for _, show := range shows {
		mapping[show.ID] = show
	}
	cc.cache.BulkUpdateShows(mapping)
	cc.publishCacheGauges()
	return nil
}

// cacheSeriesEpisodes partitions a series' episodes by season and caches
// the resulting seasons and episodes. No freshness effect.
func (cc *CachedClient) cacheSeriesEpisodes(seriesID int, episodes []models.Episode) {
	seasons := partitionBySeason(seriesID, episodes)

	epMapping := make(map[cache.EpisodeKey]models.Episode, len(episodes))
	for _, ep := range episodes {
		epMapping[cache.EpisodeKey{
			SeriesID:      seriesID,
			SeasonNumber:  ep.SeasonNumber,
			EpisodeNumber: ep.EpisodeNumber,
		}] = ep
	}

	cc.cache.BulkUpdateSeasons(seasons)
	cc.cache.BulkUpdateEpisodes(epMapping)
	cc.publishCacheGauges()
}

// partitionBySeason groups a series' episodes into Season records keyed
// for the cache.
func partitionBySeason(seriesID int, episodes []models.Episode) map[cache.SeasonKey]models.Season {
	seasons := make(map[cache.SeasonKey]models.Season)
	for _, ep := range episodes {
		key := cache.SeasonKey{SeriesID: seriesID, SeasonNumber: ep.SeasonNumber}
		season := seasons[key]
		season.SeriesID = seriesID
		season.SeasonNumber = ep.SeasonNumber
		season.Episodes = append(season.Episodes, ep)
		season.EpisodeCount = len(season.Episodes)
		seasons[key] = season
	}
	return seasons
}

// publishCacheGauges exports current cache sizes to Prometheus.
func (cc *CachedClient) publishCacheGauges() {
	stats := cc.cache.Stats()
	metrics.CachedShows.Set(float64(stats.Shows))
	metrics.CachedEpisodes.Set(float64(stats.Episodes))
	if !stats.LastFullUpdate.IsZero() {
		metrics.CacheLastFullRefresh.Set(float64(stats.LastFullUpdate.Unix()))
	}
}
