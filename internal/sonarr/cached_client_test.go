// Showboard - Sonarr to Notion Dashboard Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showboard

package sonarr

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/showboard/internal/cache"
	"github.com/tomtom215/showboard/internal/models"
)

// fakeAPI implements CatalogAPI with canned data and call counters.
type fakeAPI struct {
	series   []models.Series
	episodes map[int][]models.Episode
	calendar []models.Episode
	err      error

	seriesCalls   int
	byIDCalls     int
	episodeCalls  int
	calendarCalls int
}

func (f *fakeAPI) GetSeries(context.Context) ([]models.Series, error) {
	f.seriesCalls++
	return f.series, f.err
}

func (f *fakeAPI) GetSeriesByID(_ context.Context, seriesID int) (models.Series, bool, error) {
	f.byIDCalls++
	if f.err != nil {
		return models.Series{}, false, f.err
	}
	for _, s := range f.series {
		if s.ID == seriesID {
			return s, true, nil
		}
	}
	return models.Series{}, false, nil
}

func (f *fakeAPI) GetEpisodesBySeriesID(_ context.Context, seriesID int) ([]models.Episode, error) {
	f.episodeCalls++
	return f.episodes[seriesID], f.err
}

func (f *fakeAPI) GetCalendar(context.Context, time.Time, time.Time) ([]models.Episode, error) {
	f.calendarCalls++
	return f.calendar, f.err
}

func (f *fakeAPI) Ping(context.Context) error {
	return f.err
}

func TestGetSeriesByID_ServedFromCacheWithoutUpstreamCall(t *testing.T) {
	api := &fakeAPI{series: []models.Series{{ID: 10, Title: "Show A"}}}
	cc := NewCachedClient(api, cache.New(cache.DefaultStaleness))

	// First lookup: cache is stale (never refreshed), full refresh happens.
	show, found, err := cc.GetSeriesByID(t.Context(), 10)
	if err != nil || !found || show.Title != "Show A" {
		t.Fatalf("first lookup = %+v, %v, %v", show, found, err)
	}
	if api.seriesCalls != 1 {
		t.Fatalf("expected one full refresh, got %d", api.seriesCalls)
	}

	// Subsequent lookups within the staleness window answer from cache.
	for i := 0; i < 5; i++ {
		got, found, err := cc.GetSeriesByID(t.Context(), 10)
		if err != nil || !found {
			t.Fatalf("cached lookup failed: %v, %v", found, err)
		}
		if got.ID != show.ID || got.Title != show.Title {
			t.Errorf("cached lookup returned different record: %+v", got)
		}
	}
	if api.seriesCalls != 1 || api.byIDCalls != 0 {
		t.Errorf("cached lookups made upstream calls: series=%d byID=%d", api.seriesCalls, api.byIDCalls)
	}
}

func TestGetSeriesByID_FallsBackToSingleFetch(t *testing.T) {
	// Series 99 is not in the full listing but answers a direct fetch,
	// modeling a concurrently created series.
	api := &fakeAPI{series: []models.Series{{ID: 1, Title: "A"}}}
	c := cache.New(cache.DefaultStaleness)
	cc := NewCachedClient(api, c)

	// Freshen the cache so the lookup skips the full refresh.
	if _, err := cc.GetSeries(t.Context()); err != nil {
		t.Fatal(err)
	}

	api.series = append(api.series, models.Series{ID: 99, Title: "New Show"})

	show, found, err := cc.GetSeriesByID(t.Context(), 99)
	if err != nil || !found {
		t.Fatalf("single fetch = %v, %v", found, err)
	}
	if show.Title != "New Show" {
		t.Errorf("Title = %q, want New Show", show.Title)
	}
	if api.byIDCalls != 1 {
		t.Errorf("expected one single-entity fetch, got %d", api.byIDCalls)
	}

	// The single fetch must have cached the show.
	if _, ok := c.GetShow(99); !ok {
		t.Error("single-entity fetch should populate the cache")
	}
}

func TestGetSeriesByID_AbsentUpstream(t *testing.T) {
	api := &fakeAPI{}
	cc := NewCachedClient(api, cache.New(cache.DefaultStaleness))

	_, found, err := cc.GetSeriesByID(t.Context(), 404)
	if err != nil {
		t.Fatalf("absent series should not error: %v", err)
	}
	if found {
		t.Error("absent series should report not found")
	}
}

func TestGetSeries_RefreshOnlyWhenStale(t *testing.T) {
	api := &fakeAPI{series: []models.Series{{ID: 1}, {ID: 2}}}
	cc := NewCachedClient(api, cache.New(cache.DefaultStaleness))

	for i := 0; i < 3; i++ {
		series, err := cc.GetSeries(t.Context())
		if err != nil {
			t.Fatal(err)
		}
		if len(series) != 2 {
			t.Errorf("got %d series, want 2", len(series))
		}
	}

	if api.seriesCalls != 1 {
		t.Errorf("expected exactly one refresh while fresh, got %d", api.seriesCalls)
	}
}

func TestGetSeasonBySeriesID_PartitionsAndCaches(t *testing.T) {
	api := &fakeAPI{episodes: map[int][]models.Episode{
		7: {
			{ID: 1, SeriesID: 7, SeasonNumber: 1, EpisodeNumber: 1},
			{ID: 2, SeriesID: 7, SeasonNumber: 1, EpisodeNumber: 2},
			{ID: 3, SeriesID: 7, SeasonNumber: 2, EpisodeNumber: 1},
		},
	}}
	c := cache.New(cache.DefaultStaleness)
	cc := NewCachedClient(api, c)

	eps, err := cc.GetSeasonBySeriesID(t.Context(), 7, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(eps) != 2 {
		t.Errorf("season 1 has %d episodes, want 2", len(eps))
	}

	// The other season and the episodes are cached by the same fetch.
	if _, ok := c.GetSeason(7, 2); !ok {
		t.Error("season 2 should be cached from the same episode fetch")
	}
	if _, ok := c.GetEpisode(7, 2, 1); !ok {
		t.Error("episodes should be cached individually")
	}

	// Second season request answers from cache.
	if _, err := cc.GetSeasonBySeriesID(t.Context(), 7, 2); err != nil {
		t.Fatal(err)
	}
	if api.episodeCalls != 1 {
		t.Errorf("expected one episode fetch, got %d", api.episodeCalls)
	}
}

func TestGetSeasonBySeriesID_MissingSeasonIsEmpty(t *testing.T) {
	api := &fakeAPI{episodes: map[int][]models.Episode{
		7: {{ID: 1, SeriesID: 7, SeasonNumber: 1, EpisodeNumber: 1}},
	}}
	cc := NewCachedClient(api, cache.New(cache.DefaultStaleness))

	eps, err := cc.GetSeasonBySeriesID(t.Context(), 7, 9)
	if err != nil {
		t.Fatal(err)
	}
	if len(eps) != 0 {
		t.Errorf("missing season should yield an empty episode list, got %d", len(eps))
	}
}

func TestGetEpisodesCalendar_NoCacheWrite(t *testing.T) {
	api := &fakeAPI{calendar: []models.Episode{
		{ID: 100, SeriesID: 10, SeasonNumber: 2, EpisodeNumber: 5, AirDate: "2024-12-03"},
	}}
	c := cache.New(cache.DefaultStaleness)
	cc := NewCachedClient(api, c)

	entries, err := cc.GetEpisodesCalendar(t.Context(), 7, 14)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}

	if _, ok := c.GetEpisode(10, 2, 5); ok {
		t.Error("calendar fetch must not update the cache")
	}
	if !c.NeedsUpdate() {
		t.Error("calendar fetch must not advance freshness")
	}
}

func TestWarmCache_PopulatesAllLayers(t *testing.T) {
	api := &fakeAPI{
		series: []models.Series{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}},
		episodes: map[int][]models.Episode{
			1: {{ID: 11, SeriesID: 1, SeasonNumber: 1, EpisodeNumber: 1}},
			2: {{ID: 21, SeriesID: 2, SeasonNumber: 3, EpisodeNumber: 4}},
		},
	}
	c := cache.New(cache.DefaultStaleness)
	cc := NewCachedClient(api, c)

	if err := cc.WarmCache(t.Context()); err != nil {
		t.Fatal(err)
	}

	if c.NeedsUpdate() {
		t.Error("cache should be fresh after warming")
	}
	if _, ok := c.GetShow(2); !ok {
		t.Error("shows should be cached")
	}
	if _, ok := c.GetSeason(2, 3); !ok {
		t.Error("seasons should be cached")
	}
	if _, ok := c.GetEpisode(1, 1, 1); !ok {
		t.Error("episodes should be cached")
	}
}

func TestWarmCache_PropagatesErrors(t *testing.T) {
	api := &fakeAPI{err: errors.New("upstream down")}
	cc := NewCachedClient(api, cache.New(cache.DefaultStaleness))

	if err := cc.WarmCache(t.Context()); err == nil {
		t.Error("warm cache failures must propagate")
	}
}
