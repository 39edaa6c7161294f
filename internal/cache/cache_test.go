// Showboard - Sonarr to Notion Dashboard Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showboard

package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/showboard/internal/models"
)

func TestGetShow_AbsentAndPresent(t *testing.T) {
	c := New(DefaultStaleness)

	if _, ok := c.GetShow(1); ok {
		t.Error("empty cache should report show absent")
	}

	c.UpdateShow(models.Series{ID: 1, Title: "Show A"})

	show, ok := c.GetShow(1)
	if !ok {
		t.Fatal("show should be present after UpdateShow")
	}
	if show.Title != "Show A" {
		t.Errorf("Title = %q, want Show A", show.Title)
	}
}

func TestUpdateShow_ZeroIDDropped(t *testing.T) {
	c := New(DefaultStaleness)

	c.UpdateShow(models.Series{Title: "No ID"})

	if got := c.Stats().Shows; got != 0 {
		t.Errorf("show without id should not be cached, got %d entries", got)
	}
}

func TestUpdateShow_ReplacesWholeRecord(t *testing.T) {
	c := New(DefaultStaleness)
	c.UpdateShow(models.Series{ID: 5, Title: "Old", Network: "ABC"})

	c.UpdateShow(models.Series{ID: 5, Title: "New"})

	show, _ := c.GetShow(5)
	if show.Network != "" {
		t.Error("update should replace the whole record, not merge fields")
	}
	if show.Title != "New" {
		t.Errorf("Title = %q, want New", show.Title)
	}
}

func TestSeasonAndEpisodeLookups(t *testing.T) {
	c := New(DefaultStaleness)

	ep := models.Episode{ID: 100, SeriesID: 3, SeasonNumber: 2, EpisodeNumber: 7, Title: "Ep"}
	c.UpdateEpisode(3, 2, 7, ep)
	c.UpdateSeason(3, 2, models.Season{SeriesID: 3, SeasonNumber: 2, EpisodeCount: 1, Episodes: []models.Episode{ep}})

	if _, ok := c.GetEpisode(3, 2, 8); ok {
		t.Error("episode (3,2,8) should be absent")
	}
	got, ok := c.GetEpisode(3, 2, 7)
	if !ok || got.ID != 100 {
		t.Errorf("GetEpisode(3,2,7) = %+v, %v", got, ok)
	}

	season, ok := c.GetSeason(3, 2)
	if !ok || season.EpisodeCount != 1 {
		t.Errorf("GetSeason(3,2) = %+v, %v", season, ok)
	}
	if _, ok := c.GetSeason(3, 3); ok {
		t.Error("season (3,3) should be absent")
	}
}

func TestNeedsUpdate_FreshnessLifecycle(t *testing.T) {
	c := New(DefaultStaleness)

	if !c.NeedsUpdate() {
		t.Error("never-refreshed cache should need an update")
	}

	// Single upserts must not advance freshness.
	c.UpdateShow(models.Series{ID: 1, Title: "A"})
	if !c.NeedsUpdate() {
		t.Error("single upsert should not advance freshness")
	}

	c.BulkUpdateShows(map[int]models.Series{1: {ID: 1, Title: "A"}})
	if c.NeedsUpdate() {
		t.Error("cache should be fresh immediately after BulkUpdateShows")
	}

	c.Clear()
	if !c.NeedsUpdate() {
		t.Error("cache should need an update immediately after Clear")
	}
}

func TestNeedsUpdate_StalenessElapsed(t *testing.T) {
	c := New(10 * time.Millisecond)
	c.BulkUpdateShows(map[int]models.Series{1: {ID: 1}})

	time.Sleep(20 * time.Millisecond)

	if !c.NeedsUpdate() {
		t.Error("cache should be stale after the staleness interval elapses")
	}
}

func TestBulkUpdates_MergeSemantics(t *testing.T) {
	c := New(DefaultStaleness)
	c.UpdateShow(models.Series{ID: 1, Title: "Keep"})

	c.BulkUpdateShows(map[int]models.Series{2: {ID: 2, Title: "New"}})

	// Bulk update merges: pre-existing entries survive.
	if _, ok := c.GetShow(1); !ok {
		t.Error("bulk update should merge, not replace the show map")
	}
	if _, ok := c.GetShow(2); !ok {
		t.Error("bulk-updated show should be present")
	}
}

func TestBulkSeasonEpisodeUpdates_NoFreshnessEffect(t *testing.T) {
	c := New(DefaultStaleness)

	c.BulkUpdateEpisodes(map[EpisodeKey]models.Episode{
		{SeriesID: 1, SeasonNumber: 1, EpisodeNumber: 1}: {ID: 10, SeriesID: 1, SeasonNumber: 1, EpisodeNumber: 1},
	})
	c.BulkUpdateSeasons(map[SeasonKey]models.Season{
		{SeriesID: 1, SeasonNumber: 1}: {SeriesID: 1, SeasonNumber: 1, EpisodeCount: 1},
	})

	if !c.NeedsUpdate() {
		t.Error("season/episode bulk updates must not advance freshness")
	}
}

func TestAllShows_ReturnsCopy(t *testing.T) {
	c := New(DefaultStaleness)
	c.UpdateShow(models.Series{ID: 1, Title: "A"})
	c.UpdateShow(models.Series{ID: 2, Title: "B"})

	shows := c.AllShows()
	if len(shows) != 2 {
		t.Fatalf("AllShows() returned %d shows, want 2", len(shows))
	}

	shows[0].Title = "mutated"
	for _, s := range c.AllShows() {
		if s.Title == "mutated" {
			t.Error("mutating the returned slice should not affect the cache")
		}
	}
}

func TestStats_HitMissCounters(t *testing.T) {
	c := New(DefaultStaleness)
	c.UpdateShow(models.Series{ID: 1})

	c.GetShow(1)
	c.GetShow(2)
	c.GetShow(3)

	stats := c.Stats()
	if stats.Hits != 1 {
		t.Errorf("Hits = %d, want 1", stats.Hits)
	}
	if stats.Misses != 2 {
		t.Errorf("Misses = %d, want 2", stats.Misses)
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New(DefaultStaleness)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.UpdateShow(models.Series{ID: n*100 + j + 1})
				c.GetShow(n*100 + j + 1)
				c.NeedsUpdate()
			}
		}(i)
	}
	wg.Wait()

	if got := c.Stats().Shows; got != 800 {
		t.Errorf("expected 800 cached shows, got %d", got)
	}
}
