// Showboard - Sonarr to Notion Dashboard Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showboard

package sonarr

import (
	"testing"

	"github.com/tomtom215/showboard/internal/cache"
	"github.com/tomtom215/showboard/internal/models"
)

func TestHandleEvent_DownloadUpdatesShowAndEpisode(t *testing.T) {
	c := cache.New(cache.DefaultStaleness)
	r := NewReconciler(c)

	r.HandleEvent(models.WebhookEvent{
		EventType: models.WebhookEventDownload,
		Series:    &models.WebhookSeries{ID: 5, Title: "Show X"},
		Episodes: []models.WebhookEpisode{
			{ID: 50, SeasonNumber: 1, EpisodeNumber: 2, Title: "The One"},
		},
	})

	show, ok := c.GetShow(5)
	if !ok || show.Title != "Show X" {
		t.Errorf("GetShow(5) = %+v, %v", show, ok)
	}

	// The episode is retrievable even though no full refresh occurred.
	ep, ok := c.GetEpisode(5, 1, 2)
	if !ok {
		t.Fatal("episode should be cached after Download event")
	}
	if ep.Title != "The One" || ep.ID != 50 || ep.SeriesID != 5 {
		t.Errorf("cached episode = %+v", ep)
	}
}

func TestHandleEvent_DownloadWithoutEpisodes(t *testing.T) {
	c := cache.New(cache.DefaultStaleness)
	r := NewReconciler(c)

	r.HandleEvent(models.WebhookEvent{
		EventType: models.WebhookEventDownload,
		Series:    &models.WebhookSeries{ID: 5, Title: "Show X"},
	})

	if _, ok := c.GetShow(5); !ok {
		t.Error("show should still be updated without episode payload")
	}
}

func TestHandleEvent_GrabDoesNotMutate(t *testing.T) {
	c := cache.New(cache.DefaultStaleness)
	r := NewReconciler(c)

	r.HandleEvent(models.WebhookEvent{
		EventType: models.WebhookEventGrab,
		Series:    &models.WebhookSeries{ID: 7, Title: "Pending"},
		Episodes:  []models.WebhookEpisode{{ID: 70, SeasonNumber: 1, EpisodeNumber: 1}},
	})

	if _, ok := c.GetShow(7); ok {
		t.Error("Grab must not mutate the cache")
	}
	if _, ok := c.GetEpisode(7, 1, 1); ok {
		t.Error("Grab must not cache episodes")
	}
}

func TestHandleEvent_RenameUpdatesShowOnly(t *testing.T) {
	c := cache.New(cache.DefaultStaleness)
	r := NewReconciler(c)

	r.HandleEvent(models.WebhookEvent{
		EventType: models.WebhookEventRename,
		Series:    &models.WebhookSeries{ID: 3, Title: "Renamed"},
		Episodes:  []models.WebhookEpisode{{ID: 30, SeasonNumber: 2, EpisodeNumber: 2}},
	})

	show, ok := c.GetShow(3)
	if !ok || show.Title != "Renamed" {
		t.Errorf("GetShow(3) = %+v, %v", show, ok)
	}
	if _, ok := c.GetEpisode(3, 2, 2); ok {
		t.Error("Rename has no episode-level effect")
	}
}

func TestHandleEvent_UnknownAndMissingTypesDropped(t *testing.T) {
	c := cache.New(cache.DefaultStaleness)
	r := NewReconciler(c)

	// Neither call may panic or mutate the cache.
	r.HandleEvent(models.WebhookEvent{
		EventType: "HealthIssue",
		Series:    &models.WebhookSeries{ID: 9, Title: "Ignored"},
	})
	r.HandleEvent(models.WebhookEvent{
		Series: &models.WebhookSeries{ID: 9, Title: "Ignored"},
	})

	if _, ok := c.GetShow(9); ok {
		t.Error("unhandled events must not mutate the cache")
	}
}
