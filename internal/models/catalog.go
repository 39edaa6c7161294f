// Showboard - Sonarr to Notion Dashboard Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showboard

package models

import (
	"time"
)

// Image represents a series artwork reference from Sonarr.
type Image struct {
	CoverType string `json:"coverType"`
	URL       string `json:"url,omitempty"`
	RemoteURL string `json:"remoteUrl,omitempty"`
}

// Series represents a show in the Sonarr catalog.
// Each cache update replaces the whole record for an id; records are
// never partially merged.
type Series struct {
	ID        int     `json:"id"`
	Title     string  `json:"title"`
	SortTitle string  `json:"sortTitle,omitempty"`
	Status    string  `json:"status,omitempty"`
	Overview  string  `json:"overview,omitempty"`
	Network   string  `json:"network,omitempty"`
	Year      int     `json:"year,omitempty"`
	Path      string  `json:"path,omitempty"`
	TvdbID    int     `json:"tvdbId,omitempty"`
	ImdbID    string  `json:"imdbId,omitempty"`
	TitleSlug string  `json:"titleSlug,omitempty"`
	Monitored bool    `json:"monitored"`
	Images    []Image `json:"images,omitempty"`
}

// Episode represents a single episode in the Sonarr catalog.
// Calendar queries return the same shape, so calendar entries reuse
// this type.
type Episode struct {
	ID            int        `json:"id"`
	SeriesID      int        `json:"seriesId"`
	SeasonNumber  int        `json:"seasonNumber"`
	EpisodeNumber int        `json:"episodeNumber"`
	Title         string     `json:"title"`
	AirDate       string     `json:"airDate,omitempty"` // YYYY-MM-DD
	AirDateUTC    *time.Time `json:"airDateUtc,omitempty"`
	Overview      string     `json:"overview,omitempty"`
	HasFile       bool       `json:"hasFile"`
	Monitored     bool       `json:"monitored"`
}

// Season groups the episodes of one series season. Seasons are derived:
// they are rebuilt from the episode set whenever season-level data is
// requested and missing from cache.
type Season struct {
	SeriesID     int       `json:"seriesId"`
	SeasonNumber int       `json:"seasonNumber"`
	EpisodeCount int       `json:"episodeCount"`
	Episodes     []Episode `json:"episodes"`
}
