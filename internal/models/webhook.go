// Showboard - Sonarr to Notion Dashboard Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showboard

package models

// Webhook event types sent by Sonarr.
const (
	WebhookEventDownload = "Download"
	WebhookEventGrab     = "Grab"
	WebhookEventRename   = "Rename"
)

// WebhookEvent is the payload Sonarr posts to the webhook endpoint.
// EventType is the only field guaranteed to be present; Series and
// Episodes accompany content events (Download, Grab, Rename).
type WebhookEvent struct {
	EventType string           `json:"eventType"`
	Series    *WebhookSeries   `json:"series,omitempty"`
	Episodes  []WebhookEpisode `json:"episodes,omitempty"`
}

// WebhookSeries is the series fragment of a webhook payload.
type WebhookSeries struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Path   string `json:"path,omitempty"`
	TvdbID int    `json:"tvdbId,omitempty"`
	Year   int    `json:"year,omitempty"`
}

// WebhookEpisode is the episode fragment of a webhook payload.
type WebhookEpisode struct {
	ID            int    `json:"id"`
	SeasonNumber  int    `json:"seasonNumber"`
	EpisodeNumber int    `json:"episodeNumber"`
	Title         string `json:"title"`
	AirDate       string `json:"airDate,omitempty"`
}

// ToSeries converts the webhook series fragment into a catalog Series
// suitable for cache upserts.
func (ws *WebhookSeries) ToSeries() Series {
	return Series{
		ID:     ws.ID,
		Title:  ws.Title,
		Path:   ws.Path,
		TvdbID: ws.TvdbID,
		Year:   ws.Year,
	}
}

// ToEpisode converts the webhook episode fragment into a catalog Episode
// for the given series id.
func (we *WebhookEpisode) ToEpisode(seriesID int) Episode {
	return Episode{
		ID:            we.ID,
		SeriesID:      seriesID,
		SeasonNumber:  we.SeasonNumber,
		EpisodeNumber: we.EpisodeNumber,
		Title:         we.Title,
		AirDate:       we.AirDate,
	}
}
