// Showboard - Sonarr to Notion Dashboard Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showboard

package models

import (
	"time"
)

// ChannelStats holds the current statistics for a YouTube channel.
type ChannelStats struct {
	ChannelID   string    `json:"channel_id"`
	Title       string    `json:"title"`
	Subscribers int64     `json:"subscribers"`
	Videos      int64     `json:"videos"`
	Views       int64     `json:"views"`
	CreatedAt   string    `json:"created_at,omitempty"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// VideoStats holds the current statistics for a single YouTube video.
type VideoStats struct {
	VideoID     string `json:"video_id"`
	Title       string `json:"title"`
	Views       int64  `json:"views"`
	Likes       int64  `json:"likes"`
	Comments    int64  `json:"comments"`
	PublishedAt string `json:"published_at,omitempty"`
}
