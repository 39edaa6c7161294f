// Showboard - Sonarr to Notion Dashboard Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showboard

// Package youtube fetches channel and video statistics from the YouTube
// Data API v3. The API reports all counters as string-encoded integers;
// this package parses them into int64 at the boundary so the rest of the
// system never sees the quirk.
package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/showboard/internal/config"
	"github.com/tomtom215/showboard/internal/logging"
	"github.com/tomtom215/showboard/internal/metrics"
	"github.com/tomtom215/showboard/internal/models"
)

// defaultBaseURL is the YouTube Data API endpoint; overridable for tests.
const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

// channelIDLength is the fixed length of canonical channel ids ("UC" +
// 22 base64 characters).
const channelIDLength = 24

// StatsAPI is the surface the sync driver depends on.
type StatsAPI interface {
	ResolveChannelID(ctx context.Context, ref string) (string, error)
	GetChannelStats(ctx context.Context, channelID string) (*models.ChannelStats, bool, error)
}

// Client is a YouTube Data API v3 client.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient creates a YouTube client from the provided configuration.
func NewClient(cfg *config.YouTubeConfig) *Client {
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// get performs one API call with the key appended and decodes the body.
func (c *Client) get(ctx context.Context, operation, resource string, params url.Values, result interface{}) error {
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+resource+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.YouTubeRequestsTotal.WithLabelValues(operation, "error").Inc()
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.YouTubeRequestsTotal.WithLabelValues(operation, "error").Inc()
		return fmt.Errorf("youtube API error: HTTP %d for %s", resp.StatusCode, resource)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		metrics.YouTubeRequestsTotal.WithLabelValues(operation, "error").Inc()
		return fmt.Errorf("failed to decode response: %w", err)
	}

	metrics.YouTubeRequestsTotal.WithLabelValues(operation, "success").Inc()
	return nil
}

type channelListResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title       string `json:"title"`
			PublishedAt string `json:"publishedAt"`
		} `json:"snippet"`
		Statistics struct {
			SubscriberCount string `json:"subscriberCount"`
			VideoCount      string `json:"videoCount"`
			ViewCount       string `json:"viewCount"`
		} `json:"statistics"`
	} `json:"items"`
}

// GetChannelStats fetches the current statistics for a channel. The
// second return value reports whether the channel exists; a missing
// channel is not an error.
func (c *Client) GetChannelStats(ctx context.Context, channelID string) (*models.ChannelStats, bool, error) {
	params := url.Values{}
	params.Set("part", "statistics,snippet")
	params.Set("id", channelID)

	var resp channelListResponse
	if err := c.get(ctx, "channel_stats", "channels", params, &resp); err != nil {
		return nil, false, err
	}
	if len(resp.Items) == 0 {
		return nil, false, nil
	}

	item := resp.Items[0]
	stats := &models.ChannelStats{
		ChannelID:   item.ID,
		Title:       item.Snippet.Title,
		Subscribers: parseCount(item.Statistics.SubscriberCount),
		Videos:      parseCount(item.Statistics.VideoCount),
		Views:       parseCount(item.Statistics.ViewCount),
		CreatedAt:   item.Snippet.PublishedAt,
		FetchedAt:   time.Now().UTC(),
	}
	return stats, true, nil
}

// GetVideoStats fetches the current statistics for a single video.
func (c *Client) GetVideoStats(ctx context.Context, videoID string) (*models.VideoStats, bool, error) {
	params := url.Values{}
	params.Set("part", "statistics,snippet")
	params.Set("id", videoID)

	var resp struct {
		Items []struct {
			ID      string `json:"id"`
			Snippet struct {
				Title       string `json:"title"`
				PublishedAt string `json:"publishedAt"`
			} `json:"snippet"`
			Statistics struct {
				ViewCount    string `json:"viewCount"`
				LikeCount    string `json:"likeCount"`
				CommentCount string `json:"commentCount"`
			} `json:"statistics"`
		} `json:"items"`
	}
	if err := c.get(ctx, "video_stats", "videos", params, &resp); err != nil {
		return nil, false, err
	}
	if len(resp.Items) == 0 {
		return nil, false, nil
	}

	item := resp.Items[0]
	stats := &models.VideoStats{
		VideoID:     item.ID,
		Title:       item.Snippet.Title,
		Views:       parseCount(item.Statistics.ViewCount),
		Likes:       parseCount(item.Statistics.LikeCount),
		Comments:    parseCount(item.Statistics.CommentCount),
		PublishedAt: item.Snippet.PublishedAt,
	}
	return stats, true, nil
}

// ResolveChannelID turns a channel reference into a canonical channel
// id. Accepted forms: a canonical id ("UC…", 24 chars), a channel URL
// (youtube.com/channel/…, /user/…, /c/…, /@handle), a bare @handle, or a
// legacy username. Names resolve via the channels forUsername lookup
// first, then a channel search.
func (c *Client) ResolveChannelID(ctx context.Context, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("empty channel reference")
	}

	if strings.HasPrefix(ref, "UC") && len(ref) == channelIDLength {
		return ref, nil
	}

	name := ref
	if strings.Contains(ref, "youtube.com/") {
		extracted, err := extractFromURL(ref)
		if err != nil {
			return "", err
		}
		// URLs can carry a canonical id directly.
		if strings.HasPrefix(extracted, "UC") && len(extracted) == channelIDLength {
			return extracted, nil
		}
		name = extracted
	}
	name = strings.TrimPrefix(name, "@")

	if id, err := c.lookupByUsername(ctx, name); err != nil {
		return "", err
	} else if id != "" {
		return id, nil
	}

	id, err := c.searchChannel(ctx, name)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", fmt.Errorf("no channel found for %q", ref)
	}

	logging.Debug().Str("ref", ref).Str("channel_id", id).Msg("Resolved channel via search")
	return id, nil
}

// lookupByUsername resolves a legacy username; returns "" when the
// username does not exist.
func (c *Client) lookupByUsername(ctx context.Context, username string) (string, error) {
	params := url.Values{}
	params.Set("part", "id")
	params.Set("forUsername", username)

	var resp channelListResponse
	if err := c.get(ctx, "resolve_username", "channels", params, &resp); err != nil {
		return "", err
	}
	if len(resp.Items) == 0 {
		return "", nil
	}
	return resp.Items[0].ID, nil
}

// searchChannel resolves a name via channel search; returns "" when no
// channel matches.
func (c *Client) searchChannel(ctx context.Context, name string) (string, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "channel")
	params.Set("q", name)
	params.Set("maxResults", "1")

	var resp struct {
		Items []struct {
			ID struct {
				ChannelID string `json:"channelId"`
			} `json:"id"`
		} `json:"items"`
	}
	if err := c.get(ctx, "resolve_search", "search", params, &resp); err != nil {
		return "", err
	}
	if len(resp.Items) == 0 {
		return "", nil
	}
	return resp.Items[0].ID.ChannelID, nil
}

// extractFromURL pulls the channel id, handle, or name out of a channel
// URL.
func extractFromURL(ref string) (string, error) {
	if !strings.Contains(ref, "://") {
		ref = "https://" + ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid channel URL %q: %w", ref, err)
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) == 0 || segments[0] == "" {
		return "", fmt.Errorf("channel URL %q has no path", ref)
	}

	switch segments[0] {
	case "channel", "user", "c":
		if len(segments) < 2 || segments[1] == "" {
			return "", fmt.Errorf("channel URL %q is missing an identifier", ref)
		}
		return segments[1], nil
	default:
		// /@handle or a bare vanity path.
		return segments[0], nil
	}
}

// parseCount parses a string-encoded counter, treating malformed or
// hidden counters as zero.
func parseCount(s string) int64 {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
