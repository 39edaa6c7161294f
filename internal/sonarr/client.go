// Showboard - Sonarr to Notion Dashboard Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showboard

package sonarr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/showboard/internal/config"
	"github.com/tomtom215/showboard/internal/metrics"
	"github.com/tomtom215/showboard/internal/models"
)

// maxErrorBodySize limits the maximum amount of response body read for error reporting.
// This prevents unbounded memory allocation when reading large error responses.
const maxErrorBodySize = 64 * 1024 // 64KB

// dateFormat is the query-parameter date layout Sonarr expects.
const dateFormat = "2006-01-02"

// readBodyForError reads the response body for error reporting (max 64KB).
// Returns the body content or a placeholder message if reading fails.
func readBodyForError(r io.Reader) []byte {
	limitedReader := io.LimitReader(r, maxErrorBodySize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// CatalogAPI defines the upstream operations the cached client and the
// sync driver depend on. It is implemented by Client and BreakerClient
// for production use and by fakes in tests.
//
// All methods are safe for concurrent use.
type CatalogAPI interface {
	GetSeries(ctx context.Context) ([]models.Series, error)
	GetSeriesByID(ctx context.Context, seriesID int) (models.Series, bool, error)
	GetEpisodesBySeriesID(ctx context.Context, seriesID int) ([]models.Episode, error)
	GetCalendar(ctx context.Context, start, end time.Time) ([]models.Episode, error)
	Ping(ctx context.Context) error
}

// Client handles communication with the Sonarr v3 HTTP API.
//
// Features:
//   - X-Api-Key authentication
//   - Automatic retry on rate limiting (up to 5 retries)
//   - Exponential backoff (1s, 2s, 4s, 8s, 16s delays) honoring Retry-After
//   - JSON parsing with typed response structs
//
// Thread Safety: Safe for concurrent use. Each request creates its own
// HTTP request.
type Client struct {
	baseURL        string
	apiKey         string
	client         *http.Client
	maxRetries     int           // Maximum retries for rate limiting
	retryBaseDelay time.Duration // Base delay for exponential backoff
}

// NewClient creates a Sonarr API client from the provided configuration.
func NewClient(cfg *config.SonarrConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: cfg.URL,
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout: timeout,
		},
		maxRetries:     5,
		retryBaseDelay: 1 * time.Second,
	}
}

// doRequestWithRateLimit performs an HTTP GET with automatic rate limit handling.
// Implements exponential backoff for HTTP 429 responses (1s, 2s, 4s, 8s, 16s).
// The context is used for cancellation during backoff waits.
func (c *Client) doRequestWithRateLimit(ctx context.Context, reqURL string) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("X-Api-Key", c.apiKey)
		req.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("HTTP request failed: %w", err)
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		// Rate limited (HTTP 429) - close body and retry with backoff
		_ = resp.Body.Close()

		if attempt == c.maxRetries {
			lastErr = fmt.Errorf("rate limit exceeded after %d retries (HTTP 429)", c.maxRetries)
			break
		}

		// Exponential backoff delay: 1s, 2s, 4s, 8s, 16s
		delay := c.retryBaseDelay * time.Duration(1<<uint(attempt))

		// Check for Retry-After header (RFC 6585)
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if seconds, err := time.ParseDuration(retryAfter + "s"); err == nil {
				delay = seconds
			}
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, lastErr
}

// makeRequest handles common Sonarr API request boilerplate: URL
// construction, rate-limited GET, status checking and JSON decoding.
// A 404 returns errNotFound so callers can model it as an absent result.
func (c *Client) makeRequest(ctx context.Context, endpoint string, params url.Values, result interface{}) error {
	reqURL := fmt.Sprintf("%s/api/v3/%s", c.baseURL, endpoint)
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	resp, err := c.doRequestWithRateLimit(ctx, reqURL)
	if err != nil {
		metrics.SonarrRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return newCatalogError(endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		metrics.SonarrRequestsTotal.WithLabelValues(endpoint, "not_found").Inc()
		return errNotFound
	}

	if resp.StatusCode != http.StatusOK {
		metrics.SonarrRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		body := readBodyForError(resp.Body)
		return newCatalogError(endpoint, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		metrics.SonarrRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return newCatalogError(endpoint, fmt.Errorf("failed to decode response: %w", err))
	}

	metrics.SonarrRequestsTotal.WithLabelValues(endpoint, "success").Inc()
	return nil
}

// GetSeries returns the full show catalog.
func (c *Client) GetSeries(ctx context.Context) ([]models.Series, error) {
	var series []models.Series
	if err := c.makeRequest(ctx, "series", nil, &series); err != nil {
		return nil, err
	}
	return series, nil
}

// GetSeriesByID returns one show by id. A 404 yields (zero, false, nil).
func (c *Client) GetSeriesByID(ctx context.Context, seriesID int) (models.Series, bool, error) {
	var series models.Series
	err := c.makeRequest(ctx, fmt.Sprintf("series/%d", seriesID), nil, &series)
	if errors.Is(err, errNotFound) {
		return models.Series{}, false, nil
	}
	if err != nil {
		return models.Series{}, false, err
	}
	return series, true, nil
}

// GetEpisodesBySeriesID returns every episode of a series.
func (c *Client) GetEpisodesBySeriesID(ctx context.Context, seriesID int) ([]models.Episode, error) {
	params := url.Values{}
	params.Set("seriesId", fmt.Sprintf("%d", seriesID))

	var episodes []models.Episode
	if err := c.makeRequest(ctx, "episode", params, &episodes); err != nil {
		return nil, err
	}
	return episodes, nil
}

// GetCalendar returns the calendar entries whose air dates fall inside
// the closed window [start, end].
func (c *Client) GetCalendar(ctx context.Context, start, end time.Time) ([]models.Episode, error) {
	params := url.Values{}
	params.Set("start", start.Format(dateFormat))
	params.Set("end", end.Format(dateFormat))

	var entries []models.Episode
	if err := c.makeRequest(ctx, "calendar", params, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Ping checks connectivity by requesting the system status endpoint.
func (c *Client) Ping(ctx context.Context) error {
	var status map[string]interface{}
	return c.makeRequest(ctx, "system/status", nil, &status)
}
