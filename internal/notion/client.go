// Showboard - Sonarr to Notion Dashboard Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showboard

package notion

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/showboard/internal/config"
	"github.com/tomtom215/showboard/internal/logging"
	"github.com/tomtom215/showboard/internal/metrics"
)

// apiVersion is the Notion-Version header value.
const apiVersion = "2022-06-28"

// defaultBaseURL is the Notion API endpoint; overridable for tests.
const defaultBaseURL = "https://api.notion.com/v1"

// queryPageSize is the page size used for cursor-paged queries.
const queryPageSize = 100

// Page is a database row.
type Page struct {
	ID         string                     `json:"id"`
	Archived   bool                       `json:"archived"`
	Properties map[string]json.RawMessage `json:"properties"`
}

// QueryResult is one page of a database query.
type QueryResult struct {
	Results    []Page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

// Database describes a child database of a page.
type Database struct {
	ID    string
	Title string
}

// API is the Notion surface the sync engine depends on. Implemented by
// Client for production use and by fakes in tests.
type API interface {
	QueryDatabase(ctx context.Context, databaseID string, filter Filter, startCursor string) (*QueryResult, error)
	CreatePage(ctx context.Context, databaseID string, properties Properties) (*Page, error)
	UpdatePage(ctx context.Context, pageID string, properties Properties) (*Page, error)
	ArchivePage(ctx context.Context, pageID string) error
}

// Client is a rate-limited Notion REST client.
//
// Thread Safety: safe for concurrent use; the limiter and semaphore
// serialize request admission across goroutines.
type Client struct {
	token      string
	baseURL    string
	client     *http.Client
	limiter    *rate.Limiter // Minimum inter-request spacing
	sem        chan struct{} // Bounded in-flight concurrency
	maxRetries int
}

// NewClient creates a Notion client from the provided configuration.
func NewClient(cfg *config.NotionConfig) *Client {
	minInterval := cfg.MinInterval
	if minInterval <= 0 {
		minInterval = 350 * time.Millisecond
	}
	maxConcurrent := cfg.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 3
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 5
	}

	return &Client{
		token:      cfg.Token,
		baseURL:    defaultBaseURL,
		client:     &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(minInterval), 1),
		sem:        make(chan struct{}, maxConcurrent),
		maxRetries: maxRetries,
	}
}

// doRequest performs one Notion API call through the rate gate with
// automatic 429 retry. A nil body sends no payload; result may be nil
// when the response body is irrelevant.
func (c *Client) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	// Concurrency gate: at most N in-flight requests.
	select {
	case c.sem <- struct{}{}:
		defer func() { <-c.sem }()
	case <-ctx.Done():
		return ctx.Err()
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		// Minimum inter-request spacing.
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		var reqBody io.Reader = http.NoBody
		if payload != nil {
			reqBody = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Notion-Version", apiVersion)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("HTTP request failed: %w", err)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			_ = resp.Body.Close()
			metrics.NotionRateLimitWaits.Inc()

			if attempt == c.maxRetries {
				lastErr = fmt.Errorf("rate limit exceeded after %d retries (HTTP 429)", c.maxRetries)
				break
			}

			delay := time.Second * time.Duration(1<<uint(attempt))
			if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
				if seconds, err := time.ParseDuration(retryAfter + "s"); err == nil {
					delay = seconds
				}
			}

			logging.Warn().Dur("delay", delay).Int("attempt", attempt+1).Msg("Notion rate limited, backing off")

			select {
			case <-time.After(delay):
				continue
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		return c.finishRequest(resp, result)
	}

	return lastErr
}

// finishRequest checks the response status and decodes the body.
func (c *Client) finishRequest(resp *http.Response, result interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil {
			apiErr.Message = "(unreadable error body)"
		}
		return apiErr
	}

	if result == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// record increments the per-operation request counter.
func record(operation string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.NotionRequestsTotal.WithLabelValues(operation, status).Inc()
}

// QueryDatabase fetches one page of rows matching filter. A nil filter
// matches all rows. Pass the previous result's NextCursor to continue.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, filter Filter, startCursor string) (*QueryResult, error) {
	body := map[string]interface{}{
		"page_size": queryPageSize,
	}
	if filter != nil {
		body["filter"] = filter
	}
	if startCursor != "" {
		body["start_cursor"] = startCursor
	}

	var result QueryResult
	err := c.doRequest(ctx, http.MethodPost, "/databases/"+databaseID+"/query", body, &result)
	record("query", err)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// CreatePage creates a row in a database.
func (c *Client) CreatePage(ctx context.Context, databaseID string, properties Properties) (*Page, error) {
	body := map[string]interface{}{
		"parent":     map[string]interface{}{"database_id": databaseID},
		"properties": properties,
	}

	var page Page
	err := c.doRequest(ctx, http.MethodPost, "/pages", body, &page)
	record("create", err)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// UpdatePage updates a row's properties in place.
func (c *Client) UpdatePage(ctx context.Context, pageID string, properties Properties) (*Page, error) {
	body := map[string]interface{}{
		"properties": properties,
	}

	var page Page
	err := c.doRequest(ctx, http.MethodPatch, "/pages/"+pageID, body, &page)
	record("update", err)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// ArchivePage soft-deletes a row.
func (c *Client) ArchivePage(ctx context.Context, pageID string) error {
	body := map[string]interface{}{
		"archived": true,
	}

	err := c.doRequest(ctx, http.MethodPatch, "/pages/"+pageID, body, nil)
	record("archive", err)
	return err
}

// GetDatabaseSchema returns a database's property schema.
func (c *Client) GetDatabaseSchema(ctx context.Context, databaseID string) (map[string]interface{}, error) {
	var result struct {
		Properties map[string]interface{} `json:"properties"`
	}

	err := c.doRequest(ctx, http.MethodGet, "/databases/"+databaseID, nil, &result)
	record("schema", err)
	if err != nil {
		return nil, err
	}
	return result.Properties, nil
}

// GetChildDatabases lists the child databases of a page, following the
// block children cursor until exhausted.
func (c *Client) GetChildDatabases(ctx context.Context, pageID string) ([]Database, error) {
	type childDatabase struct {
		Title string `json:"title"`
	}
	type block struct {
		ID            string         `json:"id"`
		Type          string         `json:"type"`
		ChildDatabase *childDatabase `json:"child_database,omitempty"`
	}
	type childrenResult struct {
		Results    []block `json:"results"`
		HasMore    bool    `json:"has_more"`
		NextCursor string  `json:"next_cursor"`
	}

	var databases []Database
	cursor := ""
	for {
		path := "/blocks/" + pageID + "/children?page_size=100"
		if cursor != "" {
			path += "&start_cursor=" + cursor
		}

		var result childrenResult
		err := c.doRequest(ctx, http.MethodGet, path, nil, &result)
		record("children", err)
		if err != nil {
			return nil, err
		}

		for _, b := range result.Results {
			if b.Type == "child_database" && b.ChildDatabase != nil {
				databases = append(databases, Database{ID: b.ID, Title: b.ChildDatabase.Title})
			}
		}

		if !result.HasMore || result.NextCursor == "" {
			break
		}
		cursor = result.NextCursor
	}

	logging.Debug().Int("count", len(databases)).Str("page_id", pageID).Msg("Found child databases")
	return databases, nil
}
