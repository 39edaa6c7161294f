// Showboard - Sonarr to Notion Dashboard Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showboard

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - API endpoint latency and throughput
// - Sonarr/Notion/YouTube client activity
// - Sync pass outcomes and row churn
// - Catalog cache efficiency
// - Circuit breaker state

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Webhook Metrics
	WebhookEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_events_total",
			Help: "Total number of webhook events received by event type",
		},
		[]string{"event_type"}, // "Download", "Grab", "Rename", "unknown", "missing"
	)

	// Sync Pass Metrics
	SyncRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_runs_total",
			Help: "Total number of sync passes by job and outcome",
		},
		[]string{"job", "status"}, // job: "calendar", "channel_stats"; status: "success", "error"
	)

	SyncDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sync_duration_seconds",
			Help:    "Duration of sync passes in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"job"},
	)

	SyncLastSuccess = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sync_last_success_timestamp",
			Help: "Unix timestamp of last successful sync pass",
		},
		[]string{"job"},
	)

	RowsUpserted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rows_upserted_total",
			Help: "Total number of rows created or updated in remote tables",
		},
		[]string{"table"},
	)

	RowsDeleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rows_deleted_total",
			Help: "Total number of rows archived in remote tables",
		},
		[]string{"table"},
	)

	SyncEntriesSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sync_entries_skipped_total",
			Help: "Total number of calendar entries skipped (dangling series reference)",
		},
	)

	// Upstream Client Metrics
	SonarrRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sonarr_requests_total",
			Help: "Total number of Sonarr API requests",
		},
		[]string{"endpoint", "status"}, // status: "success", "not_found", "error"
	)

	NotionRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notion_requests_total",
			Help: "Total number of Notion API requests",
		},
		[]string{"operation", "status"},
	)

	NotionRateLimitWaits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notion_rate_limit_waits_total",
			Help: "Total number of Notion HTTP 429 backoff waits",
		},
	)

	YouTubeRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "youtube_requests_total",
			Help: "Total number of YouTube Data API requests",
		},
		[]string{"operation", "status"},
	)

	// Catalog Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of catalog cache hits",
		},
		[]string{"entity"}, // "show", "season", "episode"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of catalog cache misses",
		},
		[]string{"entity"},
	)

	CachedShows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_shows",
			Help: "Current number of shows in the catalog cache",
		},
	)

	CachedEpisodes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_episodes",
			Help: "Current number of episodes in the catalog cache",
		},
	)

	CacheLastFullRefresh = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_last_full_refresh_timestamp",
			Help: "Unix timestamp of the last full catalog refresh",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breakers by result",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive circuit breaker failures",
		},
		[]string{"name"},
	)
)

// RecordAPIRequest records metrics for a completed HTTP API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordSyncRun records the outcome and duration of a sync pass.
func RecordSyncRun(job string, duration time.Duration, err error) {
	SyncDuration.WithLabelValues(job).Observe(duration.Seconds())
	if err != nil {
		SyncRunsTotal.WithLabelValues(job, "error").Inc()
		return
	}
	SyncRunsTotal.WithLabelValues(job, "success").Inc()
	SyncLastSuccess.WithLabelValues(job).Set(float64(time.Now().Unix()))
}

// TrackActiveRequest increments or decrements the active request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
