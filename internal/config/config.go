// Showboard - Sonarr to Notion Dashboard Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showboard

// Package config provides centralized configuration management for all
// Showboard components: the Sonarr catalog client, the Notion sync engine,
// the YouTube metrics client, the HTTP server and the periodic scheduler.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	// cfg.Sonarr.URL, cfg.Notion.Token, etc. are now populated
//
// Config is immutable after Load() and safe for concurrent read access.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/tomtom215/showboard/internal/validation"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
type Config struct {
	Sonarr   SonarrConfig   `koanf:"sonarr"`
	Notion   NotionConfig   `koanf:"notion"`
	YouTube  YouTubeConfig  `koanf:"youtube"`
	Server   ServerConfig   `koanf:"server"`
	Sync     SyncConfig     `koanf:"sync"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// SonarrConfig holds the episode-manager connection settings.
//
// Environment Variables:
//   - SONARR_URL: Sonarr base URL (e.g., http://localhost:8989)
//   - SONARR_API_KEY: API key from Settings > General
type SonarrConfig struct {
	URL     string        `koanf:"url"`
	APIKey  string        `koanf:"api_key"`
	Timeout time.Duration `koanf:"timeout"`
}

// NotionConfig holds the Notion integration settings. CalendarDatabase and
// StatsDatabase name the child databases of the dashboard page that hold
// the upcoming-episode rows and the single channel-stats row.
//
// Environment Variables:
//   - NOTION_TOKEN: Integration token
//   - NOTION_PAGE_ID: Dashboard page containing the child databases
//   - NOTION_DB_TV_CALENDAR: Title of the episode calendar database
//   - NOTION_DB_CHANNEL_STATS: Title of the channel stats database
type NotionConfig struct {
	Token            string        `koanf:"token"`
	PageID           string        `koanf:"page_id"`
	CalendarDatabase string        `koanf:"calendar_database"`
	StatsDatabase    string        `koanf:"stats_database"`
	MaxConcurrent    int           `koanf:"max_concurrent" validate:"gte=1,lte=16"`
	MinInterval      time.Duration `koanf:"min_interval"`
	MaxRetries       int           `koanf:"max_retries" validate:"gte=0,lte=10"`
}

// YouTubeConfig holds the metrics API settings. Channel accepts a raw
// channel id, a channel URL, an @handle or a legacy username.
type YouTubeConfig struct {
	Enabled bool   `koanf:"enabled"`
	APIKey  string `koanf:"api_key"`
	Channel string `koanf:"channel"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port" validate:"gte=1,lte=65535"`
	Timeout time.Duration `koanf:"timeout"`
}

// SyncConfig holds periodic synchronization settings. PastDays/FutureDays
// define the calendar window; CacheStaleness is the interval after which a
// catalog-wide read triggers a full refresh.
type SyncConfig struct {
	Enabled          bool          `koanf:"enabled"`
	PastDays         int           `koanf:"past_days" validate:"gte=0,lte=90"`
	FutureDays       int           `koanf:"future_days" validate:"gte=0,lte=90"`
	CalendarInterval time.Duration `koanf:"calendar_interval"`
	StatsInterval    time.Duration `koanf:"stats_interval"`
	CacheStaleness   time.Duration `koanf:"cache_staleness"`
	WarmCacheOnStart bool          `koanf:"warm_cache_on_start"`
}

// SecurityConfig holds webhook authentication and rate limiting settings.
// An empty WebhookAPIKey disables the X-API-Key check entirely.
type SecurityConfig struct {
	WebhookAPIKey     string        `koanf:"webhook_api_key"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs" validate:"gte=1"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the configuration for completeness and consistency.
// Field-level constraints run through the validator tags; cross-field
// requirements (credentials for enabled integrations) are checked here.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return fmt.Errorf("invalid configuration: %w", verr)
	}

	if c.Sonarr.URL == "" {
		return fmt.Errorf("SONARR_URL is required")
	}
	if _, err := url.Parse(c.Sonarr.URL); err != nil {
		return fmt.Errorf("SONARR_URL is not a valid URL: %w", err)
	}
	if c.Sonarr.APIKey == "" {
		return fmt.Errorf("SONARR_API_KEY is required")
	}

	if c.Sync.Enabled {
		if c.Notion.Token == "" {
			return fmt.Errorf("NOTION_TOKEN is required when sync is enabled")
		}
		if c.Notion.PageID == "" {
			return fmt.Errorf("NOTION_PAGE_ID is required when sync is enabled")
		}
		if c.Notion.CalendarDatabase == "" {
			return fmt.Errorf("NOTION_DB_TV_CALENDAR is required when sync is enabled")
		}
		if c.Sync.CalendarInterval < time.Minute {
			return fmt.Errorf("sync calendar interval must be at least 1 minute, got %s", c.Sync.CalendarInterval)
		}
		if c.Sync.StatsInterval < time.Minute {
			return fmt.Errorf("sync stats interval must be at least 1 minute, got %s", c.Sync.StatsInterval)
		}
	}

	if c.YouTube.Enabled {
		if c.YouTube.APIKey == "" {
			return fmt.Errorf("YOUTUBE_API_KEY is required when youtube is enabled")
		}
		if c.YouTube.Channel == "" {
			return fmt.Errorf("YOUTUBE_CHANNEL is required when youtube is enabled")
		}
		if c.Sync.Enabled && c.Notion.StatsDatabase == "" {
			return fmt.Errorf("NOTION_DB_CHANNEL_STATS is required when youtube stats sync is enabled")
		}
	}

	if c.Sync.CacheStaleness < time.Minute {
		return fmt.Errorf("cache staleness must be at least 1 minute, got %s", c.Sync.CacheStaleness)
	}

	return nil
}
