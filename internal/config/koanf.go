// Showboard - Sonarr to Notion Dashboard Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showboard

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/showboard/config.yaml",
	"/etc/showboard/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Sonarr: SonarrConfig{
			URL:     "",
			APIKey:  "",
			Timeout: 30 * time.Second,
		},
		Notion: NotionConfig{
			Token:            "",
			PageID:           "",
			CalendarDatabase: "Upcoming Episodes",
			StatsDatabase:    "Channel Stats",
			MaxConcurrent:    3,
			MinInterval:      350 * time.Millisecond, // Notion allows ~3 requests/second
			MaxRetries:       5,
		},
		YouTube: YouTubeConfig{
			Enabled: false,
			APIKey:  "",
			Channel: "",
		},
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8000,
			Timeout: 30 * time.Second,
		},
		Sync: SyncConfig{
			Enabled:          true,
			PastDays:         7,
			FutureDays:       14,
			CalendarInterval: 24 * time.Hour,
			StatsInterval:    time.Hour,
			CacheStaleness:   12 * time.Hour,
			WarmCacheOnStart: true,
		},
		Security: SecurityConfig{
			WebhookAPIKey:     "", // Empty disables the X-API-Key check
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// Precedence: ENV > File > Defaults.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// Transform environment variable names to koanf paths:
	// SONARR_URL -> sonarr.url
	// NOTION_DB_TV_CALENDAR -> notion.calendar_database
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	// Unmarshal into Config struct
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	// Check environment variable first
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	// Search default paths
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// This is necessary because env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// If it's already a slice (from YAML file), skip
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		// If it's a string, split by comma
		if strVal, ok := val.(string); ok {
			if strVal == "" {
				continue
			}
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// envTransformFunc transforms environment variable names to koanf config paths.
// It keeps the environment variable names compatible with existing deployments.
//
// Examples:
//   - SONARR_URL -> sonarr.url
//   - NOTION_DB_TV_CALENDAR -> notion.calendar_database
//   - HTTP_PORT -> server.port
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Sonarr mappings
		"sonarr_url":     "sonarr.url",
		"sonarr_api_key": "sonarr.api_key",
		"sonarr_timeout": "sonarr.timeout",

		// Notion mappings
		"notion_token":            "notion.token",
		"notion_page_id":          "notion.page_id",
		"notion_db_tv_calendar":   "notion.calendar_database",
		"notion_db_channel_stats": "notion.stats_database",
		"notion_max_concurrent":   "notion.max_concurrent",
		"notion_min_interval":     "notion.min_interval",
		"notion_max_retries":      "notion.max_retries",

		// YouTube mappings
		"youtube_enabled": "youtube.enabled",
		"youtube_api_key": "youtube.api_key",
		"youtube_channel": "youtube.channel",

		// Server mappings
		"http_host":    "server.host",
		"http_port":    "server.port",
		"http_timeout": "server.timeout",

		// Sync mappings
		"sync_enabled":           "sync.enabled",
		"sync_past_days":         "sync.past_days",
		"sync_future_days":       "sync.future_days",
		"sync_calendar_interval": "sync.calendar_interval",
		"sync_stats_interval":    "sync.stats_interval",
		"cache_staleness":        "sync.cache_staleness",
		"warm_cache_on_start":    "sync.warm_cache_on_start",

		// Security mappings
		"webhook_api_key":     "security.webhook_api_key",
		"rate_limit_reqs":     "security.rate_limit_reqs",
		"rate_limit_window":   "security.rate_limit_window",
		"rate_limit_disabled": "security.rate_limit_disabled",
		"cors_origins":        "security.cors_origins",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// Unknown environment variables are ignored to avoid polluting the config tree
	return ""
}
