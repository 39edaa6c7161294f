// Showboard - Sonarr to Notion Dashboard Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showboard

// Package main is the entry point for the Showboard server.
//
// Showboard keeps a Notion dashboard in sync with a Sonarr TV catalog
// and, optionally, YouTube channel statistics. The server initializes
// components in the following order:
//
//  1. Configuration: environment variables and config file (Koanf v2)
//  2. Sonarr client: circuit-breaker wrapped, cache-backed catalog reads
//  3. Cache warm-up (optional, WARM_CACHE_ON_START)
//  4. Notion client, sync engine, and database resolver
//  5. YouTube client (optional, YOUTUBE_ENABLED)
//  6. Supervisor tree: HTTP server (api layer) and sync scheduler
//     (sync layer)
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): environment variables, config file, built-in
// defaults. Required: SONARR_URL, SONARR_API_KEY; with sync enabled
// also NOTION_TOKEN, NOTION_PAGE_ID, NOTION_DB_TV_CALENDAR.
//
// # Signal Handling
//
// SIGINT and SIGTERM trigger a graceful shutdown: the HTTP server
// drains in-flight requests (10s timeout) and the scheduler stops
// between passes.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/showboard/internal/api"
	"github.com/tomtom215/showboard/internal/cache"
	"github.com/tomtom215/showboard/internal/config"
	"github.com/tomtom215/showboard/internal/logging"
	"github.com/tomtom215/showboard/internal/notion"
	"github.com/tomtom215/showboard/internal/sonarr"
	"github.com/tomtom215/showboard/internal/supervisor"
	"github.com/tomtom215/showboard/internal/supervisor/services"
	"github.com/tomtom215/showboard/internal/sync"
	"github.com/tomtom215/showboard/internal/youtube"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", version).
		Str("sonarr_url", cfg.Sonarr.URL).
		Bool("sync_enabled", cfg.Sync.Enabled).
		Bool("youtube_enabled", cfg.YouTube.Enabled).
		Msg("Starting Showboard")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Sonarr client with circuit breaker, wrapped by the catalog cache.
	catalogCache := cache.New(cfg.Sync.CacheStaleness)
	breaker := sonarr.NewBreakerClient(&cfg.Sonarr)
	catalog := sonarr.NewCachedClient(breaker, catalogCache)

	if err := breaker.Ping(ctx); err != nil {
		logging.Warn().Err(err).Msg("Failed to connect to Sonarr (will retry)")
	} else {
		logging.Info().Msg("Connected to Sonarr")
	}

	if cfg.Sync.WarmCacheOnStart {
		if err := catalog.WarmCache(ctx); err != nil {
			logging.Fatal().Err(err).Msg("Failed to warm catalog cache")
		}
	}

	reconciler := sonarr.NewReconciler(catalogCache)

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())

	if cfg.Sync.Enabled {
		notionClient := notion.NewClient(&cfg.Notion)
		engine := notion.NewEngine(notionClient)

		resolver := notion.NewResolver(notionClient, cfg.Notion.PageID)
		if err := resolver.Warm(ctx); err != nil {
			logging.Fatal().Err(err).Msg("Failed to resolve Notion databases")
		}

		var stats youtube.StatsAPI
		if cfg.YouTube.Enabled {
			stats = youtube.NewClient(&cfg.YouTube)
		}

		driver := sync.NewDriver(catalog, engine, resolver, stats, cfg)
		tree.AddSyncService(sync.NewScheduler(driver, cfg))
	} else {
		logging.Info().Msg("Dashboard sync disabled - serving catalog API only")
	}

	handler := api.NewHandler(catalog, catalogCache, reconciler, cfg, version)
	router := api.NewRouter(handler, api.NewChiMiddleware(&cfg.Security))

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}
	tree.AddAPIService(services.NewHTTPService(server, 10*time.Second))

	logging.Info().Str("addr", server.Addr).Msg("HTTP server starting")

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Fatal().Err(err).Msg("Supervisor tree failed")
	}

	logging.Info().Msg("Showboard stopped")
}
