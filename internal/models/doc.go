// Showboard - Sonarr to Notion Dashboard Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showboard

// Package models defines the shared data structures exchanged between the
// Sonarr catalog client, the in-memory cache, the Notion sync engine and the
// HTTP API layer.
//
// Catalog entities (Series, Season, Episode) mirror the Sonarr v3 API
// shapes. Webhook payloads carry the subset of fields Sonarr sends with
// Download/Grab/Rename notifications. API responses use a uniform
// status/data/message envelope.
package models
