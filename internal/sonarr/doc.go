// Showboard - Sonarr to Notion Dashboard Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showboard

// Package sonarr provides the Sonarr catalog integration: a REST client
// for the v3 API, a circuit-breaker wrapper, a cache-backed client that
// consults the catalog cache before any upstream call, and the webhook
// reconciler that applies partial updates pushed by Sonarr.
//
// Not-found is modeled as an absent result, never an error: single-entity
// lookups return a (value, found, err) triple where a Sonarr 404 yields
// (zero, false, nil). Transport and HTTP failures are wrapped into
// *CatalogError carrying the original message.
package sonarr
