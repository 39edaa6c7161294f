// Showboard - Sonarr to Notion Dashboard Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showboard

// Package notion provides the tabular sync engine over the Notion API:
// a rate-limited REST client, a property formatter, a filter builder, a
// two-phase database resolver and the create/update/archive sync
// operations used by the periodic driver.
//
// Rate policy toward Notion: a bounded concurrency gate (at most N
// simultaneous in-flight requests) plus minimum inter-request spacing via
// a token-bucket limiter; on HTTP 429 the client sleeps for the
// server-specified or exponentially-backed-off duration and retries up
// to a fixed ceiling, after which the error surfaces to the caller.
package notion
