// Showboard - Sonarr to Notion Dashboard Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showboard

package notion

import (
	"context"

	"github.com/tomtom215/showboard/internal/logging"
)

// Engine performs create/update/delete synchronization against remote
// tables using filter-based matching. It never reads the catalog cache
// directly; it only receives already-resolved row data from the driver.
type Engine struct {
	api API
}

// NewEngine creates a sync engine over the given Notion API.
func NewEngine(api API) *Engine {
	return &Engine{api: api}
}

// CreateOrUpdateRow upserts one row. With a match filter, the table is
// queried first: one or more matches update the first match in place
// (duplicates are logged, not resolved — see DeleteRowsWhere for
// cleanup); zero matches create a new row. Without a filter the row is
// always created.
//
// Returns the id of the created or updated page.
func (e *Engine) CreateOrUpdateRow(ctx context.Context, databaseID string, properties Properties, matchFilter Filter) (string, error) {
	if matchFilter != nil {
		result, err := e.api.QueryDatabase(ctx, databaseID, matchFilter, "")
		if err != nil {
			return "", err
		}

		if len(result.Results) > 0 {
			if len(result.Results) > 1 || result.HasMore {
				logging.Warn().
					Str("database_id", databaseID).
					Int("matches", len(result.Results)).
					Bool("has_more", result.HasMore).
					Msg("Match filter returned multiple rows; updating first match")
			}

			page, err := e.api.UpdatePage(ctx, result.Results[0].ID, properties)
			if err != nil {
				return "", err
			}
			logging.Debug().Str("page_id", page.ID).Msg("Updated existing row")
			return page.ID, nil
		}
	}

	page, err := e.api.CreatePage(ctx, databaseID, properties)
	if err != nil {
		return "", err
	}
	logging.Debug().Str("page_id", page.ID).Msg("Created new row")
	return page.ID, nil
}

// DeleteRowsWhere archives every row matching filter, paging through the
// result cursor until exhausted. A nil filter matches all rows.
// Per-row archive failures are logged and skipped so one bad row does
// not abort the batch. Returns the number of rows archived.
func (e *Engine) DeleteRowsWhere(ctx context.Context, databaseID string, filter Filter) (int, error) {
	deleted := 0
	cursor := ""

	for {
		result, err := e.api.QueryDatabase(ctx, databaseID, filter, cursor)
		if err != nil {
			return deleted, err
		}

		for _, page := range result.Results {
			if err := e.api.ArchivePage(ctx, page.ID); err != nil {
				logging.Warn().Err(err).Str("page_id", page.ID).Msg("Failed to archive row, skipping")
				continue
			}
			deleted++
		}

		if !result.HasMore || result.NextCursor == "" {
			break
		}
		cursor = result.NextCursor
	}

	logging.Info().Int("deleted", deleted).Str("database_id", databaseID).Msg("Archived rows")
	return deleted, nil
}

// ClearTable archives every row in the table. Used before a full rewrite
// when no stable match key exists for diffing.
func (e *Engine) ClearTable(ctx context.Context, databaseID string) (int, error) {
	return e.DeleteRowsWhere(ctx, databaseID, nil)
}
