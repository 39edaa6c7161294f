// Showboard - Sonarr to Notion Dashboard Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showboard

package notion

import (
	"context"
	"fmt"
	"sync"

	"github.com/tomtom215/showboard/internal/logging"
)

// childLister is the client surface the resolver needs.
type childLister interface {
	GetChildDatabases(ctx context.Context, pageID string) ([]Database, error)
}

// Resolver maps database titles to ids for the child databases of one
// dashboard page.
//
// Resolution is an explicit two-phase protocol: Warm performs the
// network lookup and populates the table; DatabaseID is a pure accessor
// that fails with ErrNotResolved when called before warming. No I/O ever
// hides behind an accessor.
type Resolver struct {
	client childLister
	pageID string

	mu     sync.RWMutex
	tables map[string]string // title -> database id
}

// NewResolver creates a resolver for the child databases of pageID.
func NewResolver(client childLister, pageID string) *Resolver {
	return &Resolver{client: client, pageID: pageID}
}

// Warm fetches the page's child databases and records their ids.
// Safe to call again to pick up newly created databases.
func (r *Resolver) Warm(ctx context.Context) error {
	databases, err := r.client.GetChildDatabases(ctx, r.pageID)
	if err != nil {
		return fmt.Errorf("failed to resolve child databases: %w", err)
	}

	tables := make(map[string]string, len(databases))
	for _, db := range databases {
		tables[db.Title] = db.ID
	}

	r.mu.Lock()
	r.tables = tables
	r.mu.Unlock()

	logging.Info().Int("count", len(tables)).Msg("Resolved Notion child databases")
	return nil
}

// DatabaseID returns the id of the child database with the given title.
// Returns ErrNotResolved before Warm, and a descriptive error when the
// title is unknown.
func (r *Resolver) DatabaseID(title string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.tables == nil {
		return "", ErrNotResolved
	}
	id, ok := r.tables[title]
	if !ok {
		return "", fmt.Errorf("no child database titled %q", title)
	}
	return id, nil
}
