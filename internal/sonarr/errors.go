// Showboard - Sonarr to Notion Dashboard Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showboard

package sonarr

import (
	"errors"
	"fmt"
)

// errNotFound is an internal sentinel used by makeRequest to signal a 404.
// Callers translate it into an absent result; it never escapes the package.
var errNotFound = errors.New("not found")

// CatalogError wraps an upstream transport or HTTP failure from the
// Sonarr API, carrying the endpoint and the original error.
type CatalogError struct {
	Endpoint string
	Err      error
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("sonarr %s: %v", e.Endpoint, e.Err)
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}

// newCatalogError wraps err for the given endpoint.
func newCatalogError(endpoint string, err error) *CatalogError {
	return &CatalogError{Endpoint: endpoint, Err: err}
}
