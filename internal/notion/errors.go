// Showboard - Sonarr to Notion Dashboard Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showboard

package notion

import (
	"errors"
	"fmt"
)

// ErrNotResolved is returned by Resolver accessors before Warm has
// populated the database-id table. Resolution is an explicit two-phase
// protocol: Warm performs the I/O, accessors are pure lookups.
var ErrNotResolved = errors.New("notion databases not yet resolved; call Warm first")

// APIError is a non-2xx response from the Notion API.
type APIError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("notion API error %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

// FormatError reports an unsupported property type or a value that
// cannot be coerced to the declared type. It is raised at format time,
// before any network call is attempted.
type FormatError struct {
	PropertyType PropertyType
	Value        interface{}
	Reason       string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("cannot format property of type %q: %s", e.PropertyType, e.Reason)
}
