// Showboard - Sonarr to Notion Dashboard Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showboard

// Package validation provides struct validation using go-playground/validator v10.
//
// This package wraps the go-playground/validator library to provide a thread-safe
// singleton validator instance with user-friendly error messages. It integrates
// with the application's API error format for consistent error responses.
//
// # Quick Start
//
//	type SyncRequest struct {
//	    Days  int    `validate:"min=1,max=90"`
//	    Table string `validate:"required,oneof=calendar stats"`
//	}
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    var req SyncRequest
//	    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
//	        // handle decode error
//	    }
//
//	    if verr := validation.ValidateStruct(&req); verr != nil {
//	        apiErr := verr.ToAPIError()
//	        respondError(w, http.StatusBadRequest, apiErr.Message)
//	        return
//	    }
//	}
//
// # Common Validation Tags
//
// String validations:
//   - required: Field must not be empty
//   - min=n / max=n: Length bounds in characters
//   - url: Valid URL format
//   - datetime: Valid RFC3339 date/time
//
// Numeric validations:
//   - gte=n / lte=n / gt=n / lt=n: Value bounds
//   - min=n / max=n: Value bounds
//
// Enum validations:
//   - oneof=a b c: Must be one of the specified values
//
// # Error Types
//
// ValidationError represents a single field validation failure and exposes
// Field(), Tag(), Param(), Value() and Error(). RequestValidationError
// aggregates multiple field errors and converts to the application's API
// error format via ToAPIError().
//
// # Thread Safety
//
// The singleton validator is initialized once and safe for concurrent use.
// The validator caches struct reflection information, so repeat validations
// of the same type are cheap.
package validation
