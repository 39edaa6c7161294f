// Showboard - Sonarr to Notion Dashboard Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showboard

package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/showboard/internal/logging"
	"github.com/tomtom215/showboard/internal/models"
)

// respondJSON writes a JSON payload with the given status code.
func respondJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error().Err(err).Msg("Failed to encode response")
	}
}

// respondSuccess writes a 200 success envelope around data.
func respondSuccess(w http.ResponseWriter, data interface{}) {
	respondJSON(w, http.StatusOK, models.NewSuccessResponse(data))
}

// respondError writes an error envelope with the given status code.
func respondError(w http.ResponseWriter, statusCode int, message string) {
	respondJSON(w, statusCode, models.NewErrorResponse(message))
}
