// Showboard - Sonarr to Notion Dashboard Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showboard

package api

import (
	"crypto/subtle"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/showboard/internal/logging"
	"github.com/tomtom215/showboard/internal/models"
)

// maxWebhookBodySize bounds webhook payloads to 1MB.
const maxWebhookBodySize = 1 << 20

// Webhook receives Sonarr webhook events and applies them to the
// catalog cache.
//
// Sonarr disables webhooks that repeatedly fail, so this endpoint
// always answers HTTP 200 once authentication has passed: malformed or
// unrecognized payloads are reported in the envelope, never via the
// status code.
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	if key := h.cfg.Security.WebhookAPIKey; key != "" {
		provided := r.Header.Get("X-Api-Key")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
			logging.Warn().Str("remote", r.RemoteAddr).Msg("Webhook request with invalid API key")
			respondError(w, http.StatusUnauthorized, "invalid API key")
			return
		}
	}

	var event models.WebhookEvent
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxWebhookBodySize)).Decode(&event); err != nil {
		logging.Warn().Err(err).Msg("Failed to decode webhook payload")
		respondJSON(w, http.StatusOK, models.NewErrorResponse("malformed webhook payload"))
		return
	}

	h.events.HandleEvent(event)
	respondSuccess(w, map[string]string{"event_type": event.EventType})
}
