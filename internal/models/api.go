// Showboard - Sonarr to Notion Dashboard Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showboard

package models

// APIResponse is the uniform envelope returned by every HTTP endpoint.
//
// Successful responses carry the payload in Data:
//
//	{"status": "success", "data": {...}}
//
// Error responses carry a human-readable message:
//
//	{"status": "error", "message": "series 42 not found"}
type APIResponse struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// NewSuccessResponse wraps a payload in a success envelope.
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{Status: StatusSuccess, Data: data}
}

// NewErrorResponse wraps a message in an error envelope.
func NewErrorResponse(message string) APIResponse {
	return APIResponse{Status: StatusError, Message: message}
}

// HealthStatus is the payload of the health endpoint.
type HealthStatus struct {
	Status       string  `json:"status"`
	Version      string  `json:"version"`
	CacheWarm    bool    `json:"cache_warm"`
	CachedShows  int     `json:"cached_shows"`
	UptimeSecond float64 `json:"uptime_seconds"`
}
