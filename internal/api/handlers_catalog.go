// Showboard - Sonarr to Notion Dashboard Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showboard

package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/showboard/internal/logging"
)

// Series returns the full show listing.
func (h *Handler) Series(w http.ResponseWriter, r *http.Request) {
	shows, err := h.catalog.GetSeries(r.Context())
	if err != nil {
		logging.Error().Err(err).Msg("Failed to fetch series")
		respondError(w, http.StatusBadGateway, "failed to fetch series from catalog")
		return
	}
	respondSuccess(w, shows)
}

// SeriesByID returns a single show.
func (h *Handler) SeriesByID(w http.ResponseWriter, r *http.Request) {
	seriesID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "series id must be an integer")
		return
	}

	show, found, err := h.catalog.GetSeriesByID(r.Context(), seriesID)
	if err != nil {
		logging.Error().Err(err).Int("series_id", seriesID).Msg("Failed to fetch series")
		respondError(w, http.StatusBadGateway, "failed to fetch series from catalog")
		return
	}
	if !found {
		respondError(w, http.StatusNotFound, fmt.Sprintf("series %d not found", seriesID))
		return
	}
	respondSuccess(w, show)
}

// SeriesEpisodes returns a show's episodes, optionally narrowed to one
// season via ?season_number=.
func (h *Handler) SeriesEpisodes(w http.ResponseWriter, r *http.Request) {
	seriesID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "series id must be an integer")
		return
	}

	if raw := r.URL.Query().Get("season_number"); raw != "" {
		seasonNumber, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "season_number must be an integer")
			return
		}
		episodes, err := h.catalog.GetSeasonBySeriesID(r.Context(), seriesID, seasonNumber)
		if err != nil {
			logging.Error().Err(err).Int("series_id", seriesID).Msg("Failed to fetch season")
			respondError(w, http.StatusBadGateway, "failed to fetch episodes from catalog")
			return
		}
		respondSuccess(w, episodes)
		return
	}

	episodes, err := h.catalog.GetEpisodesBySeriesID(r.Context(), seriesID)
	if err != nil {
		logging.Error().Err(err).Int("series_id", seriesID).Msg("Failed to fetch episodes")
		respondError(w, http.StatusBadGateway, "failed to fetch episodes from catalog")
		return
	}
	respondSuccess(w, episodes)
}

// Calendar returns upcoming and recent episodes. The window defaults to
// the configured sync window and can be overridden per request with
// ?past_days= and ?future_days=.
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	pastDays, err := queryDays(r, "past_days", h.cfg.Sync.PastDays)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	futureDays, err := queryDays(r, "future_days", h.cfg.Sync.FutureDays)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := h.catalog.GetEpisodesCalendar(r.Context(), pastDays, futureDays)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to fetch calendar")
		respondError(w, http.StatusBadGateway, "failed to fetch calendar from catalog")
		return
	}
	respondSuccess(w, entries)
}

// queryDays parses a non-negative day-count query parameter.
func queryDays(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", name)
	}
	return days, nil
}
