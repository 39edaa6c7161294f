// Showboard - Sonarr to Notion Dashboard Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showboard

package sync

import (
	"context"
	"time"

	"github.com/tomtom215/showboard/internal/config"
	"github.com/tomtom215/showboard/internal/logging"
	"github.com/tomtom215/showboard/internal/metrics"
)

// Scheduler runs the sync passes on their configured intervals. It is a
// suture service: Serve blocks until the context is cancelled, and a
// failing pass is recorded and retried on the next tick rather than
// crashing the service.
type Scheduler struct {
	driver           *Driver
	calendarInterval time.Duration
	statsInterval    time.Duration
	statsEnabled     bool
}

// NewScheduler creates a scheduler over the given driver.
func NewScheduler(driver *Driver, cfg *config.Config) *Scheduler {
	return &Scheduler{
		driver:           driver,
		calendarInterval: cfg.Sync.CalendarInterval,
		statsInterval:    cfg.Sync.StatsInterval,
		statsEnabled:     cfg.YouTube.Enabled,
	}
}

// Serve runs both jobs once at startup, then on their tickers until ctx
// is cancelled.
func (s *Scheduler) Serve(ctx context.Context) error {
	logging.Info().
		Dur("calendar_interval", s.calendarInterval).
		Dur("stats_interval", s.statsInterval).
		Bool("stats_enabled", s.statsEnabled).
		Msg("Sync scheduler starting")

	s.runCalendar(ctx)
	if s.statsEnabled {
		s.runStats(ctx)
	}

	calendarTicker := time.NewTicker(s.calendarInterval)
	defer calendarTicker.Stop()
	statsTicker := time.NewTicker(s.statsInterval)
	defer statsTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Info().Msg("Sync scheduler stopping")
			return ctx.Err()
		case <-calendarTicker.C:
			s.runCalendar(ctx)
		case <-statsTicker.C:
			if s.statsEnabled {
				s.runStats(ctx)
			}
		}
	}
}

// String names the service in supervisor logs.
func (s *Scheduler) String() string {
	return "sync-scheduler"
}

func (s *Scheduler) runCalendar(ctx context.Context) {
	start := time.Now()
	err := s.driver.SyncCalendar(ctx)
	metrics.RecordSyncRun(jobCalendar, time.Since(start), err)
	if err != nil && ctx.Err() == nil {
		logging.Error().Err(err).Msg("Calendar sync pass failed")
	}
}

func (s *Scheduler) runStats(ctx context.Context) {
	start := time.Now()
	err := s.driver.SyncChannelStats(ctx)
	metrics.RecordSyncRun(jobChannelStats, time.Since(start), err)
	if err != nil && ctx.Err() == nil {
		logging.Error().Err(err).Msg("Channel stats sync pass failed")
	}
}
