// Showboard - Sonarr to Notion Dashboard Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showboard

package sonarr

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/showboard/internal/config"
	"github.com/tomtom215/showboard/internal/logging"
	"github.com/tomtom215/showboard/internal/metrics"
	"github.com/tomtom215/showboard/internal/models"
)

// BreakerClient wraps Client with the circuit breaker pattern to prevent
// cascading failures when the Sonarr API is unavailable or slow.
//
// DETERMINISM NOTE: The circuit breaker uses real time (via sony/gobreaker)
// for its interval and timeout calculations. Tests should exercise the
// wrapped client directly rather than mocking the breaker.
type BreakerClient struct {
	client CatalogAPI
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
}

// NewBreakerClient creates a Sonarr client with circuit breaker.
// Circuit breaker configuration:
// - Max 3 concurrent requests in half-open state
// - 1 minute measurement window
// - 2 minute timeout before attempting recovery
// - Opens after 60% failure rate with minimum 10 requests
func NewBreakerClient(cfg *config.SonarrConfig) *BreakerClient {
	return newBreakerClient(NewClient(cfg))
}

func newBreakerClient(client CatalogAPI) *BreakerClient {
	cbName := "sonarr-api"

	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbName).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		// Opens when failure rate >= 60% with minimum 10 requests
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6

			if shouldTrip {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}

			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()

			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &BreakerClient{
		client: client,
		cb:     cb,
		name:   cbName,
	}
}

// execute wraps a Sonarr API call with circuit breaker protection.
func (bc *BreakerClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := bc.cb.Execute(fn)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(bc.name, "rejected").Inc()
			logging.Warn().Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(bc.name, "failure").Inc()

			counts := bc.cb.Counts()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(bc.name).Set(float64(counts.ConsecutiveFailures))
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(bc.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(bc.name).Set(0)

	return result, nil
}

// castResult safely type-casts the circuit breaker result with error checking.
func castResult[T any](result interface{}, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// seriesLookup carries the (value, found) pair of a single-entity fetch
// through the breaker's interface{} result.
type seriesLookup struct {
	series models.Series
	found  bool
}

// GetSeries returns the full show catalog through the circuit breaker.
func (bc *BreakerClient) GetSeries(ctx context.Context) ([]models.Series, error) {
	return castResult[[]models.Series](bc.execute(func() (interface{}, error) {
		return bc.client.GetSeries(ctx)
	}))
}

// GetSeriesByID returns one show by id through the circuit breaker.
func (bc *BreakerClient) GetSeriesByID(ctx context.Context, seriesID int) (models.Series, bool, error) {
	result, err := castResult[seriesLookup](bc.execute(func() (interface{}, error) {
		series, found, err := bc.client.GetSeriesByID(ctx, seriesID)
		if err != nil {
			return nil, err
		}
		return seriesLookup{series: series, found: found}, nil
	}))
	if err != nil {
		return models.Series{}, false, err
	}
	return result.series, result.found, nil
}

// GetEpisodesBySeriesID returns a series' episodes through the circuit breaker.
func (bc *BreakerClient) GetEpisodesBySeriesID(ctx context.Context, seriesID int) ([]models.Episode, error) {
	return castResult[[]models.Episode](bc.execute(func() (interface{}, error) {
		return bc.client.GetEpisodesBySeriesID(ctx, seriesID)
	}))
}

// GetCalendar returns calendar entries through the circuit breaker.
func (bc *BreakerClient) GetCalendar(ctx context.Context, start, end time.Time) ([]models.Episode, error) {
	return castResult[[]models.Episode](bc.execute(func() (interface{}, error) {
		return bc.client.GetCalendar(ctx, start, end)
	}))
}

// Ping checks connectivity through the circuit breaker.
func (bc *BreakerClient) Ping(ctx context.Context) error {
	_, err := bc.execute(func() (interface{}, error) {
		return nil, bc.client.Ping(ctx)
	})
	return err
}

// stateToFloat converts circuit breaker state to a numeric value for metrics.
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to a label value.
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
