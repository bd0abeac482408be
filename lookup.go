package main

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// This file contains the fetch orchestrator. Each user-triggered lookup runs
// the primary (current conditions) call and, only after its success, the
// secondary (forecast series) call. A failed secondary never fails the
// lookup: the fallback generator substitutes synthetic data and the lookup
// still reaches the ready phase. A failed primary surfaces one of the
// taxonomy messages and clears all forecast data.
//
// Lookups are tagged with a monotonically increasing sequence number. A
// result is only applied while its sequence number is still the newest, so
// at most one active lookup's outcome is ever observed even if a client
// fires overlapping requests.

const blankPlaceMessage = "Place name must not be empty"

// LookupByName runs a lookup for a user-typed place name. Blank or
// whitespace-only input moves straight to the error phase without touching
// the network.
func (cfg *apiConfig) LookupByName(ctx context.Context, place string) LookupSnapshot {
	normalized, err := normalizePlaceName(place)
	if err != nil || normalized == "" {
		// Still counts as a new lookup: it supersedes anything in flight.
		cfg.lookupSeq.Add(1)
		lookupsTotal.WithLabelValues("rejected").Inc()
		snap := LookupSnapshot{Phase: PhaseError, LookupID: uuid.New(), ErrorMsg: blankPlaceMessage}
		cfg.state.publish(snap)
		return snap
	}

	return cfg.runLookup(ctx, "name", func(ctx context.Context) (CurrentConditions, error) {
		return cfg.weather.CurrentByName(ctx, normalized)
	}, func(ctx context.Context) ([]ForecastSample, error) {
		return cfg.weather.ForecastByName(ctx, normalized)
	})
}

// LookupByCoordinates runs a lookup for caller-supplied coordinates.
// Resolving actual device coordinates is the host platform's business; the
// orchestrator only ever sees numbers.
func (cfg *apiConfig) LookupByCoordinates(ctx context.Context, lat, lon float64) LookupSnapshot {
	return cfg.runLookup(ctx, "coordinates", func(ctx context.Context) (CurrentConditions, error) {
		return cfg.weather.CurrentByCoordinates(ctx, lat, lon)
	}, func(ctx context.Context) ([]ForecastSample, error) {
		return cfg.weather.ForecastByCoordinates(ctx, lat, lon)
	})
}

func (cfg *apiConfig) runLookup(
	ctx context.Context,
	trigger string,
	fetchCurrent func(context.Context) (CurrentConditions, error),
	fetchForecast func(context.Context) ([]ForecastSample, error),
) LookupSnapshot {
	seq := cfg.lookupSeq.Add(1)
	id := uuid.New()
	started := time.Now()
	cfg.logger.Debug("lookup started", "lookup_id", id, "trigger", trigger)

	// Entering loading discards any previous ready/error state immediately,
	// before any network activity.
	cfg.state.publish(LookupSnapshot{Phase: PhaseLoading, LookupID: id})

	current, err := fetchCurrent(ctx)
	if err != nil {
		msg := lookupErrorMessage(err)
		cfg.logger.Warn("lookup failed", "lookup_id", id, "error", err, "message", msg)
		return cfg.applyIfCurrent(seq, "error", LookupSnapshot{
			Phase:    PhaseError,
			LookupID: id,
			ErrorMsg: msg,
		})
	}

	snap := LookupSnapshot{
		Phase:    PhaseReady,
		LookupID: id,
		Current:  &current,
	}

	series, err := fetchForecast(ctx)
	outcome := "ready"
	if err != nil {
		// Recovered locally: the user sees a synthetic forecast, not an error.
		cfg.logger.Warn("forecast series unavailable, using fallback", "lookup_id", id, "error", err)
		snap.Hourly, snap.Daily = fallbackForecast(&current)
		snap.Synthetic = true
		outcome = "ready_fallback"
	} else {
		snap.Hourly, snap.Daily = normalizeForecast(series, cfg.timezone)
	}

	cfg.logger.Info("lookup finished",
		"lookup_id", id,
		"place", current.PlaceName,
		"synthetic", snap.Synthetic,
		"hourly", len(snap.Hourly),
		"daily", len(snap.Daily),
		"duration", time.Since(started).String(),
	)
	return cfg.applyIfCurrent(seq, outcome, snap)
}

// applyIfCurrent publishes a finished lookup's state only while its sequence
// number is still the newest one issued; a superseded result is discarded
// silently and the caller gets the result back without it becoming visible.
func (cfg *apiConfig) applyIfCurrent(seq uint64, outcome string, snap LookupSnapshot) LookupSnapshot {
	if cfg.lookupSeq.Load() != seq {
		cfg.logger.Debug("discarding superseded lookup result", "lookup_id", snap.LookupID)
		lookupsTotal.WithLabelValues("superseded").Inc()
		return snap
	}
	lookupsTotal.WithLabelValues(outcome).Inc()
	cfg.state.publish(snap)
	return snap
}
