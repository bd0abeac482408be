package main

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCurrent() CurrentConditions {
	return CurrentConditions{
		PlaceName:   "surakarta",
		Temperature: 29.4,
		FeelsLike:   33.1,
		Humidity:    70,
		Category:    ConditionClouds,
		Description: "broken clouds",
		Icon:        "04d",
	}
}

func testSeries() []ForecastSample {
	start := time.Date(2025, 8, 15, 9, 0, 0, 0, time.UTC)
	return seriesFrom(start, 8)
}

func TestLookupByNameSuccess(t *testing.T) {
	mock := &mockWeatherService{
		currentByNameFunc: func(ctx context.Context, place string) (CurrentConditions, error) {
			assert.Equal(t, "surakarta", place)
			return testCurrent(), nil
		},
		forecastByNameFunc: func(ctx context.Context, place string) ([]ForecastSample, error) {
			assert.Equal(t, "surakarta", place)
			return testSeries(), nil
		},
	}
	cfg := newTestConfig(mock)

	snap := cfg.LookupByName(context.Background(), "  Surakarta ")

	assert.Equal(t, PhaseReady, snap.Phase)
	assert.NotEqual(t, uuid.Nil, snap.LookupID)
	require.NotNil(t, snap.Current)
	assert.Equal(t, "surakarta", snap.Current.PlaceName)
	assert.False(t, snap.Synthetic)
	assert.Empty(t, snap.ErrorMsg)
	assert.Len(t, snap.Hourly, 5)
	assert.Len(t, snap.Daily, 2)

	published := cfg.state.Snapshot()
	assert.Equal(t, snap.Phase, published.Phase)
	assert.Equal(t, snap.LookupID, published.LookupID)
}

func TestLookupByNameBlank(t *testing.T) {
	for _, place := range []string{"", "   ", "\t\n"} {
		t.Run(fmt.Sprintf("input %q", place), func(t *testing.T) {
			mock := &mockWeatherService{}
			cfg := newTestConfig(mock)

			snap := cfg.LookupByName(context.Background(), place)

			assert.Equal(t, PhaseError, snap.Phase)
			assert.Equal(t, "Place name must not be empty", snap.ErrorMsg)
			assert.Nil(t, snap.Current)
			assert.Equal(t, 0, mock.currentCalls)
			assert.Equal(t, 0, mock.forecastCalls)
			assert.Equal(t, PhaseError, cfg.state.Snapshot().Phase)
		})
	}
}

func TestLookupByNamePrimaryFailure(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"unauthorized", ErrUnauthorized, "Invalid API key"},
		{"not found", ErrNotFound, "Location not found"},
		{"rate limited", ErrRateLimited, "Too many requests. Try again later."},
		{"network", ErrNetworkUnreachable, "Network error: check your internet connection"},
		{"wrapped", fmt.Errorf("fetching current conditions: %w", ErrNotFound), "Location not found"},
		{"unexpected", errors.New("boom"), "Unexpected error: boom"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mock := &mockWeatherService{
				currentByNameFunc: func(ctx context.Context, place string) (CurrentConditions, error) {
					return CurrentConditions{}, tc.err
				},
			}
			cfg := newTestConfig(mock)

			snap := cfg.LookupByName(context.Background(), "surakarta")

			assert.Equal(t, PhaseError, snap.Phase)
			assert.Equal(t, tc.wantMsg, snap.ErrorMsg)
			assert.Nil(t, snap.Current)
			assert.Empty(t, snap.Hourly)
			assert.Empty(t, snap.Daily)
			// The secondary call must not run after a primary failure.
			assert.Equal(t, 0, mock.forecastCalls)
		})
	}
}

func TestLookupByNameSecondaryFailureFallsBack(t *testing.T) {
	mock := &mockWeatherService{
		currentByNameFunc: func(ctx context.Context, place string) (CurrentConditions, error) {
			return testCurrent(), nil
		},
		forecastByNameFunc: func(ctx context.Context, place string) ([]ForecastSample, error) {
			return nil, ErrNetworkUnreachable
		},
	}
	cfg := newTestConfig(mock)

	snap := cfg.LookupByName(context.Background(), "surakarta")

	assert.Equal(t, PhaseReady, snap.Phase)
	assert.True(t, snap.Synthetic)
	assert.Empty(t, snap.ErrorMsg)
	require.NotNil(t, snap.Current)

	require.Len(t, snap.Hourly, 5)
	require.Len(t, snap.Daily, 7)
	assert.Equal(t, "broken clouds", snap.Daily[0].Condition)
	assert.Equal(t, 31, snap.Daily[0].HighTemp)
	assert.Equal(t, 23, snap.Daily[0].LowTemp)
}

func TestLookupByCoordinates(t *testing.T) {
	mock := &mockWeatherService{
		currentByCoordinatesFunc: func(ctx context.Context, lat, lon float64) (CurrentConditions, error) {
			assert.Equal(t, -7.5755, lat)
			assert.Equal(t, 110.8243, lon)
			return testCurrent(), nil
		},
		forecastByCoordinatesFunc: func(ctx context.Context, lat, lon float64) ([]ForecastSample, error) {
			assert.Equal(t, -7.5755, lat)
			assert.Equal(t, 110.8243, lon)
			return testSeries(), nil
		},
	}
	cfg := newTestConfig(mock)

	snap := cfg.LookupByCoordinates(context.Background(), -7.5755, 110.8243)

	assert.Equal(t, PhaseReady, snap.Phase)
	assert.Equal(t, 1, mock.currentCalls)
	assert.Equal(t, 1, mock.forecastCalls)
}

func TestLookupSupersededResultDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	slowMock := &mockWeatherService{
		currentByNameFunc: func(ctx context.Context, place string) (CurrentConditions, error) {
			close(started)
			<-release
			return CurrentConditions{PlaceName: "slow"}, nil
		},
		forecastByNameFunc: func(ctx context.Context, place string) ([]ForecastSample, error) {
			return testSeries(), nil
		},
	}
	cfg := newTestConfig(slowMock)

	done := make(chan LookupSnapshot, 1)
	go func() {
		done <- cfg.LookupByName(context.Background(), "slowtown")
	}()
	<-started

	// A newer lookup finishes while the first is still blocked upstream.
	fastMock := &mockWeatherService{
		currentByNameFunc: func(ctx context.Context, place string) (CurrentConditions, error) {
			return testCurrent(), nil
		},
		forecastByNameFunc: func(ctx context.Context, place string) ([]ForecastSample, error) {
			return testSeries(), nil
		},
	}
	cfg.weather = fastMock
	fastSnap := cfg.LookupByName(context.Background(), "surakarta")
	require.Equal(t, PhaseReady, fastSnap.Phase)

	close(release)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("superseded lookup did not finish")
	}

	// The stale result must not have overwritten the newer one.
	published := cfg.state.Snapshot()
	assert.Equal(t, fastSnap.LookupID, published.LookupID)
	require.NotNil(t, published.Current)
	assert.Equal(t, "surakarta", published.Current.PlaceName)
}

func TestLookupEntersLoadingBeforeFetch(t *testing.T) {
	cfg := newTestConfig(nil)
	mock := &mockWeatherService{
		currentByNameFunc: func(ctx context.Context, place string) (CurrentConditions, error) {
			// The loading phase must already be visible while the primary
			// call is in flight.
			assert.Equal(t, PhaseLoading, cfg.state.Snapshot().Phase)
			return testCurrent(), nil
		},
	}
	cfg.weather = mock

	snap := cfg.LookupByName(context.Background(), "surakarta")
	assert.Equal(t, PhaseReady, snap.Phase)
}
