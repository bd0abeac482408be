package main

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// mockWeatherService lets tests script each upstream call and count how often
// it was made. A nil func means the call is unexpected and returns zero values.
type mockWeatherService struct {
	currentByNameFunc         func(ctx context.Context, place string) (CurrentConditions, error)
	currentByCoordinatesFunc  func(ctx context.Context, lat, lon float64) (CurrentConditions, error)
	forecastByNameFunc        func(ctx context.Context, place string) ([]ForecastSample, error)
	forecastByCoordinatesFunc func(ctx context.Context, lat, lon float64) ([]ForecastSample, error)

	currentCalls  int
	forecastCalls int
}

func (m *mockWeatherService) CurrentByName(ctx context.Context, place string) (CurrentConditions, error) {
	m.currentCalls++
	if m.currentByNameFunc == nil {
		return CurrentConditions{}, nil
	}
	return m.currentByNameFunc(ctx, place)
}

func (m *mockWeatherService) CurrentByCoordinates(ctx context.Context, lat, lon float64) (CurrentConditions, error) {
	m.currentCalls++
	if m.currentByCoordinatesFunc == nil {
		return CurrentConditions{}, nil
	}
	return m.currentByCoordinatesFunc(ctx, lat, lon)
}

func (m *mockWeatherService) ForecastByName(ctx context.Context, place string) ([]ForecastSample, error) {
	m.forecastCalls++
	if m.forecastByNameFunc == nil {
		return nil, nil
	}
	return m.forecastByNameFunc(ctx, place)
}

func (m *mockWeatherService) ForecastByCoordinates(ctx context.Context, lat, lon float64) ([]ForecastSample, error) {
	m.forecastCalls++
	if m.forecastByCoordinatesFunc == nil {
		return nil, nil
	}
	return m.forecastByCoordinatesFunc(ctx, lat, lon)
}

// newTestConfig builds an apiConfig wired to the given mock, with a discarded
// logger and UTC labels so tests are deterministic everywhere.
func newTestConfig(weather WeatherService) *apiConfig {
	return &apiConfig{
		weather:    weather,
		state:      NewStateCell(),
		timezone:   time.UTC,
		defaultLat: -7.5755,
		defaultLon: 110.8243,
		port:       "8080",
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}
