package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/time/rate"
)

// This file implements the upstream weather client. The application's core
// logic only sees the WeatherService interface, which keeps the orchestrator
// independent of the concrete provider and makes it trivial to mock in tests.

// WeatherService abstracts the two upstream endpoints, each addressable by
// place name or by coordinates.
type WeatherService interface {
	CurrentByName(ctx context.Context, place string) (CurrentConditions, error)
	CurrentByCoordinates(ctx context.Context, lat, lon float64) (CurrentConditions, error)
	ForecastByName(ctx context.Context, place string) ([]ForecastSample, error)
	ForecastByCoordinates(ctx context.Context, lat, lon float64) ([]ForecastSample, error)
}

// OWMWeatherService talks to the OpenWeatherMap HTTP API. All requests pass
// through a shared token-bucket limiter so a burst of lookups cannot blow the
// upstream quota.
type OWMWeatherService struct {
	apiKey      string
	weatherURL  string
	forecastURL string
	units       string
	httpClient  *http.Client
	limiter     *rate.Limiter
	logger      *slog.Logger
}

func NewOWMWeatherService(apiKey, weatherURL, forecastURL, units string, httpClient *http.Client, limiter *rate.Limiter, logger *slog.Logger) *OWMWeatherService {
	return &OWMWeatherService{
		apiKey:      apiKey,
		weatherURL:  weatherURL,
		forecastURL: forecastURL,
		units:       units,
		httpClient:  httpClient,
		limiter:     limiter,
		logger:      logger,
	}
}

func (s *OWMWeatherService) CurrentByName(ctx context.Context, place string) (CurrentConditions, error) {
	body, err := s.performRequest(ctx, "current", s.weatherURL, s.queryByName(place))
	if err != nil {
		return CurrentConditions{}, err
	}
	defer body.Close()
	return ParseCurrentConditions(body)
}

func (s *OWMWeatherService) CurrentByCoordinates(ctx context.Context, lat, lon float64) (CurrentConditions, error) {
	body, err := s.performRequest(ctx, "current", s.weatherURL, s.queryByCoordinates(lat, lon))
	if err != nil {
		return CurrentConditions{}, err
	}
	defer body.Close()
	return ParseCurrentConditions(body)
}

func (s *OWMWeatherService) ForecastByName(ctx context.Context, place string) ([]ForecastSample, error) {
	body, err := s.performRequest(ctx, "forecast", s.forecastURL, s.queryByName(place))
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return ParseForecastSeries(body)
}

func (s *OWMWeatherService) ForecastByCoordinates(ctx context.Context, lat, lon float64) ([]ForecastSample, error) {
	body, err := s.performRequest(ctx, "forecast", s.forecastURL, s.queryByCoordinates(lat, lon))
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return ParseForecastSeries(body)
}

func (s *OWMWeatherService) queryByName(place string) url.Values {
	params := url.Values{}
	params.Set("q", place)
	return params
}

func (s *OWMWeatherService) queryByCoordinates(lat, lon float64) url.Values {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', 4, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', 4, 64))
	return params
}

// performRequest handles one upstream call: rate-limiter admission, the HTTP
// round trip, and mapping failures into the error taxonomy. Transport errors
// (including the client timeout) surface as network-unreachable.
func (s *OWMWeatherService) performRequest(ctx context.Context, endpoint, baseURL string, params url.Values) (io.ReadCloser, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		upstreamRequestsTotal.WithLabelValues(endpoint, "throttled").Inc()
		return nil, fmt.Errorf("%w: local request budget exhausted: %v", ErrRateLimited, err)
	}

	params.Set("appid", s.apiKey)
	params.Set("units", s.units)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build upstream request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		upstreamRequestsTotal.WithLabelValues(endpoint, "transport_error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrNetworkUnreachable, err)
	}

	upstreamRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		s.logger.Warn("upstream request failed", "endpoint", endpoint, "status", resp.Status)
		return nil, classifyStatus(resp.StatusCode, resp.Status)
	}

	return resp.Body, nil
}
