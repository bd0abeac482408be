package main

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

type apiConfig struct {
	weather    WeatherService
	state      *StateCell
	lookupSeq  atomic.Uint64
	timezone   *time.Location
	defaultLat float64
	defaultLon float64
	port       string
	devMode    bool
	logger     *slog.Logger
}

// getRequiredEnv retrieves an environment variable by key, and fatals if it's not set.
func getRequiredEnv(key string, logger *slog.Logger) string {
	val, ok := os.LookupEnv(key)
	if !ok {
		logger.Error("environment variable must be set", "key", key)
		os.Exit(1)
	}
	return val
}

// getEnv retrieves an environment variable by key, with a fallback value.
func getEnv(key, fallback string, logger *slog.Logger) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	logger.Info("environment variable not set, using fallback", "key", key, "fallback", fallback)
	return fallback
}

// getEnvAsFloat retrieves an environment variable as a float, with a fallback value.
func getEnvAsFloat(key string, fallback float64, logger *slog.Logger) float64 {
	valStr, ok := os.LookupEnv(key)
	if !ok {
		logger.Info("environment variable not set, using fallback", "key", key, "fallback", fallback)
		return fallback
	}
	val, err := strconv.ParseFloat(valStr, 64)
	if err != nil {
		logger.Warn("invalid float value for environment variable, using fallback", "key", key, "value", valStr, "error", err)
		return fallback
	}
	return val
}

func config() *apiConfig {
	devModeStr := os.Getenv("DEV_MODE")
	devMode, err := strconv.ParseBool(devModeStr)
	if err != nil {
		devMode = false
	}

	var logger *slog.Logger
	if devMode {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	} else {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, relying on environment variables")
	}

	owmKey := getRequiredEnv("OWM_KEY", logger)
	weatherURL := getEnv("OWM_WEATHER_URL", "https://api.openweathermap.org/data/2.5/weather", logger)
	forecastURL := getEnv("OWM_FORECAST_URL", "https://api.openweathermap.org/data/2.5/forecast", logger)
	units := getEnv("OWM_UNITS", "metric", logger)
	upstreamRPS := getEnvAsFloat("OWM_REQUESTS_PER_SECOND", 1.0, logger)

	httpClient := &http.Client{
		Timeout: 10 * time.Second,
	}
	limiter := rate.NewLimiter(rate.Limit(upstreamRPS), 2)

	cfg := &apiConfig{
		weather:    NewOWMWeatherService(owmKey, weatherURL, forecastURL, units, httpClient, limiter, logger),
		state:      NewStateCell(),
		timezone:   time.Local,
		defaultLat: getEnvAsFloat("DEFAULT_LAT", -7.5755, logger),
		defaultLon: getEnvAsFloat("DEFAULT_LON", 110.8243, logger),
		port:       getEnv("PORT", "8080", logger),
		devMode:    devMode,
		logger:     logger,
	}

	return cfg
}
