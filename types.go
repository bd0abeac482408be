package main

import (
	"time"

	"github.com/google/uuid"
)

// Condition is the internal vocabulary for a weather condition category.
// Both mapping paths (icon token and free-text description) resolve into it.
type Condition string

const (
	ConditionClear        Condition = "clear"
	ConditionClouds       Condition = "clouds"
	ConditionRain         Condition = "rain"
	ConditionDrizzle      Condition = "drizzle"
	ConditionThunderstorm Condition = "thunderstorm"
	ConditionSnow         Condition = "snow"
	ConditionMist         Condition = "mist"
	ConditionUnknown      Condition = "unknown"
)

// CurrentConditions is the snapshot returned by the primary upstream call.
type CurrentConditions struct {
	PlaceName   string
	Temperature float64
	FeelsLike   float64
	Humidity    int32
	Category    Condition
	Description string
	Icon        string
}

// ForecastSample is one raw point of the upstream forecast series: an
// instantaneous temperature plus the day-scoped min/max the provider
// attaches to the same timestamp. Immutable once parsed.
type ForecastSample struct {
	Timestamp   time.Time
	Temperature float64
	TempMin     float64
	TempMax     float64
	Description string
	Icon        string
}

// HourlyPoint is a display-ready near-term forecast entry.
type HourlyPoint struct {
	Time        string
	Temperature int
	Icon        string
}

// DailyPoint is a display-ready per-calendar-day summary.
type DailyPoint struct {
	Day       string
	Condition string
	Icon      string
	HighTemp  int
	LowTemp   int
}

// LookupPhase enumerates the states of the single live lookup slot.
type LookupPhase string

const (
	PhaseIdle    LookupPhase = "idle"
	PhaseLoading LookupPhase = "loading"
	PhaseReady   LookupPhase = "ready"
	PhaseError   LookupPhase = "error"
)

// LookupSnapshot is the observable state of the current lookup. Exactly one
// is live at a time; a new lookup replaces it wholesale. Synthetic marks
// hourly/daily data produced by the fallback generator rather than parsed
// from a real forecast series.
type LookupSnapshot struct {
	Phase     LookupPhase
	LookupID  uuid.UUID
	Current   *CurrentConditions
	Hourly    []HourlyPoint
	Daily     []DailyPoint
	ErrorMsg  string
	Synthetic bool
}

type CurrentConditionsJSON struct {
	PlaceName   string  `json:"place_name"`
	Temperature float64 `json:"temperature_c"`
	FeelsLike   float64 `json:"feels_like_c"`
	Humidity    int32   `json:"humidity"`
	Condition   string  `json:"condition"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

type HourlyPointJSON struct {
	Time        string `json:"time"`
	Temperature int    `json:"temperature_c"`
	Icon        string `json:"icon"`
}

type DailyPointJSON struct {
	Day       string `json:"day"`
	Condition string `json:"condition"`
	Icon      string `json:"icon"`
	HighTemp  int    `json:"high_temp_c"`
	LowTemp   int    `json:"low_temp_c"`
}

type LookupStateResponse struct {
	Phase     string                 `json:"phase"`
	LookupID  string                 `json:"lookup_id,omitempty"`
	Error     string                 `json:"error,omitempty"`
	Synthetic bool                   `json:"synthetic"`
	Current   *CurrentConditionsJSON `json:"current,omitempty"`
	Hourly    []HourlyPointJSON      `json:"hourly"`
	Daily     []DailyPointJSON       `json:"daily"`
}
