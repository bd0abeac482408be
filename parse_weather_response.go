package main

import (
	"encoding/json"
	"io"
	"time"
)

// ParseCurrentConditions decodes the upstream current-conditions payload into
// the domain snapshot. The condition category is derived from the upstream's
// own category text, with the longer description as a second chance when that
// field is absent.
func ParseCurrentConditions(body io.Reader) (CurrentConditions, error) {
	var response responseCurrentConditions

	if err := json.NewDecoder(body).Decode(&response); err != nil {
		return CurrentConditions{}, err
	}

	conditions := CurrentConditions{
		PlaceName:   response.Name,
		Temperature: response.Main.Temp,
		FeelsLike:   response.Main.FeelsLike,
		Humidity:    response.Main.Humidity,
		Category:    ConditionUnknown,
	}

	if len(response.Weather) > 0 {
		info := response.Weather[0]
		conditions.Description = info.Description
		conditions.Icon = info.Icon
		conditions.Category = conditionFromDescription(info.Main)
		if conditions.Category == ConditionUnknown {
			conditions.Category = conditionFromDescription(info.Description)
		}
	}

	return conditions, nil
}

// ParseForecastSeries decodes the upstream forecast payload into the raw
// sample series, keeping upstream order. Samples carry the first condition
// entry's description and icon token; samples without one stay blank and the
// icon mapper's unknown-token default covers them downstream.
func ParseForecastSeries(body io.Reader) ([]ForecastSample, error) {
	var response responseForecastSeries

	if err := json.NewDecoder(body).Decode(&response); err != nil {
		return nil, err
	}

	series := make([]ForecastSample, 0, len(response.List))
	for _, item := range response.List {
		sample := ForecastSample{
			Timestamp:   time.Unix(item.Dt, 0),
			Temperature: item.Main.Temp,
			TempMin:     item.Main.TempMin,
			TempMax:     item.Main.TempMax,
		}
		if len(item.Weather) > 0 {
			sample.Description = item.Weather[0].Description
			sample.Icon = item.Weather[0].Icon
		}
		series = append(series, sample)
	}

	return series, nil
}

// The following structs mirror the upstream API's JSON shapes and exist only
// for the decoder.
type responseCurrentConditions struct {
	Name    string          `json:"name"`
	Main    currentMain     `json:"main"`
	Weather []conditionInfo `json:"weather"`
}

type currentMain struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Humidity  int32   `json:"humidity"`
}

type responseForecastSeries struct {
	List []forecastItem `json:"list"`
}

type forecastItem struct {
	Dt      int64           `json:"dt"`
	Main    forecastMain    `json:"main"`
	Weather []conditionInfo `json:"weather"`
}

type forecastMain struct {
	Temp    float64 `json:"temp"`
	TempMin float64 `json:"temp_min"`
	TempMax float64 `json:"temp_max"`
}

type conditionInfo struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}
