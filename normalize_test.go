package main

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(ts time.Time, temp, tempMin, tempMax float64, description, icon string) ForecastSample {
	return ForecastSample{
		Timestamp:   ts,
		Temperature: temp,
		TempMin:     tempMin,
		TempMax:     tempMax,
		Description: description,
		Icon:        icon,
	}
}

// seriesFrom builds an evenly spaced series the way the upstream delivers it:
// one sample every three hours starting at the given instant.
func seriesFrom(start time.Time, count int) []ForecastSample {
	series := make([]ForecastSample, 0, count)
	for i := 0; i < count; i++ {
		ts := start.Add(time.Duration(i) * 3 * time.Hour)
		series = append(series, sample(ts, 20.0+float64(i), 15.0, 25.0, "scattered clouds", "03d"))
	}
	return series
}

func TestNormalizeForecastHourly(t *testing.T) {
	// 2025-08-15 is a Friday.
	start := time.Date(2025, 8, 15, 9, 0, 0, 0, time.UTC)
	hourly, _ := normalizeForecast(seriesFrom(start, 8), time.UTC)

	require.Len(t, hourly, 5)
	assert.Equal(t, "Now", hourly[0].Time)

	labelPattern := regexp.MustCompile(`^\d{2}\.\d{2}$`)
	wantLabels := []string{"12.00", "15.00", "18.00", "21.00"}
	for i, point := range hourly[1:] {
		assert.Regexp(t, labelPattern, point.Time)
		assert.Equal(t, wantLabels[i], point.Time)
	}

	for i, point := range hourly {
		assert.Equal(t, 20+i, point.Temperature)
		assert.Equal(t, glyphCloud, point.Icon)
	}
}

func TestNormalizeForecastHourlyShortSeries(t *testing.T) {
	start := time.Date(2025, 8, 15, 9, 0, 0, 0, time.UTC)
	for n := 0; n <= 6; n++ {
		hourly, _ := normalizeForecast(seriesFrom(start, n), time.UTC)
		assert.Len(t, hourly, min(5, n), "series length %d", n)
	}
}

func TestNormalizeForecastTruncatesTowardZero(t *testing.T) {
	start := time.Date(2025, 8, 15, 9, 0, 0, 0, time.UTC)
	series := []ForecastSample{
		sample(start, 21.9, -3.9, 21.9, "snow", "13d"),
		sample(start.Add(3*time.Hour), -3.9, -3.9, 21.9, "snow", "13d"),
	}

	hourly, daily := normalizeForecast(series, time.UTC)

	require.Len(t, hourly, 2)
	assert.Equal(t, 21, hourly[0].Temperature)
	assert.Equal(t, -3, hourly[1].Temperature)

	require.Len(t, daily, 1)
	assert.Equal(t, 21, daily[0].HighTemp)
	assert.Equal(t, -3, daily[0].LowTemp)
}

func TestNormalizeForecastDailyAggregation(t *testing.T) {
	day1 := time.Date(2025, 8, 15, 9, 0, 0, 0, time.UTC)  // Friday
	day2 := time.Date(2025, 8, 16, 0, 0, 0, 0, time.UTC)  // Saturday
	day3 := time.Date(2025, 8, 17, 12, 0, 0, 0, time.UTC) // Sunday

	series := []ForecastSample{
		// High/low must come from the per-sample max/min, not the
		// instantaneous temperature, and min/max are aggregated
		// independently of each other.
		sample(day1, 25.0, 20.0, 30.0, "light rain", "10d"),
		sample(day1.Add(3*time.Hour), 40.0, 22.0, 28.0, "clear sky", "01d"),
		sample(day2, 18.0, 12.5, 19.5, "snow", "13d"),
		sample(day3, 22.0, 16.0, 24.0, "mist", "50n"),
	}

	_, daily := normalizeForecast(series, time.UTC)
	require.Len(t, daily, 3)

	today := daily[0]
	assert.Equal(t, "Today", today.Day)
	assert.Equal(t, 30, today.HighTemp)
	assert.Equal(t, 20, today.LowTemp)
	// Condition comes from the first member of the group, not a vote.
	assert.Equal(t, "light rain", today.Condition)
	assert.Equal(t, glyphRain, today.Icon)

	assert.Equal(t, "Saturday", daily[1].Day)
	assert.Equal(t, glyphSnow, daily[1].Icon)
	assert.Equal(t, 19, daily[1].HighTemp)
	assert.Equal(t, 12, daily[1].LowTemp)

	assert.Equal(t, "Sunday", daily[2].Day)
	assert.Equal(t, glyphMist, daily[2].Icon)
}

func TestNormalizeForecastDailyCap(t *testing.T) {
	start := time.Date(2025, 8, 15, 9, 0, 0, 0, time.UTC)
	var series []ForecastSample
	for day := 0; day < 9; day++ {
		ts := start.Add(time.Duration(day) * 24 * time.Hour)
		series = append(series, sample(ts, 20.0, 15.0, 25.0, "clear sky", "01d"))
	}

	_, daily := normalizeForecast(series, time.UTC)
	assert.Len(t, daily, 7)
}

func TestNormalizeForecastDailyOrder(t *testing.T) {
	// Groups appear in first-seen order even when a later sample belongs to
	// an earlier date.
	day1 := time.Date(2025, 8, 15, 21, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 8, 16, 0, 0, 0, 0, time.UTC)

	series := []ForecastSample{
		sample(day1, 20.0, 15.0, 25.0, "clear sky", "01n"),
		sample(day2, 19.0, 14.0, 24.0, "few clouds", "02n"),
		sample(day1.Add(time.Hour), 21.0, 16.0, 26.0, "clear sky", "01n"),
	}

	_, daily := normalizeForecast(series, time.UTC)
	require.Len(t, daily, 2)
	assert.Equal(t, "Today", daily[0].Day)
	assert.Equal(t, "Saturday", daily[1].Day)
	assert.Equal(t, 26, daily[0].HighTemp)
	assert.Equal(t, 15, daily[0].LowTemp)
}

func TestNormalizeForecastEmptySeries(t *testing.T) {
	hourly, daily := normalizeForecast(nil, time.UTC)
	assert.Empty(t, hourly)
	assert.Empty(t, daily)

	hourly, daily = normalizeForecast([]ForecastSample{}, time.UTC)
	assert.Empty(t, hourly)
	assert.Empty(t, daily)
}

func TestNormalizeForecastLocalTimeLabels(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	start := time.Date(2025, 8, 15, 2, 0, 0, 0, time.UTC) // 09.00 WIB

	hourly, _ := normalizeForecast(seriesFrom(start, 2), jakarta)
	require.Len(t, hourly, 2)
	assert.Equal(t, "Now", hourly[0].Time)
	assert.Equal(t, "12.00", hourly[1].Time)
}

func TestWeekdayLabel(t *testing.T) {
	tests := []struct {
		dateKey string
		want    string
	}{
		{"2025-08-17", "Sunday"},
		{"2025-08-18", "Monday"},
		{"2025-08-19", "Tuesday"},
		{"2025-08-20", "Wednesday"},
		{"2025-08-21", "Thursday"},
		{"2025-08-22", "Friday"},
		{"2025-08-23", "Saturday"},
		{"not-a-date", "Today"},
		{"", "Today"},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("key %q", tc.dateKey), func(t *testing.T) {
			assert.Equal(t, tc.want, weekdayLabel(tc.dateKey))
		})
	}
}
