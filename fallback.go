package main

// This file implements the fallback generator: a deterministic synthetic
// forecast derived solely from the current conditions, substituted when the
// forecast-series call fails or when no data exists at all. It is a display
// aid, not a forecasting model; callers mark its output as synthetic so it is
// never mistaken for real upstream data.

const (
	fallbackTemp        = 29
	fallbackDescription = "cloudy"
)

// fallbackDays is the fixed rotation for days 2-7 of the synthetic week.
// Day 1 is built separately because it reuses the real current condition.
var fallbackDays = []struct {
	day        string
	condition  Condition
	highOffset int
	lowOffset  int
}{
	{"Tomorrow", ConditionClear, 3, -5},
	{"Wednesday", ConditionDrizzle, 1, -4},
	{"Thursday", ConditionClouds, 2, -5},
	{"Friday", ConditionClear, 3, -4},
	{"Saturday", ConditionRain, 0, -6},
	{"Sunday", ConditionClear, 2, -5},
}

// fallbackForecast produces the synthetic hourly and daily lists from a
// current-conditions snapshot. A nil snapshot (nothing fetched at all) uses
// fixed defaults, so the output is deterministic in every case.
func fallbackForecast(current *CurrentConditions) ([]HourlyPoint, []DailyPoint) {
	temp := fallbackTemp
	description := fallbackDescription
	if current != nil {
		temp = int(current.Temperature)
		if current.Description != "" {
			description = current.Description
		}
	}
	nowGlyph := glyphForCondition(conditionFromDescription(description))

	hourly := []HourlyPoint{
		{Time: hourlyNowLabel, Temperature: temp, Icon: nowGlyph},
		{Time: "13.00", Temperature: temp + 1, Icon: glyphShowers},
		{Time: "14.00", Temperature: temp + 1, Icon: glyphShowers},
		{Time: "15.00", Temperature: temp + 1, Icon: glyphSun},
		{Time: "16.00", Temperature: temp, Icon: glyphSun},
	}

	daily := make([]DailyPoint, 0, dailyGroupCap)
	daily = append(daily, DailyPoint{
		Day:       dailyTodayLabel,
		Condition: description,
		Icon:      nowGlyph,
		HighTemp:  temp + 2,
		LowTemp:   temp - 6,
	})
	for _, entry := range fallbackDays {
		daily = append(daily, DailyPoint{
			Day:       entry.day,
			Condition: conditionLabel(entry.condition),
			Icon:      glyphForCondition(entry.condition),
			HighTemp:  temp + entry.highOffset,
			LowTemp:   temp + entry.lowOffset,
		})
	}

	return hourly, daily
}
