package main

import "time"

// This file implements the forecast normalizer: the pure transformation from
// the upstream's flat, fixed-interval sample series into the two display
// views, a capped near-term hourly list and a day-bucketed daily summary.

const (
	hourlyNowLabel  = "Now"
	dailyTodayLabel = "Today"

	hourlyPointCap = 5
	dailyGroupCap  = 7

	dateKeyLayout   = "2006-01-02"
	hourLabelLayout = "15.04"
)

// normalizeForecast converts a raw forecast series into hourly and daily
// display points. It is deterministic for a fixed series and time zone and
// never invents samples: an empty series yields empty lists, and substituting
// synthetic data is the caller's business.
func normalizeForecast(series []ForecastSample, loc *time.Location) ([]HourlyPoint, []DailyPoint) {
	return hourlyView(series, loc), dailyView(series, loc)
}

// hourlyView takes the first five samples in series order. The first one is
// labeled with the fixed "Now" sentinel regardless of its timestamp; the rest
// carry a zero-padded 24-hour clock label in local time. Temperatures are
// truncated toward zero.
func hourlyView(series []ForecastSample, loc *time.Location) []HourlyPoint {
	count := min(hourlyPointCap, len(series))
	hourly := make([]HourlyPoint, 0, count)
	for i, sample := range series[:count] {
		label := hourlyNowLabel
		if i > 0 {
			label = sample.Timestamp.In(loc).Format(hourLabelLayout)
		}
		hourly = append(hourly, HourlyPoint{
			Time:        label,
			Temperature: int(sample.Temperature),
			Icon:        glyphForIcon(sample.Icon),
		})
	}
	return hourly
}

// dailyView groups samples by local calendar date in first-seen order, keeping
// at most seven groups. The group high is the max over the members' per-sample
// maxima and the low the min over their minima; upstream does not guarantee
// any ordering between the two, so they are computed independently. Condition
// text and icon come from the first member of the group.
func dailyView(series []ForecastSample, loc *time.Location) []DailyPoint {
	var dateOrder []string
	groups := make(map[string][]ForecastSample)
	for _, sample := range series {
		key := sample.Timestamp.In(loc).Format(dateKeyLayout)
		if _, seen := groups[key]; !seen {
			dateOrder = append(dateOrder, key)
		}
		groups[key] = append(groups[key], sample)
	}

	count := min(dailyGroupCap, len(dateOrder))
	daily := make([]DailyPoint, 0, count)
	for i, key := range dateOrder[:count] {
		members := groups[key]
		high := members[0].TempMax
		low := members[0].TempMin
		for _, member := range members[1:] {
			high = max(high, member.TempMax)
			low = min(low, member.TempMin)
		}

		label := dailyTodayLabel
		if i > 0 {
			label = weekdayLabel(key)
		}

		first := members[0]
		daily = append(daily, DailyPoint{
			Day:       label,
			Condition: first.Description,
			Icon:      glyphForIcon(first.Icon),
			HighTemp:  int(high),
			LowTemp:   int(low),
		})
	}
	return daily
}

// weekdayLabel parses a date key back into a weekday name. A malformed key
// falls back to the "Today" label instead of failing the aggregation.
func weekdayLabel(dateKey string) string {
	date, err := time.Parse(dateKeyLayout, dateKey)
	if err != nil {
		return dailyTodayLabel
	}
	switch date.Weekday() {
	case time.Sunday:
		return "Sunday"
	case time.Monday:
		return "Monday"
	case time.Tuesday:
		return "Tuesday"
	case time.Wednesday:
		return "Wednesday"
	case time.Thursday:
		return "Thursday"
	case time.Friday:
		return "Friday"
	case time.Saturday:
		return "Saturday"
	default:
		return dailyTodayLabel
	}
}
