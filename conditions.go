package main

import "strings"

// This file holds the two condition-mapping paths. The upstream API delivers
// both a compact icon token (2-digit code plus a day/night suffix) and a
// free-text description; the icon token is authoritative when present, the
// description matcher is the fallback for synthesized data that has no token.

const (
	glyphSun          = "☀️"
	glyphPartlyCloudy = "⛅"
	glyphCloud        = "☁️"
	glyphRain         = "🌧️"
	glyphShowers      = "🌦️"
	glyphThunder      = "⛈️"
	glyphSnow         = "❄️"
	glyphMist         = "🌫️"
)

// iconGlyphs maps upstream icon tokens to display glyphs. Day and night
// variants of the same physical condition share a glyph.
var iconGlyphs = map[string]string{
	"01d": glyphSun,
	"01n": glyphSun,
	"02d": glyphPartlyCloudy,
	"02n": glyphPartlyCloudy,
	"03d": glyphCloud,
	"03n": glyphCloud,
	"04d": glyphCloud,
	"04n": glyphCloud,
	"09d": glyphRain,
	"09n": glyphRain,
	"10d": glyphRain,
	"10n": glyphRain,
	"11d": glyphThunder,
	"11n": glyphThunder,
	"13d": glyphSnow,
	"13n": glyphSnow,
	"50d": glyphMist,
	"50n": glyphMist,
}

// glyphForIcon resolves an icon token to a glyph. Unknown tokens never fail;
// they get the generic partly-cloudy glyph.
func glyphForIcon(token string) string {
	if glyph, ok := iconGlyphs[token]; ok {
		return glyph
	}
	return glyphPartlyCloudy
}

// conditionKeywords is checked in order; the first keyword found in the
// description wins. Mist, fog and haze collapse into one category.
var conditionKeywords = []struct {
	keywords  []string
	condition Condition
}{
	{[]string{"clear"}, ConditionClear},
	{[]string{"cloud"}, ConditionClouds},
	{[]string{"rain"}, ConditionRain},
	{[]string{"drizzle"}, ConditionDrizzle},
	{[]string{"thunder"}, ConditionThunderstorm},
	{[]string{"snow"}, ConditionSnow},
	{[]string{"mist", "fog", "haze"}, ConditionMist},
}

// conditionFromDescription categorizes a free-text weather description by
// case-insensitive substring match.
func conditionFromDescription(description string) Condition {
	lowered := strings.ToLower(description)
	for _, entry := range conditionKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(lowered, keyword) {
				return entry.condition
			}
		}
	}
	return ConditionUnknown
}

var conditionLabels = map[Condition]string{
	ConditionClear:        "clear",
	ConditionClouds:       "cloudy",
	ConditionRain:         "rain",
	ConditionDrizzle:      "light rain",
	ConditionThunderstorm: "thunderstorm",
	ConditionSnow:         "snow",
	ConditionMist:         "mist",
	ConditionUnknown:      "unknown",
}

var conditionGlyphs = map[Condition]string{
	ConditionClear:        glyphSun,
	ConditionClouds:       glyphCloud,
	ConditionRain:         glyphRain,
	ConditionDrizzle:      glyphShowers,
	ConditionThunderstorm: glyphThunder,
	ConditionSnow:         glyphSnow,
	ConditionMist:         glyphMist,
}

func conditionLabel(c Condition) string {
	if label, ok := conditionLabels[c]; ok {
		return label
	}
	return conditionLabels[ConditionUnknown]
}

func glyphForCondition(c Condition) string {
	if glyph, ok := conditionGlyphs[c]; ok {
		return glyph
	}
	return glyphPartlyCloudy
}
