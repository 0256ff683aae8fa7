// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/garderobe

package models

import "time"

// WeatherCondition is a coarse sky condition classification.
type WeatherCondition string

const (
	// ConditionClear is sunny or mostly clear.
	ConditionClear WeatherCondition = "clear"
	// ConditionCloudy is overcast without precipitation.
	ConditionCloudy WeatherCondition = "cloudy"
	// ConditionRain is active or likely rain.
	ConditionRain WeatherCondition = "rain"
	// ConditionSnow is active or likely snow.
	ConditionSnow WeatherCondition = "snow"
)

// WeatherSnapshot is the weather context for one generation request.
// Produced by the weather provider, consumed read-only by the engine.
type WeatherSnapshot struct {
	// TemperatureC is the current temperature in Celsius.
	TemperatureC float64 `json:"temperature_c"`

	// FeelsLikeC is the apparent temperature in Celsius.
	FeelsLikeC float64 `json:"feels_like_c"`

	// PrecipitationPct is the precipitation probability (0-100).
	PrecipitationPct int `json:"precipitation_pct"`

	// WindKPH is the wind speed in km/h.
	WindKPH float64 `json:"wind_kph"`

	// Condition is the coarse sky condition.
	Condition WeatherCondition `json:"condition"`

	// RetrievedAt is when the snapshot was fetched.
	RetrievedAt time.Time `json:"retrieved_at,omitempty"`
}

// LayerBudget returns how many non-base layers (mid + outer) the weather
// supports. The outfit validator rejects candidates that exceed it.
func (w WeatherSnapshot) LayerBudget() int {
	t := w.FeelsLikeC
	if t == 0 && w.TemperatureC != 0 {
		t = w.TemperatureC
	}
	switch {
	case t < 5:
		return 3
	case t < 15:
		return 2
	case t < 24:
		return 1
	default:
		return 0
	}
}

// Wet reports whether precipitation is likely enough to matter for garment
// selection.
func (w WeatherSnapshot) Wet() bool {
	return w.Condition == ConditionRain || w.Condition == ConditionSnow || w.PrecipitationPct >= 50
}
