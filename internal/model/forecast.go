package model

import (
	"strings"
	"time"
)

// WeatherType buckets a CWA weather description into one of the five
// categories the display layer knows how to render.
type WeatherType string

const (
	WeatherSunny    WeatherType = "晴"
	WeatherRain     WeatherType = "雨"
	WeatherOvercast WeatherType = "陰"
	WeatherCloudy   WeatherType = "多雲"
	WeatherSnow     WeatherType = "雪"
)

// ClassifyWeather maps a raw CWA description like "晴時多雲偶陣雨" to a
// WeatherType. The first keyword found wins, so "晴時多雲" stays sunny.
func ClassifyWeather(desc string) WeatherType {
	switch {
	case strings.Contains(desc, "晴"):
		return WeatherSunny
	case strings.Contains(desc, "雨"), strings.Contains(desc, "雷"):
		return WeatherRain
	case strings.Contains(desc, "陰"):
		return WeatherOvercast
	case strings.Contains(desc, "雲"):
		return WeatherCloudy
	case strings.Contains(desc, "雪"):
		return WeatherSnow
	}
	return WeatherSunny
}

// Forecast is the parsed measurement payload for one station.
type Forecast struct {
	Station     string      `json:"station"`
	Description string      `json:"description"`
	WeatherType WeatherType `json:"weather_type"`
	// RainChance is the PoP percentage for the slot, -1 when the upstream
	// response carried no PoP element.
	RainChance int       `json:"rain_chance"`
	SlotStart  time.Time `json:"slot_start"`
	SlotEnd    time.Time `json:"slot_end"`
	FetchedAt  time.Time `json:"fetched_at"`
	Cached     bool      `json:"cached"`
}
