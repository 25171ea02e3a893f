package models

import (
	"fmt"
	"strings"
	"time"
)

// IconBaseURL is where OpenWeatherMap hosts its condition icons
const IconBaseURL = "https://openweathermap.org/img/wn"

// ForecastSample is a single forecast measurement from the upstream service
type ForecastSample struct {
	Timestamp    int64   // Unix seconds
	TemperatureC float64 // Celsius
	WindSpeed    float64 // m/s
	HumidityPct  int     // percent
	Condition    string  // e.g., "light rain", "clear sky"
	IconID       string  // e.g., "10d"
}

// Time returns the sample timestamp as a time.Time in UTC
func (s ForecastSample) Time() time.Time {
	return time.Unix(s.Timestamp, 0).UTC()
}

// IconURL returns the hosted icon image for the sample's condition
func (s ForecastSample) IconURL() string {
	return IconURL(s.IconID)
}

// CurrentConditions represents the latest observation for a city
type CurrentConditions struct {
	City           string
	Country        string // ISO 3166 code, e.g. "FR"
	TemperatureC   float64
	Condition      string
	IconID         string
	WindSpeed      float64 // m/s
	HumidityPct    int
	ObservedAt     time.Time
	TimezoneOffset int // seconds east of UTC for the city
	FetchedAt      time.Time
}

// IconURL returns the hosted icon image for the current condition
func (c CurrentConditions) IconURL() string {
	return IconURL(c.IconID)
}

// ForecastResult is the multi-day forecast returned for a city
type ForecastResult struct {
	City           string
	Country        string
	TimezoneOffset int              // seconds east of UTC for the city
	Samples        []ForecastSample // ordered as received, usually 3-hourly
	FetchedAt      time.Time
}

// IconURL builds the icon image URL for an icon id
func IconURL(iconID string) string {
	if iconID == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s@2x.png", IconBaseURL, iconID)
}

// Glyph maps an OpenWeatherMap icon id to a terminal glyph
func Glyph(iconID string) string {
	if len(iconID) < 2 {
		return "?"
	}
	switch iconID[:2] {
	case "01":
		if strings.HasSuffix(iconID, "n") {
			return "☾"
		}
		return "☀"
	case "02", "03", "04":
		return "☁"
	case "09", "10":
		return "☂"
	case "11":
		return "⚡"
	case "13":
		return "❄"
	case "50":
		return "≋"
	}
	return "?"
}
