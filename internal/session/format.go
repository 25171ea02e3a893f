package session

import (
	"fmt"
	"math"
	"strconv"

	"github.com/ngmaloney/weather-terminal/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Display layouts shared by presenters
const (
	DateLayout  = "Monday, January 2, 2006"
	ClockLayout = "3:04 PM"
)

// RoundTemp rounds a temperature to whole degrees
func RoundTemp(c float64) int {
	return int(math.Round(c))
}

// FormatWind prints a wind speed without trailing zeros
func FormatWind(speed float64) string {
	return strconv.FormatFloat(speed, 'f', -1, 64)
}

// FormatDate formats a sample's date in the day's zone
func FormatDate(day models.DayBucket, s models.ForecastSample) string {
	return s.Time().In(day.Zone()).Format(DateLayout)
}

// FormatClock formats a sample's time of day in the day's zone
func FormatClock(day models.DayBucket, s models.ForecastSample) string {
	return s.Time().In(day.Zone()).Format(ClockLayout)
}

// SummarySentence describes the first sample of a day in one sentence
func SummarySentence(day models.DayBucket) string {
	s, ok := day.First()
	if !ok {
		return ""
	}
	return fmt.Sprintf("Expect %s, temperature around %d°C, wind speed of %s m/s, and humidity at %d%%.",
		s.Condition, RoundTemp(s.TemperatureC), FormatWind(s.WindSpeed), s.HumidityPct)
}

// LocationLabel joins city and country the way the header shows them
func LocationLabel(city, country string) string {
	if country == "" {
		return city
	}
	return fmt.Sprintf("%s, %s", city, country)
}

// TitleCaser returns a title caser for a BCP 47 locale, English if invalid
func TitleCaser(locale string) cases.Caser {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return cases.Title(tag)
}
