// Package session owns one search's day-grouped forecast and selected day,
// and drives a Presenter as the selection changes.
package session

import (
	"errors"

	"github.com/ngmaloney/weather-terminal/internal/forecast"
	"github.com/ngmaloney/weather-terminal/internal/models"
)

var (
	// ErrRenderPrecondition means the presenter cannot display anything.
	// It is logged, never shown to the user.
	ErrRenderPrecondition = errors.New("presenter is not ready")

	// ErrEmptyCity is returned when the search text is blank
	ErrEmptyCity = errors.New("please enter a city name")
)

// Presenter displays a session. Implementations decide how.
type Presenter interface {
	// RenderCurrent shows the latest observation for the searched city
	RenderCurrent(c models.CurrentConditions)

	// RenderSummary shows location, date, temperature, condition and the
	// summary sentence for a day
	RenderSummary(city, country string, day models.DayBucket)

	// RenderHourlyTable shows one row per forecast sample of a day
	RenderHourlyTable(day models.DayBucket)

	// RenderNavigation enables or disables the day controls
	RenderNavigation(nav forecast.NavState)

	// RenderError shows a failure in place of weather data
	RenderError(message string)
}

// readier is implemented by presenters that need setup before rendering
type readier interface {
	Ready() error
}

// checkPresenter reports ErrRenderPrecondition for a missing or unready presenter
func checkPresenter(p Presenter) error {
	if p == nil {
		return ErrRenderPrecondition
	}
	if r, ok := p.(readier); ok {
		if err := r.Ready(); err != nil {
			return errors.Join(ErrRenderPrecondition, err)
		}
	}
	return nil
}
