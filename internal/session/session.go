package session

import (
	"github.com/ngmaloney/weather-terminal/internal/forecast"
	"github.com/ngmaloney/weather-terminal/internal/models"
)

// Result is what one successful search fetched
type Result struct {
	Current  models.CurrentConditions
	Forecast models.ForecastResult
}

// Session is the day-grouped forecast and selected day for one search.
// A new search replaces the whole session.
type Session struct {
	city    string
	country string
	current models.CurrentConditions
	days    models.DayBucketList
	nav     *forecast.Navigator
}

// New groups the result's forecast and selects the first day
func New(result Result, ref forecast.TimeReference) *Session {
	loc := ref.Location(result.Forecast.TimezoneOffset, result.Current.City)
	days := forecast.Group(result.Forecast.Samples, loc)

	country := result.Current.Country
	if country == "" {
		country = result.Forecast.Country
	}

	return &Session{
		city:    result.Current.City,
		country: country,
		current: result.Current,
		days:    days,
		nav:     forecast.NewNavigator(days),
	}
}

// City returns the city name reported by the service
func (s *Session) City() string {
	return s.city
}

// Country returns the country code reported by the service
func (s *Session) Country() string {
	return s.country
}

// Days returns the day buckets
func (s *Session) Days() models.DayBucketList {
	return s.days
}

// Current returns the selected day, or false when the forecast is empty
func (s *Session) Current() (models.DayBucket, bool) {
	return s.nav.Current()
}

// State returns the navigation state
func (s *Session) State() forecast.NavState {
	return s.nav.State()
}

// Show renders the current observation, the selected day and the controls
func (s *Session) Show(p Presenter) {
	p.RenderCurrent(s.current)
	s.showDay(p)
}

// SelectToday selects the first day and re-renders
func (s *Session) SelectToday(p Presenter) {
	s.nav.SelectToday()
	s.showDay(p)
}

// SelectTomorrow selects the second day, if any, and re-renders
func (s *Session) SelectTomorrow(p Presenter) {
	s.nav.SelectTomorrow()
	s.showDay(p)
}

// ToggleDay flips between today and tomorrow. From any later day it goes
// back to today.
func (s *Session) ToggleDay(p Presenter) {
	if s.nav.Index() == 0 {
		s.nav.SelectTomorrow()
	} else {
		s.nav.SelectToday()
	}
	s.showDay(p)
}

// Advance selects the next day and re-renders
func (s *Session) Advance(p Presenter) {
	s.nav.Advance()
	s.showDay(p)
}

// Retreat selects the previous day and re-renders
func (s *Session) Retreat(p Presenter) {
	s.nav.Retreat()
	s.showDay(p)
}

func (s *Session) showDay(p Presenter) {
	if day, ok := s.nav.Current(); ok {
		p.RenderSummary(s.city, s.country, day)
		p.RenderHourlyTable(day)
	}
	p.RenderNavigation(s.nav.State())
}
