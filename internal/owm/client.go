// Package owm fetches current conditions and forecasts from OpenWeatherMap.
package owm

import (
	"context"

	"github.com/ngmaloney/weather-terminal/internal/models"
)

// Client defines the interface for fetching weather data for a city
type Client interface {
	// FetchCurrent retrieves the current conditions for a city
	FetchCurrent(ctx context.Context, city string) (*models.CurrentConditions, error)

	// FetchForecast retrieves the multi-day 3-hourly forecast for a city
	FetchForecast(ctx context.Context, city string) (*models.ForecastResult, error)
}
