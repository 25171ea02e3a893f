package owm

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches any NotFoundError
	ErrNotFound = errors.New("not found")

	// ErrTransport matches any TransportError
	ErrTransport = errors.New("transport error")

	// ErrMissingAPIKey is returned before any request when no key is configured
	ErrMissingAPIKey = errors.New("openweathermap api key is not configured")
)

// Resource names used in errors and logs
const (
	ResourceCurrent  = "current weather"
	ResourceForecast = "forecast"
)

// NotFoundError means the service does not recognize the city
type NotFoundError struct {
	City     string
	Resource string
}

func (e *NotFoundError) Error() string {
	if e.Resource == ResourceForecast {
		return fmt.Sprintf("forecast for %q not found", e.City)
	}
	return fmt.Sprintf("city %q not found", e.City)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// TransportError means the request failed on the network or the service
// answered with something unusable
type TransportError struct {
	City       string
	Resource   string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fetching %s for %q: %v", e.Resource, e.City, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}
