package owm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the OpenWeatherMap 2.5 API root
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

// HTTPClient implements Client using the OpenWeatherMap API
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	userAgent  string
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	validate   *validator.Validate
	now        func() time.Time
}

// Option configures an HTTPClient
type Option func(*HTTPClient)

// WithBaseURL points the client at a different API root
func WithBaseURL(baseURL string) Option {
	return func(c *HTTPClient) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithTimeout sets the per-request HTTP timeout
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRateLimit caps outgoing requests; rps <= 0 disables limiting
func WithRateLimit(rps float64, burst int) Option {
	return func(c *HTTPClient) {
		limit := rate.Limit(rps)
		if rps <= 0 {
			limit = rate.Inf
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(limit, burst)
	}
}

// NewWeatherClient creates a new OpenWeatherMap client
func NewWeatherClient(apiKey string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		userAgent: "WeatherTerminal/1.0 (github.com/ngmaloney/weather-terminal)",
		// Free tier allows 60 calls per minute
		limiter:  rate.NewLimiter(rate.Limit(1), 2),
		validate: validator.New(),
		now:      time.Now,
	}

	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweathermap",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchCurrent retrieves the current conditions for a city
func (c *HTTPClient) FetchCurrent(ctx context.Context, city string) (*models.CurrentConditions, error) {
	var payload currentResponse
	if err := c.get(ctx, "weather", city, ResourceCurrent, &payload); err != nil {
		return nil, err
	}

	conditions := &models.CurrentConditions{
		City:           payload.Name,
		Country:        payload.Sys.Country,
		TemperatureC:   payload.Main.Temp,
		Condition:      payload.Weather[0].Description,
		IconID:         payload.Weather[0].Icon,
		WindSpeed:      payload.Wind.Speed,
		HumidityPct:    payload.Main.Humidity,
		ObservedAt:     time.Unix(payload.Dt, 0).UTC(),
		TimezoneOffset: payload.Timezone,
		FetchedAt:      c.now(),
	}

	return conditions, nil
}

// FetchForecast retrieves the 5 day, 3-hourly forecast for a city
func (c *HTTPClient) FetchForecast(ctx context.Context, city string) (*models.ForecastResult, error) {
	var payload forecastResponse
	if err := c.get(ctx, "forecast", city, ResourceForecast, &payload); err != nil {
		return nil, err
	}

	result := &models.ForecastResult{
		City:           payload.City.Name,
		Country:        payload.City.Country,
		TimezoneOffset: payload.City.Timezone,
		Samples:        make([]models.ForecastSample, 0, len(payload.List)),
		FetchedAt:      c.now(),
	}

	for _, item := range payload.List {
		result.Samples = append(result.Samples, models.ForecastSample{
			Timestamp:    item.Dt,
			TemperatureC: item.Main.Temp,
			WindSpeed:    item.Wind.Speed,
			HumidityPct:  item.Main.Humidity,
			Condition:    item.Weather[0].Description,
			IconID:       item.Weather[0].Icon,
		})
	}

	return result, nil
}

// get performs one rate limited, breaker guarded request and decodes the
// validated payload into out
func (c *HTTPClient) get(ctx context.Context, endpoint, city, resource string, out interface{}) error {
	if c.apiKey == "" {
		return ErrMissingAPIKey
	}

	transportErr := func(status int, err error) error {
		return &TransportError{City: city, Resource: resource, StatusCode: status, Err: err}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return transportErr(0, fmt.Errorf("rate limit wait canceled: %w", err))
	}

	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")
	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())

	result, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", resource, err)
		}

		// An unknown city is a valid answer, not a service failure
		if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNotFound {
			return resp, nil
		}

		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &statusError{code: resp.StatusCode, body: strings.TrimSpace(string(body))}
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return transportErr(0, fmt.Errorf("circuit breaker open: %w", err))
		}
		var se *statusError
		if errors.As(err, &se) {
			return transportErr(se.code, err)
		}
		return transportErr(0, err)
	}

	resp := result.(*http.Response)
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return &NotFoundError{City: city, Resource: resource}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return transportErr(resp.StatusCode, fmt.Errorf("failed to decode response: %w", err))
	}
	if err := c.validate.Struct(out); err != nil {
		return transportErr(resp.StatusCode, fmt.Errorf("invalid response: %w", err))
	}

	return nil
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	if e.body == "" {
		return fmt.Sprintf("API returned status %d", e.code)
	}
	return fmt.Sprintf("API returned status %d: %s", e.code, e.body)
}

// Internal types for OpenWeatherMap API responses

type mainBlock struct {
	Temp     float64 `json:"temp"`
	Humidity int     `json:"humidity" validate:"gte=0,lte=100"`
}

type windBlock struct {
	Speed float64 `json:"speed" validate:"gte=0"`
}

type conditionBlock struct {
	Main        string `json:"main"`
	Description string `json:"description" validate:"required"`
	Icon        string `json:"icon" validate:"required"`
}

type currentResponse struct {
	Dt       int64  `json:"dt" validate:"gt=0"`
	Timezone int    `json:"timezone"`
	Name     string `json:"name" validate:"required"`
	Sys      struct {
		Country string `json:"country"`
	} `json:"sys"`
	Main    mainBlock        `json:"main"`
	Wind    windBlock        `json:"wind"`
	Weather []conditionBlock `json:"weather" validate:"min=1,dive"`
}

type forecastItem struct {
	Dt      int64            `json:"dt" validate:"gt=0"`
	Main    mainBlock        `json:"main"`
	Wind    windBlock        `json:"wind"`
	Weather []conditionBlock `json:"weather" validate:"min=1,dive"`
	DtTxt   string           `json:"dt_txt"`
}

type forecastResponse struct {
	List []forecastItem `json:"list" validate:"dive"`
	City struct {
		Name     string `json:"name" validate:"required"`
		Country  string `json:"country"`
		Timezone int    `json:"timezone"`
	} `json:"city"`
}
