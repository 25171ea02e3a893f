package owm

import (
	"context"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/ngmaloney/weather-terminal/internal/models"
)

// StaticClient serves canned data from memory. Unknown cities are not found.
type StaticClient struct {
	mu        sync.Mutex
	current   map[string]models.CurrentConditions
	forecasts map[string]models.ForecastResult
	calls     []string
}

// NewStaticClient creates an empty static client
func NewStaticClient() *StaticClient {
	return &StaticClient{
		current:   make(map[string]models.CurrentConditions),
		forecasts: make(map[string]models.ForecastResult),
	}
}

// Add registers data for the city named in current
func (s *StaticClient) Add(current models.CurrentConditions, forecast models.ForecastResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := cityKey(current.City)
	s.current[key] = current
	s.forecasts[key] = forecast
}

// FetchCurrent implements Client
func (s *StaticClient) FetchCurrent(ctx context.Context, city string) (*models.CurrentConditions, error) {
	s.record(ResourceCurrent + ":" + city)
	if err := ctx.Err(); err != nil {
		return nil, &TransportError{City: city, Resource: ResourceCurrent, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.current[cityKey(city)]
	if !ok {
		return nil, &NotFoundError{City: city, Resource: ResourceCurrent}
	}
	return &c, nil
}

// FetchForecast implements Client
func (s *StaticClient) FetchForecast(ctx context.Context, city string) (*models.ForecastResult, error) {
	s.record(ResourceForecast + ":" + city)
	if err := ctx.Err(); err != nil {
		return nil, &TransportError{City: city, Resource: ResourceForecast, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.forecasts[cityKey(city)]
	if !ok {
		return nil, &NotFoundError{City: city, Resource: ResourceForecast}
	}
	f.Samples = append([]models.ForecastSample(nil), f.Samples...)
	return &f, nil
}

// Calls returns the requests made so far as "resource:city"
func (s *StaticClient) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func (s *StaticClient) record(call string) {
	s.mu.Lock()
	s.calls = append(s.calls, call)
	s.mu.Unlock()
}

func cityKey(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

// demoCity describes one city of the offline demo data set
type demoCity struct {
	name    string
	country string
	offset  int     // seconds east of UTC
	base    float64 // mean temperature
	swing   float64 // daily temperature swing
	wind    float64
	cond    string
	icon    string
}

var demoCities = []demoCity{
	{"Paris", "FR", 7200, 21, 6, 3.6, "scattered clouds", "03d"},
	{"Visakhapatnam", "IN", 19800, 30, 3, 5.1, "light rain", "10d"},
	{"Seattle", "US", -25200, 17, 5, 2.4, "overcast clouds", "04d"},
	{"Reykjavik", "IS", 0, 11, 2, 7.8, "broken clouds", "04d"},
}

// NewDemoClient returns a static client with five days of 3-hourly data for
// a handful of cities, starting at the 3 hour slot on or after now
func NewDemoClient(now time.Time) *StaticClient {
	s := NewStaticClient()
	start := now.UTC().Truncate(3 * time.Hour)
	if start.Before(now) {
		start = start.Add(3 * time.Hour)
	}

	for _, city := range demoCities {
		samples := make([]models.ForecastSample, 40)
		for i := range samples {
			ts := start.Add(time.Duration(i) * 3 * time.Hour)
			localHour := float64(ts.Add(time.Duration(city.offset) * time.Second).Hour())
			// Warmest mid afternoon, coolest before dawn
			phase := (localHour - 9) / 24 * 2 * math.Pi
			samples[i] = models.ForecastSample{
				Timestamp:    ts.Unix(),
				TemperatureC: math.Round((city.base+city.swing*math.Sin(phase))*100) / 100,
				WindSpeed:    math.Round((city.wind+float64(i%4)*0.4)*100) / 100,
				HumidityPct:  55 + (i*7)%35,
				Condition:    city.cond,
				IconID:       city.icon,
			}
		}

		s.Add(models.CurrentConditions{
			City:           city.name,
			Country:        city.country,
			TemperatureC:   city.base,
			Condition:      city.cond,
			IconID:         city.icon,
			WindSpeed:      city.wind,
			HumidityPct:    62,
			ObservedAt:     now.Add(-10 * time.Minute),
			TimezoneOffset: city.offset,
			FetchedAt:      now,
		}, models.ForecastResult{
			City:           city.name,
			Country:        city.country,
			TimezoneOffset: city.offset,
			Samples:        samples,
			FetchedAt:      now,
		})
	}

	return s
}

var (
	_ Client = (*HTTPClient)(nil)
	_ Client = (*StaticClient)(nil)
)
