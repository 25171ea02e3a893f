package owm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// newTestClient points a client at server with rate limiting disabled
func newTestClient(serverURL string) *HTTPClient {
	return NewWeatherClient("test-key", WithBaseURL(serverURL), WithRateLimit(0, 1))
}

func TestNewWeatherClient(t *testing.T) {
	client := NewWeatherClient("abc")

	if client == nil {
		t.Fatal("NewWeatherClient() returned nil")
	}

	if client.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %s, want %s", client.baseURL, DefaultBaseURL)
	}

	if client.httpClient.Timeout != 10*time.Second {
		t.Errorf("timeout = %v, want 10s", client.httpClient.Timeout)
	}

	if client.userAgent == "" {
		t.Error("userAgent should not be empty")
	}

	client = NewWeatherClient("abc", WithBaseURL("http://localhost:9999/"), WithTimeout(3*time.Second))
	if client.baseURL != "http://localhost:9999" {
		t.Errorf("baseURL = %s, want trailing slash trimmed", client.baseURL)
	}
	if client.httpClient.Timeout != 3*time.Second {
		t.Errorf("timeout = %v, want 3s", client.httpClient.Timeout)
	}
}

func TestHTTPClient_FetchCurrent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/weather" {
			t.Errorf("path = %s, want /weather", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "Paris" {
			t.Errorf("q = %s, want Paris", q.Get("q"))
		}
		if q.Get("appid") != "test-key" {
			t.Errorf("appid = %s, want test-key", q.Get("appid"))
		}
		if q.Get("units") != "metric" {
			t.Errorf("units = %s, want metric", q.Get("units"))
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("User-Agent header not set")
		}

		data, _ := os.ReadFile("../../testdata/owm_current_response.json")
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	fetchedAt := time.Date(2025, 8, 6, 16, 5, 0, 0, time.UTC)
	client.now = func() time.Time { return fetchedAt }

	conditions, err := client.FetchCurrent(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("FetchCurrent() error = %v", err)
	}

	if conditions.City != "Paris" || conditions.Country != "FR" {
		t.Errorf("location = %s, %s, want Paris, FR", conditions.City, conditions.Country)
	}
	if conditions.TemperatureC != 22.61 {
		t.Errorf("TemperatureC = %v, want 22.61", conditions.TemperatureC)
	}
	if conditions.Condition != "scattered clouds" || conditions.IconID != "03d" {
		t.Errorf("condition = %s/%s, want scattered clouds/03d", conditions.Condition, conditions.IconID)
	}
	if conditions.HumidityPct != 58 || conditions.WindSpeed != 3.6 {
		t.Errorf("humidity/wind = %d/%v, want 58/3.6", conditions.HumidityPct, conditions.WindSpeed)
	}
	if conditions.TimezoneOffset != 7200 {
		t.Errorf("TimezoneOffset = %d, want 7200", conditions.TimezoneOffset)
	}
	if !conditions.ObservedAt.Equal(time.Unix(1754496000, 0)) {
		t.Errorf("ObservedAt = %v", conditions.ObservedAt)
	}
	if !conditions.FetchedAt.Equal(fetchedAt) {
		t.Errorf("FetchedAt = %v, want %v", conditions.FetchedAt, fetchedAt)
	}
}

func TestHTTPClient_FetchForecast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/forecast" {
			t.Errorf("path = %s, want /forecast", r.URL.Path)
		}
		data, _ := os.ReadFile("../../testdata/owm_forecast_response.json")
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	forecast, err := client.FetchForecast(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("FetchForecast() error = %v", err)
	}

	if forecast.City != "Paris" || forecast.Country != "FR" || forecast.TimezoneOffset != 7200 {
		t.Errorf("city = %+v", forecast)
	}

	if len(forecast.Samples) != 12 {
		t.Fatalf("len(Samples) = %d, want 12", len(forecast.Samples))
	}

	first := forecast.Samples[0]
	if first.Timestamp != 1754438400 {
		t.Errorf("first Timestamp = %d, want 1754438400", first.Timestamp)
	}
	if first.TemperatureC != 18.0 || first.HumidityPct != 70 || first.WindSpeed != 2.1 {
		t.Errorf("first sample = %+v", first)
	}
	if first.Condition != "clear sky" || first.IconID != "01n" {
		t.Errorf("first condition = %s/%s, want clear sky/01n", first.Condition, first.IconID)
	}

	for i := 1; i < len(forecast.Samples); i++ {
		if forecast.Samples[i].Timestamp <= forecast.Samples[i-1].Timestamp {
			t.Errorf("samples out of order at %d", i)
		}
	}
}

func TestHTTPClient_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"cod":"404","message":"city not found"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.FetchCurrent(context.Background(), "Nowhereville")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("FetchCurrent() error = %v, want ErrNotFound", err)
	}
	if err.Error() != `city "Nowhereville" not found` {
		t.Errorf("error message = %q", err.Error())
	}

	_, err = client.FetchForecast(context.Background(), "Nowhereville")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("FetchForecast() error = %v, want ErrNotFound", err)
	}
	if err.Error() != `forecast for "Nowhereville" not found` {
		t.Errorf("error message = %q", err.Error())
	}
}

func TestHTTPClient_ErrorHandling(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		wantStatus int
	}{
		{"401 bad key", http.StatusUnauthorized, `{"cod":401}`, http.StatusUnauthorized},
		{"500 server error", http.StatusInternalServerError, "error", http.StatusInternalServerError},
		{"503 unavailable", http.StatusServiceUnavailable, "", http.StatusServiceUnavailable},
		{"malformed json", http.StatusOK, "{not json", http.StatusOK},
		{"missing weather entries", http.StatusOK, `{"dt":1754496000,"name":"Paris","weather":[]}`, http.StatusOK},
		{"missing city name", http.StatusOK, `{"dt":1754496000,"weather":[{"description":"clear sky","icon":"01d"}]}`, http.StatusOK},
		{"humidity out of range", http.StatusOK, `{"dt":1754496000,"name":"Paris","main":{"humidity":140},"weather":[{"description":"clear sky","icon":"01d"}]}`, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(server.URL)

			_, err := client.FetchCurrent(context.Background(), "Paris")
			if !errors.Is(err, ErrTransport) {
				t.Fatalf("error = %v, want ErrTransport", err)
			}
			if errors.Is(err, ErrNotFound) {
				t.Error("transport error should not match ErrNotFound")
			}

			var te *TransportError
			if !errors.As(err, &te) {
				t.Fatalf("error %T is not a *TransportError", err)
			}
			if te.StatusCode != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", te.StatusCode, tt.wantStatus)
			}
			if !strings.Contains(err.Error(), "Paris") {
				t.Errorf("error %q should name the city", err.Error())
			}
		})
	}
}

func TestHTTPClient_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := newTestClient(url)

	_, err := client.FetchCurrent(context.Background(), "Paris")
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("error = %v, want ErrTransport", err)
	}
}

func TestHTTPClient_MissingAPIKey(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	client := NewWeatherClient("", WithBaseURL(server.URL))

	_, err := client.FetchCurrent(context.Background(), "Paris")
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("error = %v, want ErrMissingAPIKey", err)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Error("no request should be made without an API key")
	}
}

func TestHTTPClient_CircuitBreakerFailsFast(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := client.FetchCurrent(ctx, "Paris"); err == nil {
			t.Fatalf("call %d: expected error", i)
		}
	}

	_, err := client.FetchCurrent(ctx, "Paris")
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("error = %v, want ErrTransport", err)
	}
	if !strings.Contains(err.Error(), "circuit breaker open") {
		t.Errorf("error = %q, want circuit breaker open", err.Error())
	}
	if got := atomic.LoadInt32(&hits); got != 5 {
		t.Errorf("server hits = %d, want 5 (no request while open)", got)
	}
}

func TestHTTPClient_NotFoundDoesNotTripBreaker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	for i := 0; i < 8; i++ {
		_, err := client.FetchCurrent(context.Background(), "Nowhereville")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("call %d: error = %v, want ErrNotFound", i, err)
		}
	}
}

func TestHTTPClient_RateLimitCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := os.ReadFile("../../testdata/owm_current_response.json")
		w.Write(data)
	}))
	defer server.Close()

	// One token, refilled once a minute
	client := NewWeatherClient("test-key", WithBaseURL(server.URL), WithRateLimit(1.0/60, 1))

	if _, err := client.FetchCurrent(context.Background(), "Paris"); err != nil {
		t.Fatalf("first call error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.FetchCurrent(ctx, "Paris")
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("error = %v, want ErrTransport", err)
	}
	if !strings.Contains(err.Error(), "rate limit") {
		t.Errorf("error = %q, want rate limit wait failure", err.Error())
	}
}
