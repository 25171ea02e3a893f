// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/ngmaloney/weather-terminal/internal/forecast"
	"github.com/ngmaloney/weather-terminal/internal/owm"
)

// Config holds the application settings
type Config struct {
	APIKey      string
	BaseURL     string
	HTTPTimeout time.Duration

	// Outgoing request budget for the upstream API
	RateLimit float64 // requests per second, 0 = unlimited
	RateBurst int

	TimeZone string // local, utc, city or an IANA zone
	Locale   string // BCP 47 tag used for headings

	DebugLog string // file for log output in TUI mode, empty = discard
}

// Load reads configuration from .env and the environment with defaults.
// A missing API key is not an error here; the client reports it on use.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("INFO: error loading .env file: %v", err)
	}

	cfg := &Config{
		APIKey:   apiKey(),
		BaseURL:  getenvDefault("OPENWEATHER_BASE_URL", owm.DefaultBaseURL),
		TimeZone: getenvDefault("WEATHER_TZ", "local"),
		Locale:   getenvDefault("WEATHER_LOCALE", "en-US"),
		DebugLog: os.Getenv("WEATHER_DEBUG_LOG"),
	}

	timeout, err := time.ParseDuration(getenvDefault("WEATHER_HTTP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid WEATHER_HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	rps, err := strconv.ParseFloat(getenvDefault("WEATHER_RATE_LIMIT", "1"), 64)
	if err != nil || rps < 0 {
		return nil, fmt.Errorf("invalid WEATHER_RATE_LIMIT: %q", os.Getenv("WEATHER_RATE_LIMIT"))
	}
	cfg.RateLimit = rps
	burst, err := getenvInt("WEATHER_RATE_BURST", 2)
	if err != nil || burst < 1 {
		return nil, fmt.Errorf("invalid WEATHER_RATE_BURST: %q", os.Getenv("WEATHER_RATE_BURST"))
	}
	cfg.RateBurst = burst

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that flags may have overridden
func (c *Config) Validate() error {
	if _, err := forecast.ParseTimeReference(c.TimeZone); err != nil {
		return fmt.Errorf("invalid WEATHER_TZ: %w", err)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("invalid WEATHER_HTTP_TIMEOUT: must be positive")
	}
	return nil
}

// TimeReference returns the parsed time reference
func (c *Config) TimeReference() forecast.TimeReference {
	ref, err := forecast.ParseTimeReference(c.TimeZone)
	if err != nil {
		return forecast.LocalTime()
	}
	return ref
}

// ClientOptions returns the weather client options for this config
func (c *Config) ClientOptions() []owm.Option {
	return []owm.Option{
		owm.WithBaseURL(c.BaseURL),
		owm.WithTimeout(c.HTTPTimeout),
		owm.WithRateLimit(c.RateLimit, c.RateBurst),
	}
}

// KeyFilePath is where the API key may be stored instead of the environment
func KeyFilePath() string {
	return os.ExpandEnv("$HOME/.config/weather/openweather_api_key")
}

// apiKey reads OPENWEATHER_API_KEY, falling back to the key file
func apiKey() string {
	if key := os.Getenv("OPENWEATHER_API_KEY"); key != "" {
		return key
	}

	data, err := os.ReadFile(filepath.Clean(KeyFilePath()))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}
