package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/weather-terminal/internal/forecast"
	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/owm"
	"github.com/ngmaloney/weather-terminal/internal/session"
)

var fixedNow = time.Date(2025, 8, 6, 10, 0, 0, 0, time.UTC)

// parisClient serves Paris with days full UTC days of 3-hourly samples
func parisClient(days int) *owm.StaticClient {
	start := time.Date(2025, 8, 6, 0, 0, 0, 0, time.UTC)
	samples := make([]models.ForecastSample, days*8)
	for i := range samples {
		samples[i] = models.ForecastSample{
			Timestamp:    start.Add(time.Duration(i) * 3 * time.Hour).Unix(),
			TemperatureC: 16 + float64(i%8),
			WindSpeed:    3.6,
			HumidityPct:  64,
			Condition:    "scattered clouds",
			IconID:       "03d",
		}
	}

	client := owm.NewStaticClient()
	client.Add(
		models.CurrentConditions{City: "Paris", Country: "FR", TemperatureC: 22.6, Condition: "few clouds", FetchedAt: time.Now()},
		models.ForecastResult{City: "Paris", Country: "FR", TimezoneOffset: 7200, Samples: samples},
	)
	return client
}

// newTestModel returns a sized model searching client in UTC
func newTestModel(client owm.Client) Model {
	m := NewModel(session.NewSearcher(client, forecast.UTCTime()))
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model)
}

func typeText(m Model, text string) Model {
	for _, char := range text {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{char}})
		m = updated.(Model)
	}
	return m
}

func press(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// collect runs cmd and any batched commands, returning their messages
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// resultOf returns the search result produced by cmd
func resultOf(t *testing.T, cmd tea.Cmd) searchResultMsg {
	t.Helper()
	for _, msg := range collect(cmd) {
		if r, ok := msg.(searchResultMsg); ok {
			return r
		}
	}
	t.Fatal("command produced no search result")
	return searchResultMsg{}
}

// search types city, presses Enter and applies the result
func search(t *testing.T, m Model, city string) Model {
	t.Helper()
	m = typeText(m, city)
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != StateLoading {
		t.Fatalf("after Enter state = %v, want StateLoading", m.state)
	}
	updated, _ := m.Update(resultOf(t, cmd))
	return updated.(Model)
}
