package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/weather-terminal/internal/session"
)

// Message types for async operations

// searchResultMsg is sent when both fetches for a search have finished
type searchResultMsg struct {
	id     string // search id, compared against the latest search
	query  string
	result session.Result
	err    error
}

// fetchWeather fetches current conditions and forecast in the background
func fetchWeather(searcher *session.Searcher, id, query string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		result, err := searcher.Fetch(ctx, query)
		return searchResultMsg{id: id, query: query, result: result, err: err}
	}
}
