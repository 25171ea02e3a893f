package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/dustin/go-humanize"
	"github.com/ngmaloney/weather-terminal/internal/session"
)

// cityItem wraps a previously searched city for use in a list
type cityItem struct {
	query   string
	city    string
	country string
	temp    float64
	cond    string
}

// FilterValue implements list.Item
func (c cityItem) FilterValue() string {
	return c.city
}

// Title implements list.DefaultItem
func (c cityItem) Title() string {
	return session.LocationLabel(c.city, c.country)
}

// Description implements list.DefaultItem
func (c cityItem) Description() string {
	return humanize.Ftoa(float64(session.RoundTemp(c.temp))) + "°C • " + c.cond
}

// addRecent puts item first and drops an earlier entry for the same city
func addRecent(items []cityItem, item cityItem) []cityItem {
	out := []cityItem{item}
	for _, it := range items {
		if strings.EqualFold(it.city, item.city) && it.country == item.country {
			continue
		}
		out = append(out, it)
	}
	return out
}

// createRecentList creates a list.Model from this run's searches
func createRecentList(cities []cityItem, width, height int) list.Model {
	items := make([]list.Item, len(cities))
	for i, c := range cities {
		items[i] = c
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Recent Cities"
	l.SetShowHelp(true)
	l.SetFilteringEnabled(true)

	return l
}
