package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/ngmaloney/weather-terminal/internal/forecast"
)

// keyMap holds the display state key bindings
type keyMap struct {
	Today    key.Binding
	Tomorrow key.Binding
	Toggle   key.Binding
	Prev     key.Binding
	Next     key.Binding
	Search   key.Binding
	Recent   key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Today: key.NewBinding(
			key.WithKeys("t", "1"),
			key.WithHelp("t", "today"),
		),
		Tomorrow: key.NewBinding(
			key.WithKeys("m", "2"),
			key.WithHelp("m", "tomorrow"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "today/tomorrow"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev day"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		Search: key.NewBinding(
			key.WithKeys("s", "/"),
			key.WithHelp("s", "new search"),
		),
		Recent: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "recent"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Today, k.Tomorrow, k.Prev, k.Next, k.Search, k.Recent, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Today, k.Tomorrow, k.Toggle},
		{k.Prev, k.Next},
		{k.Search, k.Recent, k.Quit},
	}
}

// applyNav enables only the day keys that would change the selection.
// Disabled bindings don't match and are left out of the help view.
func (k *keyMap) applyNav(nav forecast.NavState) {
	k.Prev.SetEnabled(nav.CanRetreat)
	k.Next.SetEnabled(nav.CanAdvance)
	k.Today.SetEnabled(nav.Count > 0)
	k.Tomorrow.SetEnabled(nav.Count > 1)
	k.Toggle.SetEnabled(nav.Count > 1)
}
