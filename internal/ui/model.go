package ui

import (
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/ngmaloney/weather-terminal/internal/session"
)

// AppState represents the current state of the application
type AppState int

const (
	StateSearch  AppState = iota // Enter a city name
	StateLoading                 // Fetching current conditions and forecast
	StateDisplay                 // Show the selected day
	StateError                   // Last search failed
)

// DefaultFetchTimeout bounds one search, both requests included
const DefaultFetchTimeout = 30 * time.Second

// Model represents the application's state
type Model struct {
	state  AppState
	width  int
	height int
	err    error

	// Search
	searchInput textinput.Model
	searchQuery string // Last submitted query
	searchID    string // Id of the search whose result is still wanted
	pendingCity string // Search to start once the terminal size is known
	searcher    *session.Searcher
	timeout     time.Duration

	// Data
	session *session.Session
	panel   *Panel

	// Recent cities
	recent     []cityItem
	recentList list.Model
	showRecent bool

	keys    keyMap
	help    help.Model
	spinner spinner.Model
}

// Option configures a Model
type Option func(*Model)

// WithFetchTimeout overrides DefaultFetchTimeout
func WithFetchTimeout(d time.Duration) Option {
	return func(m *Model) {
		m.timeout = d
	}
}

// WithLocale sets the locale used to title-case conditions
func WithLocale(locale string) Option {
	return func(m *Model) {
		m.panel = NewPanel(locale)
	}
}

// WithInitialCity searches for city as soon as the terminal size is known
func WithInitialCity(city string) Option {
	return func(m *Model) {
		city = strings.TrimSpace(city)
		if city == "" {
			return
		}
		m.searchInput.SetValue(city)
		m.searchInput.Blur()
		m.searchQuery = city
		m.pendingCity = city
		m.state = StateLoading
	}
}

// NewModel creates a new application model searching with searcher
func NewModel(searcher *session.Searcher, opts ...Option) Model {
	ti := textinput.New()
	ti.Placeholder = "Enter a city (e.g. Paris, Visakhapatnam, Seattle)..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 60

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := Model{
		state:       StateSearch,
		searchInput: ti,
		searcher:    searcher,
		timeout:     DefaultFetchTimeout,
		panel:       NewPanel("en"),
		keys:        newKeyMap(),
		help:        help.New(),
		spinner:     s,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	if m.state == StateLoading {
		return m.spinner.Tick
	}
	return textinput.Blink
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Handle window size
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.panel.SetWidth(msg.Width)
		m.help.Width = msg.Width
		if m.showRecent {
			m.recentList.SetSize(msg.Width-4, msg.Height-6)
		}
		if m.pendingCity != "" && m.state == StateLoading {
			query := m.pendingCity
			m.pendingCity = ""
			return m.startSearch(query)
		}
		return m, nil
	}

	// Handle custom messages
	switch msg := msg.(type) {
	case searchResultMsg:
		return m.handleResult(msg)

	case spinner.TickMsg:
		if m.state != StateLoading {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Handle keyboard input
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		// Global keys
		if keyMsg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		// State-specific handling
		switch m.state {
		case StateSearch:
			return m.handleSearchInput(keyMsg)

		case StateLoading:
			if keyMsg.Type == tea.KeyEsc {
				// Drop the pending result
				m.searchID = ""
				m.pendingCity = ""
				m.state = StateSearch
				m.searchInput.Focus()
				return m, textinput.Blink
			}
			if keyMsg.String() == "q" {
				return m, tea.Quit
			}
			return m, nil

		case StateDisplay:
			if m.showRecent {
				return m.handleRecentList(keyMsg)
			}
			return m.handleDisplay(keyMsg)

		case StateError:
			if keyMsg.String() == "q" {
				return m, tea.Quit
			}
			// Any other key returns to search
			m.state = StateSearch
			m.err = nil
			m.searchInput.Focus()
			return m, textinput.Blink
		}
	}

	// Update appropriate component based on state
	switch m.state {
	case StateSearch:
		m.searchInput, cmd = m.searchInput.Update(msg)
	case StateDisplay:
		if m.showRecent {
			m.recentList, cmd = m.recentList.Update(msg)
		}
	}

	return m, cmd
}

// startSearch moves to loading and fetches query in the background
func (m Model) startSearch(query string) (tea.Model, tea.Cmd) {
	m.searchQuery = query
	m.err = nil
	m.showRecent = false
	m.state = StateLoading
	m.searchInput.Blur()

	// Nothing could be shown yet; fetch once the size arrives
	if err := m.panel.Ready(); err != nil {
		log.Printf("deferring search for %q: %v", query, err)
		m.searchID = ""
		m.pendingCity = query
		return m, nil
	}

	m.searchID = uuid.NewString()

	log.Printf("search %s: %q", m.searchID, query)
	return m, tea.Batch(
		m.spinner.Tick,
		fetchWeather(m.searcher, m.searchID, query, m.timeout),
	)
}

// handleResult applies a finished search unless a newer one superseded it
func (m Model) handleResult(msg searchResultMsg) (tea.Model, tea.Cmd) {
	if msg.id != m.searchID {
		log.Printf("dropping stale result for %q (search %s)", msg.query, msg.id)
		return m, nil
	}
	m.searchID = ""

	if msg.err != nil {
		log.Printf("search for %q failed: %v", msg.query, msg.err)
		m.err = msg.err
		m.panel.RenderError(msg.err.Error())
		m.state = StateError
		return m, nil
	}

	m.panel.Reset()
	sess, err := m.searcher.Present(msg.result, m.panel)
	if err != nil {
		// Nothing could be drawn; keep the previous screen
		log.Printf("cannot show %q: %v", msg.query, err)
		if m.session != nil {
			m.session.Show(m.panel)
			m.state = StateDisplay
		} else {
			m.state = StateSearch
			m.searchInput.Focus()
		}
		return m, nil
	}

	m.session = sess
	m.keys.applyNav(sess.State())
	m.recent = addRecent(m.recent, cityItem{
		query:   msg.query,
		city:    msg.result.Current.City,
		country: sess.Country(),
		temp:    msg.result.Current.TemperatureC,
		cond:    msg.result.Current.Condition,
	})
	m.state = StateDisplay
	return m, nil
}

// handleSearchInput handles keyboard input in search state
func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Clear error when typing
	if m.err != nil && msg.Type != tea.KeyEnter {
		m.err = nil
	}

	switch msg.Type {
	case tea.KeyEnter:
		query := strings.TrimSpace(m.searchInput.Value())
		if query == "" {
			return m, nil
		}
		return m.startSearch(query)

	case tea.KeyEsc:
		// Back to the last result, if any
		if m.session != nil {
			m.panel.Reset()
			m.session.Show(m.panel)
			m.keys.applyNav(m.session.State())
			m.state = StateDisplay
			m.searchInput.Blur()
			return m, nil
		}
	}

	// Update text input
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleDisplay handles the day navigation keys
func (m Model) handleDisplay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.session == nil {
		m.state = StateSearch
		return m, textinput.Blink
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Search):
		m.state = StateSearch
		m.searchInput.SetValue("")
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Recent):
		m.recentList = createRecentList(m.recent, m.width-4, m.height-6)
		m.showRecent = true
		return m, nil

	case key.Matches(msg, m.keys.Today):
		m.session.SelectToday(m.panel)
	case key.Matches(msg, m.keys.Tomorrow):
		m.session.SelectTomorrow(m.panel)
	case key.Matches(msg, m.keys.Toggle):
		m.session.ToggleDay(m.panel)
	case key.Matches(msg, m.keys.Prev):
		m.session.Retreat(m.panel)
	case key.Matches(msg, m.keys.Next):
		m.session.Advance(m.panel)
	}

	m.keys.applyNav(m.session.State())
	return m, nil
}

// handleRecentList handles keyboard input while the recent cities list is open
func (m Model) handleRecentList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Let the list own the keyboard while filtering
	if m.recentList.FilterState() != list.Filtering {
		switch msg.Type {
		case tea.KeyEnter:
			if item, ok := m.recentList.SelectedItem().(cityItem); ok {
				return m.startSearch(item.query)
			}
			return m, nil
		case tea.KeyEsc:
			m.showRecent = false
			return m, nil
		}
	}

	m.recentList, cmd = m.recentList.Update(msg)
	return m, cmd
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.state {
	case StateSearch:
		return m.viewSearch()
	case StateLoading:
		return m.viewLoading()
	case StateDisplay:
		if m.showRecent {
			return m.viewRecent()
		}
		return m.viewDisplay()
	case StateError:
		return m.viewError()
	}

	return ""
}

// viewError renders the error view
func (m Model) viewError() string {
	title := errorStyle.Render("✗ Error")

	errorMsg := m.panel.Error()
	if errorMsg == "" && m.err != nil {
		errorMsg = m.err.Error()
	}
	if errorMsg == "" {
		errorMsg = "An unknown error occurred"
	}

	help := helpStyle.Render("Press any key to return to search • Q: Quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, "", errorMsg, "", help)
}

// viewSearch renders the search view
func (m Model) viewSearch() string {
	title := titleStyle.Render("☁ Weather Terminal")
	subtitle := mutedStyle.Render("Current conditions and 5 day forecast from OpenWeatherMap")

	searchBox := searchBoxStyle.Render(m.searchInput.View())

	var sections []string
	sections = append(sections, title, subtitle, "", searchBox)

	if m.err != nil {
		sections = append(sections, "", errorStyle.Padding(0, 2).Render("✗ "+m.err.Error()))
	}

	helpText := "Press Enter to search • Ctrl+C to quit"
	if m.session != nil {
		helpText = "Press Enter to search • Esc: Back • Ctrl+C to quit"
	}

	sections = append(sections,
		"",
		mutedStyle.Render("Examples: Paris | Visakhapatnam | Seattle | Reykjavik"),
		"",
		helpStyle.Render(helpText),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewLoading renders the loading view
func (m Model) viewLoading() string {
	status := mutedStyle.Render("Fetching weather for " + m.searchQuery + "...")
	help := helpStyle.Render("Esc: Cancel • Q: Quit")
	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		m.spinner.View()+" "+status,
		help,
	)
}

// viewRecent renders the recent cities list
func (m Model) viewRecent() string {
	if len(m.recent) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Recent Cities"),
			"",
			mutedStyle.Render("No searches yet"),
			helpStyle.Render("Esc: Back"),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.recentList.View(),
		helpStyle.Render("Enter: Search again • Esc: Back"),
	)
}

// viewDisplay renders the selected day
func (m Model) viewDisplay() string {
	if m.session == nil {
		return "No city selected"
	}

	header := titleStyle.Padding(0, 1).Render("☁ " + session.LocationLabel(m.session.City(), m.session.Country()))

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		m.panel.View(),
		helpStyle.Render(m.help.View(m.keys)),
	)
}
