package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"

	"github.com/ngmaloney/weather-terminal/internal/forecast"
	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/session"
)

// Panel renders a session inside the TUI. Only touched from Update.
type Panel struct {
	width int
	title cases.Caser
	now   func() time.Time

	current *models.CurrentConditions

	city    string
	country string
	day     models.DayBucket
	hasDay  bool

	table    table.Model
	hasTable bool
	chart    string

	nav    forecast.NavState
	hasNav bool

	errMsg string
}

// NewPanel creates an empty panel using locale for condition headings
func NewPanel(locale string) *Panel {
	return &Panel{
		title: session.TitleCaser(locale),
		now:   time.Now,
	}
}

// SetWidth sets the usable width in cells
func (p *Panel) SetWidth(w int) {
	p.width = w
}

// Ready fails until the terminal size is known
func (p *Panel) Ready() error {
	if p.width <= 0 {
		return fmt.Errorf("terminal width unknown")
	}
	return nil
}

// Reset clears everything a previous session rendered
func (p *Panel) Reset() {
	p.current = nil
	p.city, p.country = "", ""
	p.day, p.hasDay = models.DayBucket{}, false
	p.table, p.hasTable = table.Model{}, false
	p.chart = ""
	p.nav, p.hasNav = forecast.NavState{}, false
	p.errMsg = ""
}

// RenderCurrent implements session.Presenter
func (p *Panel) RenderCurrent(c models.CurrentConditions) {
	p.current = &c
	p.errMsg = ""
}

// RenderSummary implements session.Presenter
func (p *Panel) RenderSummary(city, country string, day models.DayBucket) {
	p.city, p.country = city, country
	p.day, p.hasDay = day, true
	p.chart = p.renderChart(day)
	p.errMsg = ""
}

// RenderHourlyTable implements session.Presenter
func (p *Panel) RenderHourlyTable(day models.DayBucket) {
	columns := []table.Column{
		{Title: "Time", Width: 9},
		{Title: "Temp", Width: 6},
		{Title: "Wind", Width: 9},
		{Title: "Humidity", Width: 9},
		{Title: "Conditions", Width: 20},
	}

	rows := make([]table.Row, 0, len(day.Samples))
	for _, s := range day.Samples {
		rows = append(rows, table.Row{
			session.FormatClock(day, s),
			fmt.Sprintf("%d°C", session.RoundTemp(s.TemperatureC)),
			session.FormatWind(s.WindSpeed) + " m/s",
			fmt.Sprintf("%d%%", s.HumidityPct),
			fmt.Sprintf("%s %s", models.Glyph(s.IconID), s.Condition),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+2), // header and its border
		table.WithFocused(false),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorBorder).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Cell
	t.SetStyles(styles)

	p.table, p.hasTable = t, true
	p.errMsg = ""
}

// RenderNavigation implements session.Presenter
func (p *Panel) RenderNavigation(nav forecast.NavState) {
	p.nav, p.hasNav = nav, true
}

// RenderError implements session.Presenter. Nothing else is shown with it.
func (p *Panel) RenderError(message string) {
	p.Reset()
	p.errMsg = message
}

// Error returns the last rendered error message
func (p *Panel) Error() string {
	return p.errMsg
}

// View renders the panel contents
func (p *Panel) View() string {
	if p.errMsg != "" {
		return errorStyle.Render("✗ " + p.errMsg)
	}

	var sections []string

	if p.current != nil {
		sections = append(sections, p.renderCurrent())
	}

	if p.hasNav {
		sections = append(sections, "", p.renderNav())
	}

	if p.hasDay {
		sections = append(sections, p.renderSummary())
	}

	if p.chart != "" {
		sections = append(sections,
			sectionHeaderStyle.Render("TEMPERATURE"),
			p.chart,
		)
	}

	if p.hasTable {
		sections = append(sections,
			sectionHeaderStyle.Render("HOURLY"),
			p.table.View(),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (p *Panel) renderCurrent() string {
	c := p.current
	updated := humanize.RelTime(c.FetchedAt, p.now(), "ago", "from now")
	return fmt.Sprintf("%s %s %s  %s",
		labelStyle.Render("Now:"),
		tempStyle.Render(fmt.Sprintf("%d°C", session.RoundTemp(c.TemperatureC))),
		c.Condition,
		mutedStyle.Render("updated "+updated))
}

func (p *Panel) renderSummary() string {
	first, ok := p.day.First()
	if !ok {
		return ""
	}

	header := titleStyle.Render(fmt.Sprintf("%s: %s",
		session.LocationLabel(p.city, p.country),
		session.FormatDate(p.day, first)))

	headline := fmt.Sprintf("%s %s  %s",
		models.Glyph(first.IconID),
		tempStyle.Render(fmt.Sprintf("%d°C", session.RoundTemp(first.TemperatureC))),
		p.title.String(first.Condition))

	width := p.width - 8
	if width < 20 {
		width = 20
	}
	sentence := lipgloss.NewStyle().Width(width).Render(session.SummarySentence(p.day))

	content := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		headline,
		mutedStyle.Render(first.IconURL()),
		"",
		sentence,
	)
	return sectionBoxStyle.Render(content)
}

// renderNav draws the today/tomorrow tabs and the prev/next affordances
func (p *Panel) renderNav() string {
	if p.nav.Count == 0 {
		return mutedStyle.Render("No forecast data available")
	}

	today, tomorrow := tabStyle, tabStyle
	if p.nav.IsToday() {
		today = activeTabStyle
	}
	if p.nav.IsTomorrow() {
		tomorrow = activeTabStyle
	}
	if p.nav.Count < 2 {
		tomorrow = disabledStyle.Padding(0, 1)
	}

	prev, next := mutedStyle.Render("◀"), mutedStyle.Render("▶")
	if !p.nav.CanRetreat {
		prev = disabledStyle.Render("◀")
	}
	if !p.nav.CanAdvance {
		next = disabledStyle.Render("▶")
	}

	return strings.Join([]string{
		today.Render("Today"),
		tomorrow.Render("Tomorrow"),
		"  ",
		prev,
		fmt.Sprintf(" Day %d of %d ", p.nav.Index+1, p.nav.Count),
		next,
	}, "")
}

// renderChart draws the day's temperatures as a sparkline, three columns per sample
func (p *Panel) renderChart(day models.DayBucket) string {
	temps := day.Temperatures()
	if len(temps) < 2 {
		return ""
	}

	low := temps[0]
	for _, t := range temps {
		if t < low {
			low = t
		}
	}

	const perSample = 3
	sl := sparkline.New(len(temps)*perSample, 4)
	for _, t := range temps {
		for i := 0; i < perSample; i++ {
			// Shift so the coldest sample still draws a bar
			sl.Push(t - low + 1)
		}
	}
	sl.Draw()
	return lipgloss.NewStyle().Foreground(colorWarm).Render(sl.View())
}
