// Package textview renders a weather session as plain text lines.
package textview

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ngmaloney/weather-terminal/internal/forecast"
	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/session"
	"golang.org/x/text/cases"
)

// Writer is a Presenter that prints to an io.Writer
type Writer struct {
	out   io.Writer
	title cases.Caser
	now   func() time.Time
}

// New creates a text presenter for out using locale for headings
func New(out io.Writer, locale string) *Writer {
	return &Writer{
		out:   out,
		title: session.TitleCaser(locale),
		now:   time.Now,
	}
}

// Ready reports whether there is somewhere to write
func (w *Writer) Ready() error {
	if w.out == nil {
		return fmt.Errorf("no output writer")
	}
	return nil
}

// RenderCurrent prints the current observation
func (w *Writer) RenderCurrent(c models.CurrentConditions) {
	fmt.Fprintf(w.out, "Now in %s: %d°C, %s (updated %s)\n",
		session.LocationLabel(c.City, c.Country),
		session.RoundTemp(c.TemperatureC),
		c.Condition,
		humanize.RelTime(c.FetchedAt, w.now(), "ago", "from now"))
}

// RenderSummary prints the day header and summary sentence
func (w *Writer) RenderSummary(city, country string, day models.DayBucket) {
	first, ok := day.First()
	if !ok {
		return
	}

	header := fmt.Sprintf("%s: %s", session.LocationLabel(city, country), session.FormatDate(day, first))
	fmt.Fprintln(w.out)
	fmt.Fprintln(w.out, header)
	fmt.Fprintln(w.out, strings.Repeat("-", len([]rune(header))))
	fmt.Fprintf(w.out, "%s %d°C  %s\n", models.Glyph(first.IconID), session.RoundTemp(first.TemperatureC), w.title.String(first.Condition))
	fmt.Fprintf(w.out, "Icon: %s\n", first.IconURL())
	fmt.Fprintln(w.out, session.SummarySentence(day))
}

// RenderHourlyTable prints one row per sample
func (w *Writer) RenderHourlyTable(day models.DayBucket) {
	fmt.Fprintln(w.out)
	fmt.Fprintf(w.out, "%-9s %6s %9s %9s\n", "Time", "Temp", "Wind", "Humidity")
	for _, s := range day.Samples {
		fmt.Fprintf(w.out, "%-9s %4d°C %5s m/s %8d%%\n",
			session.FormatClock(day, s),
			session.RoundTemp(s.TemperatureC),
			session.FormatWind(s.WindSpeed),
			s.HumidityPct)
	}
}

// RenderNavigation prints which day is shown
func (w *Writer) RenderNavigation(nav forecast.NavState) {
	if nav.Count == 0 {
		fmt.Fprintln(w.out, "No forecast data available")
		return
	}
	fmt.Fprintf(w.out, "Day %d of %d\n", nav.Index+1, nav.Count)
}

// RenderError prints the failure
func (w *Writer) RenderError(message string) {
	fmt.Fprintf(w.out, "Error: %s\n", message)
}

var _ session.Presenter = (*Writer)(nil)
