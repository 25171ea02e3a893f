package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/weather-terminal/internal/forecast"
	"github.com/ngmaloney/weather-terminal/internal/owm"
	"github.com/ngmaloney/weather-terminal/internal/session"
	"github.com/ngmaloney/weather-terminal/internal/ui"
)

// This demo runs the UI against built-in data for a few cities
func main() {
	city := flag.String("city", "Paris", "City to show first (Paris, Visakhapatnam, Seattle, Reykjavik)")
	tz := flag.String("tz", "city", "Time reference for days: local, utc, city or an IANA zone")
	flag.Parse()

	ref, err := forecast.ParseTimeReference(*tz)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	log.SetOutput(io.Discard)

	searcher := session.NewSearcher(owm.NewDemoClient(time.Now()), ref)
	p := tea.NewProgram(ui.NewModel(searcher, ui.WithInitialCity(*city)), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running application: %v\n", err)
		os.Exit(1)
	}
}
