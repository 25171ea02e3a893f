package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/weather-terminal/internal/config"
	"github.com/ngmaloney/weather-terminal/internal/owm"
	"github.com/ngmaloney/weather-terminal/internal/session"
	"github.com/ngmaloney/weather-terminal/internal/textview"
	"github.com/ngmaloney/weather-terminal/internal/ui"
)

func main() {
	city := flag.String("city", "", "City to look up on start (e.g. Paris)")
	once := flag.Bool("once", false, "Print the forecast for --city as text and exit")
	all := flag.Bool("all", false, "With --once, print every forecast day instead of today only")
	tz := flag.String("tz", "", "Time reference for days: local, utc, city or an IANA zone (overrides WEATHER_TZ)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if *tz != "" {
		cfg.TimeZone = *tz
		if err := cfg.Validate(); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}

	if cfg.APIKey == "" {
		fmt.Printf("Error: OPENWEATHER_API_KEY is not set (or put the key in %s)\n", config.KeyFilePath())
		os.Exit(1)
	}

	client := owm.NewWeatherClient(cfg.APIKey, cfg.ClientOptions()...)
	searcher := session.NewSearcher(client, cfg.TimeReference())

	if *once {
		if *city == "" {
			fmt.Println("Error: --once requires --city.")
			os.Exit(1)
		}
		log.SetOutput(os.Stderr)
		if err := printOnce(searcher, *city, *all, cfg.Locale); err != nil {
			os.Exit(1)
		}
		return
	}

	// The TUI owns the terminal; logs go to a file or nowhere
	if cfg.DebugLog != "" {
		f, err := tea.LogToFile(cfg.DebugLog, "weather")
		if err != nil {
			fmt.Printf("Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	m := ui.NewModel(searcher,
		ui.WithInitialCity(*city),
		ui.WithLocale(cfg.Locale),
	)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running application: %v\n", err)
		os.Exit(1)
	}
}

// printOnce writes the first day, or every day, for city to stdout
func printOnce(searcher *session.Searcher, city string, all bool, locale string) error {
	ctx, cancel := context.WithTimeout(context.Background(), ui.DefaultFetchTimeout)
	defer cancel()

	w := textview.New(os.Stdout, locale)
	sess, err := searcher.Search(ctx, city, w)
	if err != nil {
		return err
	}

	if all {
		for sess.State().CanAdvance {
			sess.Advance(w)
		}
	}
	return nil
}
