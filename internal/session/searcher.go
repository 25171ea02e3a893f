package session

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/ngmaloney/weather-terminal/internal/forecast"
	"github.com/ngmaloney/weather-terminal/internal/owm"
)

// Searcher runs city searches against a weather client
type Searcher struct {
	client owm.Client
	ref    forecast.TimeReference
}

// NewSearcher creates a searcher that groups days under ref
func NewSearcher(client owm.Client, ref forecast.TimeReference) *Searcher {
	return &Searcher{client: client, ref: ref}
}

// TimeReference returns the reference used to group days
func (s *Searcher) TimeReference() forecast.TimeReference {
	return s.ref
}

// Fetch retrieves current conditions and then the forecast for city.
// The forecast is only requested once current conditions succeeded.
func (s *Searcher) Fetch(ctx context.Context, city string) (Result, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return Result{}, ErrEmptyCity
	}

	current, err := s.client.FetchCurrent(ctx, city)
	if err != nil {
		return Result{}, err
	}

	fc, err := s.client.FetchForecast(ctx, city)
	if err != nil {
		return Result{}, err
	}

	log.Printf("fetched %s, %s: %d forecast samples", current.City, current.Country, len(fc.Samples))
	return Result{Current: *current, Forecast: *fc}, nil
}

// Search fetches city and renders the new session on p. Fetch failures are
// rendered as errors and returned; nothing is partially rendered.
func (s *Searcher) Search(ctx context.Context, city string, p Presenter) (*Session, error) {
	if err := checkPresenter(p); err != nil {
		log.Printf("search for %q aborted: %v", city, err)
		return nil, err
	}

	result, err := s.Fetch(ctx, city)
	if err != nil {
		log.Printf("search for %q failed: %v", city, err)
		p.RenderError(err.Error())
		return nil, fmt.Errorf("searching %q: %w", city, err)
	}

	return s.Present(result, p)
}

// Present builds a session from an already fetched result and shows it.
// Used by callers that fetch in the background and render later.
func (s *Searcher) Present(result Result, p Presenter) (*Session, error) {
	if err := checkPresenter(p); err != nil {
		log.Printf("presenting %s aborted: %v", result.Current.City, err)
		return nil, err
	}

	sess := New(result, s.ref)
	sess.Show(p)
	return sess, nil
}
