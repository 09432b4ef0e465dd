// Package jokes fetches programming jokes from the Official Joke API.
package jokes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Kardbord/guybot/guybot/metrics"
)

// URL is the endpoint Fetcher uses by default.
const URL = "https://official-joke-api.appspot.com/jokes/programming/random"

// Joke is one joke as served by the API.
type Joke struct {
	ID        int    `json:"id"`
	Type      string `json:"type"`
	Setup     string `json:"setup"`
	Punchline string `json:"punchline"`
}

// Default stands in for an empty response.
var Default = Joke{
	ID:        0,
	Type:      "default",
	Setup:     "জোক পাইতেসি না, সব ফ্রন্টএন্ডের দোষ! 😤",
	Punchline: "জোক পাইতেসি না, সব ফ্রন্টএন্ডের দোষ! 😤",
}

func (j Joke) String() string {
	return fmt.Sprintf("🎭 **%s**\n💡 _%s_", j.Setup, j.Punchline)
}

// FetchError wraps any failure to obtain jokes from the API.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string { return "Request failed: " + e.Err.Error() }

func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher retrieves jokes.
type Fetcher struct {
	URL    string
	Client *http.Client
	// Latency, if not nil, observes request durations labeled "jokes".
	Latency metrics.Observer
}

// NewFetcher returns a Fetcher for URL. A nil client means
// http.DefaultClient.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{URL: URL, Client: client}
}

// FetchAll performs one request and returns every joke in the response. An
// empty response yields exactly Default.
func (f *Fetcher) FetchAll(ctx context.Context) ([]Joke, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	start := time.Now()
	resp, err := f.Client.Do(req)
	metrics.Since(f.Latency, start, "jokes")
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Err: fmt.Errorf("HTTP status %s", resp.Status)}
	}

	var jokes []Joke
	if err := json.NewDecoder(resp.Body).Decode(&jokes); err != nil {
		return nil, &FetchError{Err: fmt.Errorf("decoding jokes: %w", err)}
	}
	if len(jokes) == 0 {
		log.Warn("No jokes found in the response, returning default joke")
		return []Joke{Default}, nil
	}
	return jokes, nil
}

// Fetch returns the first joke of one request.
func (f *Fetcher) Fetch(ctx context.Context) (Joke, error) {
	jokes, err := f.FetchAll(ctx)
	if err != nil {
		return Joke{}, err
	}
	return jokes[0], nil
}
