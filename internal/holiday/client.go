// Package holiday looks up public holidays from the Nager.Date API,
// cached per (year, country). The calendar UI decorates day cells with
// the results; the task store does not depend on this package.
package holiday

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the public Nager.Date v3 endpoint.
const DefaultBaseURL = "https://date.nager.at"

// ErrUpstream reports a failed holiday API request.
var ErrUpstream = errors.New("holiday: upstream request failed")

// Holiday mirrors the Nager.Date v3 public holiday record.
type Holiday struct {
	Date        string   `json:"date"`
	LocalName   string   `json:"localName"`
	Name        string   `json:"name"`
	CountryCode string   `json:"countryCode"`
	Fixed       bool     `json:"fixed"`
	Global      bool     `json:"global"`
	Counties    []string `json:"counties"`
	LaunchYear  *int     `json:"launchYear"`
	Types       []string `json:"types"`
}

type cacheKey struct {
	year    int
	country string
}

type cacheEntry struct {
	holidays []Holiday
	fetched  time.Time
}

// Client fetches and caches public holidays. Safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	ttl        time.Duration
	now        func() time.Time

	mu    sync.Mutex
	cache map[cacheKey]cacheEntry
}

// NewClient creates a holiday client. baseURL may be empty to use the
// public Nager.Date endpoint; ttl bounds how long a (year, country)
// result is served from cache.
func NewClient(baseURL string, timeout, ttl time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		ttl:        ttl,
		now:        time.Now,
		cache:      make(map[cacheKey]cacheEntry),
	}
}

// Holidays returns the public holidays for a year and ISO country
// code, from cache when fresh.
func (c *Client) Holidays(ctx context.Context, year int, country string) ([]Holiday, error) {
	key := cacheKey{year: year, country: country}

	c.mu.Lock()
	entry, ok := c.cache[key]
	c.mu.Unlock()
	if ok && c.now().Sub(entry.fetched) < c.ttl {
		return entry.holidays, nil
	}

	url := fmt.Sprintf("%s/api/v3/PublicHolidays/%d/%s", c.baseURL, year, country)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("holiday.Client.Holidays: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("holiday.Client.Holidays: %w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("holiday.Client.Holidays: %w: status %d", ErrUpstream, resp.StatusCode)
	}

	var holidays []Holiday
	if err := json.NewDecoder(resp.Body).Decode(&holidays); err != nil {
		return nil, fmt.Errorf("holiday.Client.Holidays: %w: decode: %w", ErrUpstream, err)
	}

	c.mu.Lock()
	c.cache[key] = cacheEntry{holidays: holidays, fetched: c.now()}
	c.mu.Unlock()

	log.Debug().Int("year", year).Str("country", country).Int("count", len(holidays)).Msg("fetched holidays")
	return holidays, nil
}
