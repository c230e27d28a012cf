// Package besttime is a client for the venue busyness forecast API.
package besttime

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://besttime.app/api/v1"

// ClosedSentinel marks an hour during which the venue is closed. Forecast
// series use it in place of a real intensity value.
const ClosedSentinel = 999

// ErrVenueNotFound is returned when the API cannot match the venue by name
// and address. Callers distinguish it from transport failures.
var ErrVenueNotFound = eris.New("besttime: venue not found")

// Client performs forecast API operations.
type Client interface {
	VenueWeek(ctx context.Context, name, address string) (*WeekSeries, error)
}

// WeekSeries is a full week of hourly busyness, Monday first.
type WeekSeries struct {
	Days []DaySeries `json:"days"`
}

// DaySeries is one day of hourly busyness.
type DaySeries struct {
	Day   string      `json:"day"`
	Hours []HourPoint `json:"hours"`
}

// HourPoint is the forecast intensity for one hour of the day.
// Intensity is ClosedSentinel when the venue is closed that hour.
type HourPoint struct {
	Hour      int `json:"hour"`
	Intensity int `json:"intensity"`
}

type forecastResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Analysis []struct {
		DayInfo struct {
			DayText string `json:"day_text"`
		} `json:"day_info"`
		HourAnalysis []struct {
			Hour      int `json:"hour"`
			Intensity int `json:"intensity_nr"`
		} `json:"hour_analysis"`
	} `json:"analysis"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a forecast API client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// VenueWeek fetches the weekly forecast for a venue identified by name and
// address. Returns ErrVenueNotFound when the API has no match.
func (c *httpClient) VenueWeek(ctx context.Context, name, address string) (*WeekSeries, error) {
	q := url.Values{}
	q.Set("api_key_private", c.apiKey)
	q.Set("venue_name", name)
	q.Set("venue_address", address)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/forecasts?"+q.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "besttime: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "besttime: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "besttime: read response")
	}

	// The API reports venue-level failures with a non-200 status and a JSON
	// body, so decode before checking the HTTP code.
	var result forecastResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, eris.Errorf("besttime: unexpected status %d: %s", resp.StatusCode, string(respBody))
		}
		return nil, eris.Wrap(err, "besttime: unmarshal response")
	}

	if result.Status != "OK" {
		if isNotFound(result.Message) {
			return nil, ErrVenueNotFound
		}
		return nil, eris.Errorf("besttime: api status %s: %s", result.Status, result.Message)
	}

	week := &WeekSeries{}
	for _, day := range result.Analysis {
		ds := DaySeries{Day: day.DayInfo.DayText}
		for _, h := range day.HourAnalysis {
			ds.Hours = append(ds.Hours, HourPoint{Hour: h.Hour, Intensity: h.Intensity})
		}
		week.Days = append(week.Days, ds)
	}
	return week, nil
}

// isNotFound matches the API's venue-miss messages, which it phrases a few
// different ways.
func isNotFound(message string) bool {
	m := strings.ToLower(message)
	return strings.Contains(m, "not found") || strings.Contains(m, "no venue")
}
