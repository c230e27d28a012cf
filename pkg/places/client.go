// Package places is a client for the Places Nearby Search API.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api/place"

// Client performs Places API operations.
type Client interface {
	NearbySearch(ctx context.Context, lat, lng float64, radiusM int, keyword, category string) ([]Place, error)
}

// Place represents a candidate returned by Nearby Search.
type Place struct {
	PlaceID  string   `json:"place_id"`
	Name     string   `json:"name"`
	Vicinity string   `json:"vicinity"`
	Rating   float64  `json:"rating"`
	Types    []string `json:"types"`
	Geometry Geometry `json:"geometry"`
}

// Geometry holds the candidate's location.
type Geometry struct {
	Location LatLng `json:"location"`
}

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type nearbyResponse struct {
	Status       string  `json:"status"`
	ErrorMessage string  `json:"error_message"`
	Results      []Place `json:"results"`
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

// NewClient creates a Places API client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// NearbySearch finds places around a point. An empty result set is not an
// error; the API reports it with status ZERO_RESULTS and we return nil.
func (c *httpClient) NearbySearch(ctx context.Context, lat, lng float64, radiusM int, keyword, category string) ([]Place, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("location", fmt.Sprintf("%f,%f", lat, lng))
	q.Set("radius", strconv.Itoa(radiusM))
	if keyword != "" {
		q.Set("keyword", keyword)
	}
	if category != "" {
		q.Set("type", category)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/nearbysearch/json?"+q.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "places: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "places: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "places: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("places: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var result nearbyResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, eris.Wrap(err, "places: unmarshal response")
	}

	switch result.Status {
	case "OK":
		return result.Results, nil
	case "ZERO_RESULTS":
		return nil, nil
	default:
		return nil, eris.Errorf("places: api status %s: %s", result.Status, result.ErrorMessage)
	}
}
