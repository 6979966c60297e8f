// Package aurora queries the auroras.live forecast API for the
// probability of seeing the lights at a given coordinate.
package aurora

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

type (
	Client struct {
		baseURL string
		http    *http.Client
	}

	// Forecast mirrors the slice of the auroras.live payload the
	// finder page renders.
	Forecast struct {
		Probability struct {
			// chance at the requested coordinate
			Value float64 `json:"value"`
			// chance adjusted for local conditions
			Calculated struct {
				Value float64 `json:"value"`
			} `json:"calculated"`
			// best spot on the globe right now
			Highest struct {
				Value float64 `json:"value"`
				Lat   float64 `json:"lat"`
				Long  float64 `json:"long"`
			} `json:"highest"`
		} `json:"probability"`
	}
)

// NewClient talks to the given auroras.live base URL, e.g.
// http://api.auroras.live/v1. Tests point it at a local server.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Probability fetches the forecast for lat/long. The coordinates pass
// through as the client sent them; the upstream API does its own
// validation.
func (c *Client) Probability(ctx context.Context, lat, long string) (*Forecast, error) {
	q := url.Values{}
	q.Set("type", "all")
	q.Set("lat", lat)
	q.Set("long", long)
	q.Set("forecast", "false")
	q.Set("threeday", "false")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("aurora: unable to reach forecast api, cause %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("aurora: forecast api answered %v", resp.Status)
	}
	var f Forecast
	if err := json.NewDecoder(resp.Body).Decode(&f); err != nil {
		return nil, fmt.Errorf("aurora: unable to decode forecast, cause %w", err)
	}
	return &f, nil
}
