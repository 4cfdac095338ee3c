package presence

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// DefaultURL is where the local presence service listens.
const DefaultURL = "http://localhost:3001/api/presence"

// Client fetches the raw activity list from the presence service.
type Client struct {
	URL        string
	HTTPClient *http.Client
}

func NewClient(url string) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{URL: url, HTTPClient: http.DefaultClient}
}

// Fetch returns the reported activities. A missing activities field yields an empty list.
func (c *Client) Fetch(ctx context.Context) ([]RawActivity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build presence request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch presence: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch presence: unexpected status %d", resp.StatusCode)
	}

	var body Response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode presence: %w", err)
	}
	if body.Activities == nil {
		return []RawActivity{}, nil
	}
	return body.Activities, nil
}
