package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://serpapi.com/search.json"

// ClientConfig controls the SerpAPI-compatible HTTP client.
type ClientConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Logger  *zap.Logger
}

// Client implements Provider against the SerpAPI google_maps engine.
type Client struct {
	cfg    ClientConfig
	http   *http.Client
	logger *zap.Logger
}

// NewClient builds a provider client. BaseURL is overridable for
// tests and proxies.
func NewClient(cfg ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

type searchResponse struct {
	LocalResults []Result `json:"local_results"`
	Error        string   `json:"error"`
}

// Search requests one page of maps listings. A response without
// local results (including the provider's "no more results" error
// payload) is reported as exhaustion, not failure.
func (c *Client) Search(ctx context.Context, q Query) ([]Result, error) {
	params := url.Values{}
	params.Set("engine", "google_maps")
	params.Set("q", q.Query)
	params.Set("type", "search")
	params.Set("api_key", c.cfg.APIKey)
	params.Set("start", strconv.Itoa(q.Offset))
	params.Set("limit", strconv.Itoa(q.PageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search provider request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search provider returned status %d", resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	if len(payload.LocalResults) == 0 {
		if payload.Error != "" {
			c.logger.Debug("provider returned no results",
				zap.String("query", q.Query),
				zap.Int("offset", q.Offset),
				zap.String("provider_error", payload.Error),
			)
		}
		return nil, nil
	}
	return payload.LocalResults, nil
}
