package statsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/nikolamilosevic/TransferHub/internal/pkg/env"
)

// PlayerStats is the performance record returned by the external stats
// provider. These numbers feed the market value computation.
type PlayerStats struct {
	Rating        float64 `json:"rating"`
	KDRatio       float64 `json:"kd_ratio"`
	MatchesPlayed int     `json:"matches_played"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Client is a thin HTTP client for the external stats API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func NewClientFromEnv() *Client {
	return NewClient(
		env.GetEnv("STATS_API_URL", ""),
		env.GetEnv("STATS_API_KEY", ""),
	)
}

// FetchPlayerStats loads the current performance record for a player. Any
// transport or provider error propagates to the caller; there is no retry
// here, refreshes are user-triggered and can simply be repeated.
func (c *Client) FetchPlayerStats(ctx context.Context, game, nickname string) (*PlayerStats, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("stats api is not configured")
	}
	if nickname == "" {
		return nil, fmt.Errorf("nickname is required")
	}

	endpoint := fmt.Sprintf("%s/v1/players/%s?game=%s", c.baseURL, url.PathEscape(nickname), url.QueryEscape(game))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stats api request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Error != "" {
			return nil, fmt.Errorf("stats api returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("stats api returned %d", resp.StatusCode)
	}

	var stats PlayerStats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, fmt.Errorf("failed to decode stats api response: %v", err)
	}
	return &stats, nil
}
