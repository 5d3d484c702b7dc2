package github

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/forgemycode/forgemycode/internal/apperror"
)

// DefaultBaseURL is the GitHub REST API root.
const DefaultBaseURL = "https://api.github.com"

// searchResultCap: the search API only exposes the first 1,000 results
// regardless of pagination parameters.
const searchResultCap = 1000

// Config holds everything the client needs, passed in at construction time
// rather than read ad hoc from process-wide environment state.
type Config struct {
	// Token is a GitHub personal access token. Optional — unauthenticated
	// requests work but get a far lower search rate limit (10/min vs 30/min).
	Token string

	// BaseURL overrides the API root. Tests point this at an httptest server.
	BaseURL string

	// UserAgent is sent on every request; GitHub requires one.
	UserAgent string

	// HTTPClient overrides the underlying client. Defaults to a 30s timeout.
	HTTPClient *http.Client
}

// Client performs search calls against the GitHub API.
//
// There is deliberately no retry, backoff, or circuit breaker here: a
// single failed call surfaces directly to the caller as an upstream error,
// and the UI decides whether to fall back to a cached dataset. Rate-limit
// headers are logged for operators but never acted on.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

// NewClient creates a Client from the given config.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "forgemycode"
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		cfg:    cfg,
		http:   httpClient,
		logger: logger,
	}
}

// Search runs one GET /search/issues call with the given query and
// pagination parameters, sorted by most recently updated.
//
// The response body is decoded whatever the status code: GitHub reports
// failures (rate limiting included) as a JSON body with a "message" field
// and no items array. A missing items array is therefore the error signal —
// the returned error carries the upstream message when one is present.
func (c *Client) Search(ctx context.Context, query string, page, perPage int) (*SearchResponse, error) {
	endpoint := fmt.Sprintf(
		"%s/search/issues?q=%s&sort=updated&order=desc&page=%d&per_page=%d",
		c.cfg.BaseURL, url.QueryEscape(query), page, perPage,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("github: building search request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	c.logger.Debug("github search",
		slog.String("query", query),
		slog.Int("page", page),
		slog.Int("perPage", perPage),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github: search request failed: %w", err)
	}
	defer resp.Body.Close()

	// Surface rate-limit headroom to operators. 403 with zero remaining is
	// GitHub's rate-limit rejection — it still flows through the items
	// check below and comes back as an upstream error, never retried here.
	if remaining := resp.Header.Get("X-RateLimit-Remaining"); remaining != "" {
		c.logger.Debug("github rate limit",
			slog.String("remaining", remaining),
			slog.Int("status", resp.StatusCode),
		)
	}

	var body SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, apperror.Upstream("")
	}

	if body.Items == nil {
		c.logger.Error("github search returned no items array",
			slog.Int("status", resp.StatusCode),
			slog.String("message", body.Message),
		)
		return nil, apperror.Upstream(body.Message)
	}

	if page*perPage > searchResultCap {
		c.logger.Warn("github search only exposes the first 1000 results",
			slog.Int("page", page),
			slog.Int("perPage", perPage),
		)
	}

	return &body, nil
}
