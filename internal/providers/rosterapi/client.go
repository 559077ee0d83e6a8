package rosterapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"lineup-service/internal/domain/players"
	"lineup-service/internal/providers"
)

// Config controls how the client reaches the roster API.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// Client fetches rosters and opponents from the roster API and maps them
// to domain models.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient httpDoer
	now        func() time.Time

	logoMu sync.RWMutex
	logos  map[string]string
}

// NewClient constructs a roster API client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     cfg.APIKey,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		now:        time.Now,
		logos:      make(map[string]string),
	}
}

// FetchPlayers retrieves the roster for teamID. A 404 maps to
// providers.NotFoundError, a 429 to providers.RateLimitError.
func (c *Client) FetchPlayers(ctx context.Context, teamID string) ([]players.Player, error) {
	endpoint := fmt.Sprintf("%s/teams/%s/roster", c.baseURL, url.PathEscape(teamID))

	var payload rosterResponse
	if err := c.getJSON(ctx, endpoint, teamID, &payload); err != nil {
		return nil, err
	}
	return mapRoster(payload), nil
}

// FetchOpponents retrieves the opponent directory and remembers logo URLs
// for later TeamLogo lookups.
func (c *Client) FetchOpponents(ctx context.Context) ([]providers.Opponent, error) {
	endpoint := c.baseURL + "/opponents"

	var payload opponentsResponse
	if err := c.getJSON(ctx, endpoint, "", &payload); err != nil {
		return nil, err
	}

	opponents := make([]providers.Opponent, 0, len(payload.Opponents))
	c.logoMu.Lock()
	for _, raw := range payload.Opponents {
		opponents = append(opponents, providers.Opponent{Name: raw.Name, ShortName: raw.ShortName})
		if raw.LogoURL != "" {
			c.logos[strings.ToLower(raw.Name)] = raw.LogoURL
		}
	}
	c.logoMu.Unlock()
	return opponents, nil
}

// TeamLogo resolves a club name to a logo URL seen in a prior
// FetchOpponents call.
func (c *Client) TeamLogo(name string) (string, bool) {
	c.logoMu.RLock()
	defer c.logoMu.RUnlock()
	logo, ok := c.logos[strings.ToLower(name)]
	return logo, ok
}

func (c *Client) getJSON(ctx context.Context, endpoint, teamID string, payload any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return &providers.NotFoundError{TeamID: teamID}
	case http.StatusTooManyRequests:
		return &providers.RateLimitError{
			Provider:   Name,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
		}
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("rosterapi: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return json.NewDecoder(resp.Body).Decode(payload)
}
