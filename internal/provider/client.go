package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the score provider's public site API.
	DefaultBaseURL = "https://site.api.espn.com/apis/site/v2/sports"

	requestTimeout = 15 * time.Second

	// The provider rejects requests with a default Go user agent.
	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
)

// Client wraps outbound HTTP calls to the score provider. All fetches are
// paced through a shared rate limiter so bursts of concurrent game checks
// don't hammer the provider.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	log     *zap.SugaredLogger
}

// New creates a provider client. An empty baseURL selects the default.
func New(baseURL string, logger *zap.SugaredLogger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: requestTimeout},
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 5),
		log:     logger,
	}
}

// FetchScoreboard fetches the scoreboard for a league on a specific date.
// A zero date fetches the provider's "today" window.
func (c *Client) FetchScoreboard(ctx context.Context, sportPath string, date time.Time) (map[string]interface{}, error) {
	url := fmt.Sprintf("%s/%s/scoreboard", c.baseURL, sportPath)
	if !date.IsZero() {
		url = fmt.Sprintf("%s?dates=%s", url, date.Format("20060102"))
	}
	return c.fetchJSON(ctx, url)
}

// FetchGameSummary fetches the detailed summary (header + box scores) for
// a single event.
func (c *Client) FetchGameSummary(ctx context.Context, sportPath string, eventID string) (map[string]interface{}, error) {
	url := fmt.Sprintf("%s/%s/summary?event=%s", c.baseURL, sportPath, eventID)
	return c.fetchJSON(ctx, url)
}

// FetchStandings fetches the league standings grouped by conference.
func (c *Client) FetchStandings(ctx context.Context, sportPath string) (map[string]interface{}, error) {
	url := fmt.Sprintf("%s/%s/standings", c.baseURL, sportPath)
	return c.fetchJSON(ctx, url)
}

// FetchRoster fetches the current roster for one team.
func (c *Client) FetchRoster(ctx context.Context, sportPath string, teamID string) (map[string]interface{}, error) {
	url := fmt.Sprintf("%s/%s/teams/%s/roster", c.baseURL, sportPath, teamID)
	return c.fetchJSON(ctx, url)
}

// FetchHTML fetches a raw HTML page. Used by standings sources that have
// no JSON endpoint.
func (c *Client) FetchHTML(ctx context.Context, url string) ([]byte, error) {
	return c.fetch(ctx, url)
}

func (c *Client) fetchJSON(ctx context.Context, url string) (map[string]interface{}, error) {
	body, err := c.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decoding response from %s: %w", url, err)
	}
	return result, nil
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, text/html;q=0.9")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Debugw("provider returned non-2xx", "url", url, "status", resp.StatusCode)
		return nil, fmt.Errorf("provider returned %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}
