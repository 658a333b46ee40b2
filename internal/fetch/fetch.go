package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/layarproject/layar/internal/domain"
)

const defaultTimeout = 15 * time.Second

// Client issues GET requests with a CORS-proxy fallback chain. The direct
// attempt runs first; on any error, timeout, or non-2xx status each configured
// proxy is tried in priority order with its own timeout. The first successful
// response wins.
type Client struct {
	httpClient *http.Client
	proxies    []string // proxy base URLs, target appended URL-encoded
	timeout    time.Duration
	logger     *slog.Logger
}

// NewClient creates a fetcher with the given proxy chain. A zero timeout uses
// the default. Proxies may be empty, in which case only the direct attempt is
// made.
func NewClient(proxies []string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		// Per-attempt deadlines come from the request context, not the
		// transport.
		httpClient: &http.Client{},
		proxies:    proxies,
		timeout:    timeout,
		logger:     logger,
	}
}

// Get fetches rawURL, falling back through the proxy chain. It fails only
// when the direct attempt and every proxy fail or time out, returning an
// error wrapping domain.ErrAllAttemptsFailed.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	body, err := c.attempt(ctx, rawURL)
	if err == nil {
		return body, nil
	}
	c.logger.Warn("direct fetch failed, trying proxies", "url", rawURL, "error", err)

	for _, proxy := range c.proxies {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		proxyURL := proxy + url.QueryEscape(rawURL)
		body, err = c.attempt(ctx, proxyURL)
		if err == nil {
			return body, nil
		}
		c.logger.Warn("proxy fetch failed", "proxy", proxy, "url", rawURL, "error", err)
	}

	return nil, fmt.Errorf("%w: %s", domain.ErrAllAttemptsFailed, rawURL)
}

// GetJSON fetches rawURL through the fallback chain and decodes the body.
func (c *Client) GetJSON(ctx context.Context, rawURL string, dest any) error {
	body, err := c.Get(ctx, rawURL)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// attempt performs a single GET with its own timeout. Any non-2xx status is
// an error so it triggers the fallback chain.
func (c *Client) attempt(ctx context.Context, reqURL string) ([]byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("fetch attempt", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return body, nil
}
