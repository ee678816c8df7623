// Package fetch downloads the raw incident dataset over HTTP.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rmonroe/shotline/internal/contract"
)

const userAgent = "shotline/1.0"

// Client performs the single dataset download. There are no retries; a
// failed fetch is fatal to the run.
type Client struct {
	httpClient *http.Client
}

var _ contract.Fetcher = &Client{} // Compile-time check

// NewClient creates a fetch client with the given overall timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch performs a single GET of the dataset URL and returns the body.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build dataset request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/csv")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset from %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("dataset fetch returned %s for %s", resp.Status, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset body: %w", err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("dataset body from %s is empty", url)
	}
	return body, nil
}
