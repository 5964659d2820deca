// Package upstream is the thin client for the Financial Datasets API.
// It attaches the resolved key, executes one request and hands back the
// response body and status verbatim. No retries, no caching.
package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the production Financial Datasets API.
const DefaultBaseURL = "https://api.financialdatasets.ai"

// apiKeyHeader is the header the upstream API authenticates with.
const apiKeyHeader = "X-API-KEY"

// Error is a transport-level failure talking to the upstream API. Non-2xx
// upstream responses are not Errors; they are relayed to the caller as-is.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("upstream %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Client issues requests against one base URL.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client. An empty baseURL selects DefaultBaseURL.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Get fetches path with the given query parameters, authenticating with
// apiKey. It returns the raw body and status code; err is non-nil only for
// transport failures (DNS, timeout, connection reset).
func (c *Client) Get(ctx context.Context, path string, query url.Values, apiKey string) ([]byte, int, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, &Error{Path: path, Err: err}
	}
	req.Header.Set(apiKeyHeader, apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, &Error{Path: path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, &Error{Path: path, Err: err}
	}
	return body, resp.StatusCode, nil
}
