// Package fetch retrieves raw document content from a locator. It is the
// transport collaborator of the ingestion pipeline; errors are returned as
// plain transport errors and classified by the caller.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Defaults for HTTPFetcher fields left at their zero value.
const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "verba/0.1"
	DefaultMaxBody   = 10 << 20 // 10 MiB
)

// Fetcher retrieves the raw bytes behind a locator.
type Fetcher interface {
	Fetch(ctx context.Context, locator string) ([]byte, error)
}

// Func adapts a plain function to the Fetcher interface.
type Func func(ctx context.Context, locator string) ([]byte, error)

// Fetch implements Fetcher.
func (f Func) Fetch(ctx context.Context, locator string) ([]byte, error) {
	return f(ctx, locator)
}

// HTTPFetcher fetches documents over HTTP(S) with a bounded response size.
// The zero value is usable; unset fields fall back to the package defaults.
type HTTPFetcher struct {
	UserAgent string
	MaxBody   int64

	HTTPClient *http.Client
}

// NewHTTP creates a fetcher whose requests time out after the given
// duration. A non-positive timeout uses DefaultTimeout.
func NewHTTP(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPFetcher{
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Fetch issues a GET for the locator and returns the response body. Any
// status other than 200 is an error carrying the status line. Bodies larger
// than MaxBody are rejected rather than truncated, so a caller never ranks
// a silently incomplete document.
func (f *HTTPFetcher) Fetch(ctx context.Context, locator string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", locator, err)
	}
	req.Header.Set("User-Agent", f.userAgent())

	resp, err := f.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", locator, resp.Status)
	}

	maxBody := f.maxBody()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", locator, err)
	}
	if int64(len(body)) > maxBody {
		return nil, fmt.Errorf("fetch %s: body exceeds %d bytes", locator, maxBody)
	}
	return body, nil
}

func (f *HTTPFetcher) httpClient() *http.Client {
	if f.HTTPClient != nil {
		return f.HTTPClient
	}
	return &http.Client{Timeout: DefaultTimeout}
}

func (f *HTTPFetcher) userAgent() string {
	if f.UserAgent != "" {
		return f.UserAgent
	}
	return DefaultUserAgent
}

func (f *HTTPFetcher) maxBody() int64 {
	if f.MaxBody > 0 {
		return f.MaxBody
	}
	return DefaultMaxBody
}
