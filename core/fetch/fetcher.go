// Package fetch implements the Fetcher interface.
// It retrieves HTML over HTTP, through a headless browser for pages
// rendered by JavaScript, or from local files.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gaurav-prasanna/semanticmd/core"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "semanticmd/1.0 (https://github.com/gaurav-prasanna/semanticmd)"
	// maxBodySize caps how much of a response body is read.
	maxBodySize = 20 << 20
)

// Error represents an error while fetching a page.
type Error struct {
	URL        string
	StatusCode int
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// HTTPFetcher fetches web pages via HTTP.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// New creates an HTTPFetcher with a sensible timeout.
func New() *HTTPFetcher {
	return NewWithTimeout(defaultTimeout)
}

// NewWithTimeout creates an HTTPFetcher with the given request timeout.
func NewWithTimeout(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPFetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
	}
}

// Fetch retrieves the HTML content of the given URL.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (*core.FetchResult, error) {
	if err := validateURL(rawURL); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "creating request", Cause: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{
			URL:        rawURL,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "reading response body", Cause: err}
	}

	return &core.FetchResult{
		URL:        rawURL,
		StatusCode: resp.StatusCode,
		HTML:       string(body),
	}, nil
}

func validateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return &Error{URL: rawURL, Message: "invalid URL (must include scheme, e.g. https://example.com)", Cause: err}
	}
	return nil
}
