// Package fetch downloads source documents by URL.
//
// A Fetcher returns the full body of a resource. HTTPFetcher serves http and
// https URLs, S3Fetcher serves s3://bucket/key, and Router picks one by
// scheme.
package fetch

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultTimeout bounds a single download.
	DefaultTimeout = 30 * time.Second
	// DefaultMaxBytes bounds the size of a single download.
	DefaultMaxBytes = 50 << 20
	// DefaultUserAgent is sent with every HTTP request.
	DefaultUserAgent = "pdf-stamp/1.0"
)

// Fetcher retrieves a remote resource.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// Error reports a failed download.
type Error struct {
	URL        string
	Message    string
	StatusCode int
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

// Options configures HTTPFetcher.
type Options struct {
	Timeout     time.Duration
	MaxBytes    int64
	UserAgent   string
	InsecureTLS bool
}

// DefaultOptions returns the options used for a nil *Options.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		MaxBytes:  DefaultMaxBytes,
		UserAgent: DefaultUserAgent,
	}
}

// HTTPFetcher downloads http and https URLs.
type HTTPFetcher struct {
	client    *http.Client
	maxBytes  int64
	userAgent string
}

// NewHTTPFetcher returns a fetcher with a per-request timeout.
func NewHTTPFetcher(opts *Options) *HTTPFetcher {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if opts.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in for self-signed document stores
	}

	return &HTTPFetcher{
		client:    &http.Client{Timeout: opts.Timeout, Transport: transport},
		maxBytes:  opts.MaxBytes,
		userAgent: opts.UserAgent,
	}
}

// Fetch downloads rawURL. Any status outside 2xx is an error.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, &Error{URL: rawURL, Message: "invalid URL", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/pdf, */*")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{
			URL:        rawURL,
			Message:    fmt.Sprintf("HTTP status %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}

	return readLimited(rawURL, resp.Body, f.maxBytes)
}

func readLimited(rawURL string, r io.Reader, limit int64) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "failed to read response body", Cause: err}
	}
	if int64(len(body)) > limit {
		return nil, &Error{URL: rawURL, Message: fmt.Sprintf("response exceeds %d bytes", limit)}
	}
	return body, nil
}
