package fetch

import (
	"context"
	"net/url"
	"strings"
)

// Router dispatches to a Fetcher by URL scheme.
type Router struct {
	routes map[string]Fetcher
}

// NewRouter returns an empty router.
func NewRouter() *Router {
	return &Router{routes: make(map[string]Fetcher)}
}

// Handle registers f for the given schemes.
func (r *Router) Handle(f Fetcher, schemes ...string) *Router {
	for _, s := range schemes {
		r.routes[strings.ToLower(s)] = f
	}
	return r
}

// Fetch implements Fetcher.
func (r *Router) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "invalid URL", Cause: err}
	}
	f, ok := r.routes[strings.ToLower(u.Scheme)]
	if !ok {
		return nil, &Error{URL: rawURL, Message: "unsupported URL scheme " + strings.TrimSpace(u.Scheme)}
	}
	return f.Fetch(ctx, rawURL)
}
