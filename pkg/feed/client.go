// Package feed pulls raw stories from the upstream news provider, one category at a time.
package feed

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/umputun/newswatcher/pkg/domain"
)

// ErrMalformed is returned when a category payload can't be decoded at all.
// Fetcher treats it as a failure of the whole cycle.
var ErrMalformed = errors.New("malformed upstream payload")

// Provider fetches stories for a single category
type Provider interface {
	Fetch(ctx context.Context, category string) ([]domain.Story, error)
}

// httpGetter does GET requests with shared headers, used by both providers
type httpGetter struct {
	client    *http.Client
	userAgent string
	headers   map[string]string
}

func newHTTPGetter(timeout time.Duration, userAgent string, headers map[string]string) httpGetter {
	return httpGetter{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: userAgent,
		headers:   headers,
	}
}

// get retrieves content from a URL, non-200 responses are errors
func (g httpGetter) get(ctx context.Context, url, accept string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if g.userAgent != "" {
		req.Header.Set("User-Agent", g.userAgent)
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("Cache-Control", "no-cache")
	for k, v := range g.headers {
		req.Header.Set(k, v)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return resp.Body, nil
}

// textPolicy strips all markup from provider supplied text
var textPolicy = bluemonday.StrictPolicy()

// cleanText removes html tags and collapses whitespace
func cleanText(s string) string {
	s = html.UnescapeString(textPolicy.Sanitize(s))
	return strings.Join(strings.Fields(s), " ")
}
