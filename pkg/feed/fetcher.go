package feed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newswatcher/pkg/domain"
)

// ErrNoStories is returned when every category failed and the cycle produced nothing
var ErrNoStories = errors.New("no category returned stories")

// Fetcher pulls all categories in order, one request at a time with a fixed delay between them
type Fetcher struct {
	provider   Provider
	categories []string
	delay      time.Duration
}

// NewFetcher makes a fetcher for the ordered categories
func NewFetcher(provider Provider, categories []string, delay time.Duration) *Fetcher {
	return &Fetcher{provider: provider, categories: categories, delay: delay}
}

// Categories returns the configured category order
func (f *Fetcher) Categories() []string {
	return f.categories
}

// FetchAll returns one batch per category, in category order. A category that fails with a
// transport or status error contributes an empty batch. A malformed payload aborts the cycle,
// so does the case when all categories failed.
func (f *Fetcher) FetchAll(ctx context.Context) ([]domain.CategoryStories, error) {
	res := make([]domain.CategoryStories, 0, len(f.categories))
	failed := 0
	for i, category := range f.categories {
		if i > 0 && f.delay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(f.delay):
			}
		}

		lgr.Printf("[DEBUG] fetching category %s (%d of %d)", category, i+1, len(f.categories))
		stories, err := f.provider.Fetch(ctx, category)
		if err != nil {
			if errors.Is(err, ErrMalformed) {
				return nil, fmt.Errorf("category %s: %w", category, err)
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			lgr.Printf("[WARN] category %s failed, skipped: %v", category, err)
			failed++
			res = append(res, domain.CategoryStories{Category: category})
			continue
		}
		lgr.Printf("[DEBUG] category %s returned %d stories", category, len(stories))
		res = append(res, domain.CategoryStories{Category: category, Stories: stories})
	}

	if len(f.categories) > 0 && failed == len(f.categories) {
		return nil, ErrNoStories
	}
	return res, nil
}
