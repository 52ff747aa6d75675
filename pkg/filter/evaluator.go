// Package filter recomputes subscriber filter results against a catalog snapshot.
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/umputun/newswatcher/pkg/domain"
)

// TestHook post-processes an evaluated subscriber. It exists for smoke tests only and is never
// installed by production wiring.
type TestHook interface {
	Apply(sub *domain.Subscriber, snapshot domain.Catalog, maxStories int)
}

// Evaluator matches filter keywords against catalog stories
type Evaluator struct {
	maxStories int // per filter match cap, 0 means unlimited
	maxFilters int // 0 means unlimited
	hook       TestHook
	now        func() time.Time
}

// Option configures Evaluator
type Option func(e *Evaluator)

// WithTestHook installs a test hook applied after evaluation
func WithTestHook(h TestHook) Option {
	return func(e *Evaluator) { e.hook = h }
}

// WithClock overrides time source used for timeOfLastScan
func WithClock(now func() time.Time) Option {
	return func(e *Evaluator) { e.now = now }
}

// NewEvaluator makes an evaluator with the given per-filter match cap and filter count limit
func NewEvaluator(maxStories, maxFilters int, opts ...Option) *Evaluator {
	res := &Evaluator{maxStories: maxStories, maxFilters: maxFilters, now: time.Now}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Evaluate returns a copy of the subscriber with every filter's story list recomputed from
// the snapshot. Filter definitions are kept as they are, filters past maxFilters stay in
// the list with empty results. The input subscriber and the snapshot are not modified.
func (e *Evaluator) Evaluate(sub domain.Subscriber, snapshot domain.Catalog) domain.Subscriber {
	res := sub
	res.Filters = make([]domain.Filter, len(sub.Filters))
	copy(res.Filters, sub.Filters)
	scanTime := e.now()
	for i := range res.Filters {
		if e.maxFilters > 0 && i >= e.maxFilters {
			res.Filters[i].NewsStories = []domain.Story{}
			continue
		}
		res.Filters[i].NewsStories = e.match(res.Filters[i], snapshot.NewsStories)
		if scanTime.After(res.Filters[i].TimeOfLastScan) {
			res.Filters[i].TimeOfLastScan = scanTime
		}
	}
	if e.hook != nil {
		e.hook.Apply(&res, snapshot, e.maxStories)
	}
	return res
}

// match scans stories keyword by keyword and returns copies of matched stories in catalog order.
// Scanning stops as soon as the cap is reached.
func (e *Evaluator) match(f domain.Filter, stories []domain.Story) []domain.Story {
	res := []domain.Story{}
	keywords := f.MatchKeywords()
	if len(keywords) == 0 {
		return res
	}

	keep := make([]bool, len(stories))
	matched := 0
scan:
	for _, kw := range keywords {
		keyword := strings.ToLower(kw)
		for j, s := range stories {
			if e.capReached(matched) {
				break scan
			}
			if keep[j] {
				continue
			}
			if strings.Contains(strings.ToLower(s.Title), keyword) || strings.Contains(strings.ToLower(s.ContentSnippet), keyword) {
				keep[j] = true
				matched++
			}
		}
	}

	for j, k := range keep {
		if k {
			res = append(res, stories[j])
		}
	}
	return res
}

func (e *Evaluator) capReached(matched int) bool {
	return e.maxStories > 0 && matched >= e.maxStories
}

// SentinelHook reproduces the smoke-test behavior: a subscriber with exactly one filter holding
// exactly the sentinel keyword gets synthetic copies of the first catalog story appended.
type SentinelHook struct {
	Keyword string
	Copies  int
}

// Apply implements TestHook
func (h SentinelHook) Apply(sub *domain.Subscriber, snapshot domain.Catalog, maxStories int) {
	if len(sub.Filters) != 1 || len(snapshot.NewsStories) == 0 {
		return
	}
	f := &sub.Filters[0]
	if len(f.KeyWords) != 1 || f.KeyWords[0] != h.Keyword {
		return
	}
	for i := range h.Copies {
		if maxStories > 0 && len(f.NewsStories) >= maxStories {
			return
		}
		s := snapshot.NewsStories[0]
		s.Title = fmt.Sprintf("%s title%d", h.Keyword, i)
		f.NewsStories = append(f.NewsStories, s)
	}
}
