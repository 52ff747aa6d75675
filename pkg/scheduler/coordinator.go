package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/newswatcher/pkg/domain"
	"github.com/umputun/newswatcher/pkg/repository"
)

// Coordinator owns the in-memory catalog snapshot and recomputes subscriber filters against it.
// Every refresh reads the snapshot once and passes it down explicitly, so a concurrent catalog
// swap never changes the stories seen by a refresh already in progress.
type Coordinator struct {
	catalogs    CatalogStore
	subscribers SubscriberStore
	evaluator   Evaluator
	workers     int

	snapshot atomic.Pointer[domain.Catalog]
	loadMu   sync.Mutex
}

// RefreshStats summarizes a whole-catalog refresh
type RefreshStats struct {
	Version   int64 `json:"version"`
	Refreshed int   `json:"refreshed"`
	Failed    int   `json:"failed"`
}

// NewCoordinator makes a coordinator. workers limits concurrent subscriber refreshes, values
// below one mean sequential processing.
func NewCoordinator(catalogs CatalogStore, subscribers SubscriberStore, evaluator Evaluator, workers int) *Coordinator {
	if workers < 1 {
		workers = 1
	}
	return &Coordinator{catalogs: catalogs, subscribers: subscribers, evaluator: evaluator, workers: workers}
}

// Snapshot returns the current catalog snapshot, loading the persisted catalog on first use.
// A missing catalog yields an empty snapshot with version 0.
func (c *Coordinator) Snapshot(ctx context.Context) (domain.Catalog, error) {
	if snap := c.snapshot.Load(); snap != nil {
		return *snap, nil
	}

	c.loadMu.Lock()
	defer c.loadMu.Unlock()
	if snap := c.snapshot.Load(); snap != nil {
		return *snap, nil
	}

	cat, err := c.catalogs.GetCatalog(ctx)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		cat = &domain.Catalog{NewsStories: []domain.Story{}, HomeNewsStories: []domain.Story{}}
	case err != nil:
		return domain.Catalog{}, fmt.Errorf("load catalog: %w", err)
	}
	c.snapshot.CompareAndSwap(nil, cat)
	return *c.snapshot.Load(), nil
}

// RefreshSubscriber recomputes the subscriber's filters against the current snapshot and
// persists them
func (c *Coordinator) RefreshSubscriber(ctx context.Context, sub domain.Subscriber) (*domain.Subscriber, error) {
	snap, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return c.refresh(ctx, sub, snap)
}

// RefreshAll persists the catalog, makes it the current snapshot and refreshes every
// subscriber against it. A failure of one subscriber is logged and doesn't affect the others.
// The error is returned only if the catalog can't be saved or subscribers can't be listed.
func (c *Coordinator) RefreshAll(ctx context.Context, cat domain.Catalog) (RefreshStats, error) {
	saved, err := c.catalogs.ReplaceCatalog(ctx, cat)
	if err != nil {
		return RefreshStats{}, fmt.Errorf("save catalog: %w", err)
	}
	c.snapshot.Store(saved)
	snap := *saved
	lgr.Printf("[INFO] catalog v%d saved, %d stories, %d home stories",
		snap.Version, len(snap.NewsStories), len(snap.HomeNewsStories))

	var refreshed, failed atomic.Int64
	g := errgroup.Group{}
	g.SetLimit(c.workers)

	var iterErr error
	for sub, err := range c.subscribers.Subscribers(ctx) {
		if err != nil {
			iterErr = fmt.Errorf("list subscribers: %w", err)
			break
		}
		g.Go(func() error {
			if _, err := c.refresh(ctx, sub, snap); err != nil {
				lgr.Printf("[WARN] failed to refresh subscriber %d: %v", sub.ID, err)
				failed.Add(1)
				return nil
			}
			refreshed.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	stats := RefreshStats{Version: snap.Version, Refreshed: int(refreshed.Load()), Failed: int(failed.Load())}
	lgr.Printf("[INFO] refreshed %d subscribers against catalog v%d, %d failed", stats.Refreshed, stats.Version, stats.Failed)
	return stats, iterErr
}

func (c *Coordinator) refresh(ctx context.Context, sub domain.Subscriber, snap domain.Catalog) (*domain.Subscriber, error) {
	updated := c.evaluator.Evaluate(sub, snap)
	res, err := c.subscribers.UpdateFilters(ctx, sub.ID, updated.Filters)
	if err != nil {
		return nil, fmt.Errorf("update filters for subscriber %d: %w", sub.ID, err)
	}
	return res, nil
}
