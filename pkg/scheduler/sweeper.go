package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
)

// Sweeper removes shared items older than the retention period
type Sweeper struct {
	store     SharedStore
	retention time.Duration
	now       func() time.Time
}

// SweepStats summarizes a sweep pass
type SweepStats struct {
	Checked int
	Deleted int
	Failed  int
	Skipped int
}

// NewSweeper makes a sweeper with the given retention, defaults to 72h
func NewSweeper(store SharedStore, retention time.Duration) *Sweeper {
	if retention <= 0 {
		retention = 72 * time.Hour
	}
	return &Sweeper{store: store, retention: retention, now: time.Now}
}

// Sweep deletes every shared item whose first comment is older than retention. Age is counted
// in whole hours, so an item 72h30m old is kept with the default retention.
// Delete failures are logged and the pass continues with the next item.
func (s *Sweeper) Sweep(ctx context.Context) (SweepStats, error) {
	items, err := s.store.ListSharedItems(ctx)
	if err != nil {
		return SweepStats{}, fmt.Errorf("list shared items: %w", err)
	}

	stats := SweepStats{Checked: len(items)}
	now := s.now()
	for _, item := range items {
		if ctx.Err() != nil {
			return stats, ctx.Err()
		}
		sharedAt := item.SharedAt()
		if sharedAt.IsZero() {
			lgr.Printf("[WARN] shared item %s has no comments, skipped", item.ID)
			stats.Skipped++
			continue
		}
		if now.Sub(sharedAt).Truncate(time.Hour) <= s.retention {
			continue
		}
		deleted, err := s.store.DeleteSharedItem(ctx, item.ID)
		if err != nil {
			lgr.Printf("[WARN] failed to delete shared item %s: %v", item.ID, err)
			stats.Failed++
			continue
		}
		if deleted {
			lgr.Printf("[DEBUG] deleted shared item %s, shared at %s", item.ID, sharedAt.Format(time.RFC3339))
			stats.Deleted++
		}
	}

	lgr.Printf("[INFO] sweep completed, checked %d, deleted %d, failed %d", stats.Checked, stats.Deleted, stats.Failed)
	return stats, nil
}
