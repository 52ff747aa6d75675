package scheduler

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newswatcher/pkg/domain"
	"github.com/umputun/newswatcher/pkg/filter"
	"github.com/umputun/newswatcher/pkg/repository"
	"github.com/umputun/newswatcher/pkg/scheduler/mocks"
)

func testCatalog(version int64) *domain.Catalog {
	stories := []domain.Story{
		{StoryID: "s1", Title: "Apple launches new phone", Link: "https://example.com/1", ImageURL: "https://example.com/1.jpg"},
		{StoryID: "s2", Title: "Markets rally", ContentSnippet: "Google shares up", Link: "https://example.com/2", ImageURL: "https://example.com/2.jpg"},
		{StoryID: "s3", Title: "Weather report", Link: "https://example.com/3", ImageURL: "https://example.com/3.jpg"},
	}
	return &domain.Catalog{Version: version, NewsStories: stories, HomeNewsStories: stories[:1]}
}

func testSubscriber(id int64, keywords ...string) domain.Subscriber {
	return domain.Subscriber{ID: id, Email: fmt.Sprintf("user%d@example.com", id),
		Filters: []domain.Filter{{Name: "filter", KeyWords: keywords}}}
}

func subscribersSeq(subs ...domain.Subscriber) func(context.Context) iter.Seq2[domain.Subscriber, error] {
	return func(context.Context) iter.Seq2[domain.Subscriber, error] {
		return func(yield func(domain.Subscriber, error) bool) {
			for _, s := range subs {
				if !yield(s, nil) {
					return
				}
			}
		}
	}
}

func echoUpdateFilters(_ context.Context, id int64, filters []domain.Filter) (*domain.Subscriber, error) {
	return &domain.Subscriber{ID: id, Filters: filters}, nil
}

func storyIDs(stories []domain.Story) []string {
	res := make([]string, 0, len(stories))
	for _, s := range stories {
		res = append(res, s.StoryID)
	}
	return res
}

func TestCoordinator_Snapshot(t *testing.T) {
	t.Run("lazy load once", func(t *testing.T) {
		catalogs := &mocks.CatalogStoreMock{
			GetCatalogFunc: func(context.Context) (*domain.Catalog, error) { return testCatalog(3), nil },
		}
		c := NewCoordinator(catalogs, &mocks.SubscriberStoreMock{}, filter.NewEvaluator(15, 5), 1)
		snap, err := c.Snapshot(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(3), snap.Version)
		_, err = c.Snapshot(context.Background())
		require.NoError(t, err)
		assert.Len(t, catalogs.GetCatalogCalls(), 1)
	})

	t.Run("missing catalog is empty", func(t *testing.T) {
		catalogs := &mocks.CatalogStoreMock{
			GetCatalogFunc: func(context.Context) (*domain.Catalog, error) { return nil, repository.ErrNotFound },
		}
		c := NewCoordinator(catalogs, &mocks.SubscriberStoreMock{}, filter.NewEvaluator(15, 5), 1)
		snap, err := c.Snapshot(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(0), snap.Version)
		assert.Empty(t, snap.NewsStories)
	})

	t.Run("load error is not cached", func(t *testing.T) {
		fail := true
		catalogs := &mocks.CatalogStoreMock{
			GetCatalogFunc: func(context.Context) (*domain.Catalog, error) {
				if fail {
					return nil, errors.New("db down")
				}
				return testCatalog(1), nil
			},
		}
		c := NewCoordinator(catalogs, &mocks.SubscriberStoreMock{}, filter.NewEvaluator(15, 5), 1)
		_, err := c.Snapshot(context.Background())
		require.ErrorContains(t, err, "db down")
		fail = false
		snap, err := c.Snapshot(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(1), snap.Version)
	})
}

func TestCoordinator_RefreshSubscriber(t *testing.T) {
	catalogs := &mocks.CatalogStoreMock{
		GetCatalogFunc: func(context.Context) (*domain.Catalog, error) { return testCatalog(1), nil },
	}
	subs := &mocks.SubscriberStoreMock{UpdateFiltersFunc: echoUpdateFilters}
	c := NewCoordinator(catalogs, subs, filter.NewEvaluator(15, 5), 1)

	res, err := c.RefreshSubscriber(context.Background(), testSubscriber(7, "apple", "google"))
	require.NoError(t, err)
	assert.Equal(t, int64(7), res.ID)
	require.Len(t, subs.UpdateFiltersCalls(), 1)
	call := subs.UpdateFiltersCalls()[0]
	assert.Equal(t, int64(7), call.ID)
	require.Len(t, call.Filters, 1)
	assert.Equal(t, []string{"s1", "s2"}, storyIDs(call.Filters[0].NewsStories))
	assert.False(t, call.Filters[0].TimeOfLastScan.IsZero())

	t.Run("store failure", func(t *testing.T) {
		subs.UpdateFiltersFunc = func(context.Context, int64, []domain.Filter) (*domain.Subscriber, error) {
			return nil, repository.ErrNotFound
		}
		_, err := c.RefreshSubscriber(context.Background(), testSubscriber(8, "apple"))
		require.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestCoordinator_RefreshAll(t *testing.T) {
	var mu sync.Mutex
	var order []string
	record := func(s string) {
		mu.Lock()
		defer mu.Unlock()
		order = append(order, s)
	}

	catalogs := &mocks.CatalogStoreMock{
		ReplaceCatalogFunc: func(_ context.Context, cat domain.Catalog) (*domain.Catalog, error) {
			record("save")
			cat.Version = 5
			return &cat, nil
		},
	}
	subs := &mocks.SubscriberStoreMock{
		SubscribersFunc: func(ctx context.Context) iter.Seq2[domain.Subscriber, error] {
			record("list")
			return subscribersSeq(testSubscriber(1, "apple"), testSubscriber(2, "google"), testSubscriber(3, "weather"))(ctx)
		},
		UpdateFiltersFunc: func(ctx context.Context, id int64, filters []domain.Filter) (*domain.Subscriber, error) {
			if id == 2 {
				return nil, errors.New("write failed")
			}
			return echoUpdateFilters(ctx, id, filters)
		},
	}
	c := NewCoordinator(catalogs, subs, filter.NewEvaluator(15, 5), 2)

	cat := *testCatalog(0)
	stats, err := c.RefreshAll(context.Background(), cat)
	require.NoError(t, err)
	assert.Equal(t, RefreshStats{Version: 5, Refreshed: 2, Failed: 1}, stats)
	assert.Equal(t, []string{"save", "list"}, order, "catalog persisted before fan-out")
	assert.Len(t, subs.UpdateFiltersCalls(), 3)

	snap, err := c.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), snap.Version)
	assert.Empty(t, catalogs.GetCatalogCalls(), "snapshot swapped in memory")

	for _, call := range subs.UpdateFiltersCalls() {
		switch call.ID {
		case 1:
			assert.Equal(t, []string{"s1"}, storyIDs(call.Filters[0].NewsStories))
		case 3:
			assert.Equal(t, []string{"s3"}, storyIDs(call.Filters[0].NewsStories))
		}
	}
}

func TestCoordinator_RefreshAll_SaveFailed(t *testing.T) {
	catalogs := &mocks.CatalogStoreMock{
		ReplaceCatalogFunc: func(context.Context, domain.Catalog) (*domain.Catalog, error) {
			return nil, errors.New("disk full")
		},
		GetCatalogFunc: func(context.Context) (*domain.Catalog, error) { return testCatalog(2), nil },
	}
	subs := &mocks.SubscriberStoreMock{}
	c := NewCoordinator(catalogs, subs, filter.NewEvaluator(15, 5), 1)

	_, err := c.RefreshAll(context.Background(), *testCatalog(0))
	require.ErrorContains(t, err, "disk full")
	assert.Empty(t, subs.SubscribersCalls())

	snap, err := c.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), snap.Version, "snapshot not replaced")
}

func TestCoordinator_RefreshAll_ListFailed(t *testing.T) {
	catalogs := &mocks.CatalogStoreMock{
		ReplaceCatalogFunc: func(_ context.Context, cat domain.Catalog) (*domain.Catalog, error) {
			cat.Version = 1
			return &cat, nil
		},
	}
	subs := &mocks.SubscriberStoreMock{
		SubscribersFunc: func(context.Context) iter.Seq2[domain.Subscriber, error] {
			return func(yield func(domain.Subscriber, error) bool) {
				if !yield(testSubscriber(1, "apple"), nil) {
					return
				}
				yield(domain.Subscriber{}, errors.New("page query failed"))
			}
		},
		UpdateFiltersFunc: echoUpdateFilters,
	}
	c := NewCoordinator(catalogs, subs, filter.NewEvaluator(15, 5), 1)

	stats, err := c.RefreshAll(context.Background(), *testCatalog(0))
	require.ErrorContains(t, err, "page query failed")
	assert.Equal(t, RefreshStats{Version: 1, Refreshed: 1}, stats)
}

func TestCoordinator_RefreshAll_Concurrent(t *testing.T) {
	catalogs := &mocks.CatalogStoreMock{
		ReplaceCatalogFunc: func(_ context.Context, cat domain.Catalog) (*domain.Catalog, error) {
			cat.Version = 1
			return &cat, nil
		},
	}
	var all []domain.Subscriber
	for i := 1; i <= 50; i++ {
		all = append(all, testSubscriber(int64(i), "apple"))
	}
	subs := &mocks.SubscriberStoreMock{SubscribersFunc: subscribersSeq(all...), UpdateFiltersFunc: echoUpdateFilters}
	c := NewCoordinator(catalogs, subs, filter.NewEvaluator(15, 5), 8)

	stats, err := c.RefreshAll(context.Background(), *testCatalog(0))
	require.NoError(t, err)
	assert.Equal(t, 50, stats.Refreshed)

	seen := map[int64]bool{}
	for _, call := range subs.UpdateFiltersCalls() {
		seen[call.ID] = true
		assert.Equal(t, []string{"s1"}, storyIDs(call.Filters[0].NewsStories))
	}
	assert.Len(t, seen, 50)
}
