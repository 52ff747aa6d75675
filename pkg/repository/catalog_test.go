package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newswatcher/pkg/domain"
)

func TestCatalogRepository(t *testing.T) {
	repos := setupTestDB(t, 0)
	ctx := context.Background()

	_, err := repos.Catalog.GetCatalog(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	first := domain.Catalog{
		NewsStories: []domain.Story{
			{StoryID: "id1", Title: "one", Link: "https://example.com/1", ImageURL: "https://img/1.jpg", Date: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
			{StoryID: "id2", Title: "two", Link: "https://example.com/2", ImageURL: "https://img/2.jpg"},
		},
		HomeNewsStories: []domain.Story{{StoryID: "id1", Title: "one", Link: "https://example.com/1", ImageURL: "https://img/1.jpg"}},
	}
	saved, err := repos.Catalog.ReplaceCatalog(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.Version)
	require.Len(t, saved.NewsStories, 2)
	assert.False(t, saved.UpdatedAt.IsZero())

	got, err := repos.Catalog.GetCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Version)
	require.Len(t, got.NewsStories, 2)
	assert.Equal(t, "id2", got.NewsStories[1].StoryID)
	assert.True(t, got.NewsStories[0].Date.Equal(first.NewsStories[0].Date))
	require.Len(t, got.HomeNewsStories, 1)

	// replacement is wholesale
	saved, err = repos.Catalog.ReplaceCatalog(ctx, domain.Catalog{NewsStories: []domain.Story{{StoryID: "id3", Title: "three"}}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), saved.Version)
	require.Len(t, saved.NewsStories, 1)
	assert.Equal(t, "id3", saved.NewsStories[0].StoryID)
	assert.NotNil(t, saved.HomeNewsStories)
	assert.Empty(t, saved.HomeNewsStories)
}
