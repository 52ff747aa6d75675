package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/newswatcher/pkg/domain"
)

// CatalogRepository keeps the singleton catalog document
type CatalogRepository struct {
	db *sqlx.DB
}

// catalogSQL represents the catalog row
type catalogSQL struct {
	ID              int64                   `db:"id"`
	Version         int64                   `db:"version"`
	NewsStories     jsonSQL[[]domain.Story] `db:"news_stories"`
	HomeNewsStories jsonSQL[[]domain.Story] `db:"home_news_stories"`
	UpdatedAt       time.Time               `db:"updated_at"`
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// GetCatalog returns the stored catalog or ErrNotFound if no cycle persisted one yet
func (r *CatalogRepository) GetCatalog(ctx context.Context) (*domain.Catalog, error) {
	var row catalogSQL
	err := r.db.GetContext(ctx, &row, "SELECT * FROM catalog WHERE id = 1")
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get catalog: %w", err)
	}
	return row.toDomain(), nil
}

// ReplaceCatalog replaces stories of the catalog wholesale, bumps its version and returns
// the stored document
func (r *CatalogRepository) ReplaceCatalog(ctx context.Context, cat domain.Catalog) (*domain.Catalog, error) {
	if cat.UpdatedAt.IsZero() {
		cat.UpdatedAt = time.Now()
	}
	query := `
		INSERT INTO catalog (id, version, news_stories, home_news_stories, updated_at)
		VALUES (1, 1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			version = catalog.version + 1,
			news_stories = excluded.news_stories,
			home_news_stories = excluded.home_news_stories,
			updated_at = excluded.updated_at
		RETURNING *
	`
	var row catalogSQL
	err := withRetry(ctx, func() error {
		return r.db.GetContext(ctx, &row, query, jsonSQL[[]domain.Story]{V: nonNilStories(cat.NewsStories)},
			jsonSQL[[]domain.Story]{V: nonNilStories(cat.HomeNewsStories)}, cat.UpdatedAt)
	})
	if err != nil {
		return nil, fmt.Errorf("replace catalog: %w", err)
	}
	return row.toDomain(), nil
}

func (c *catalogSQL) toDomain() *domain.Catalog {
	return &domain.Catalog{
		Version:         c.Version,
		NewsStories:     nonNilStories(c.NewsStories.V),
		HomeNewsStories: nonNilStories(c.HomeNewsStories.V),
		UpdatedAt:       c.UpdatedAt,
	}
}

func nonNilStories(s []domain.Story) []domain.Story {
	if s == nil {
		return []domain.Story{}
	}
	return s
}
