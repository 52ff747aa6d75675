package scheduler

import (
	"context"
	"iter"

	"github.com/umputun/newswatcher/pkg/domain"
)

//go:generate moq -out mocks/catalog_store.go -pkg mocks -skip-ensure -fmt goimports . CatalogStore
//go:generate moq -out mocks/subscriber_store.go -pkg mocks -skip-ensure -fmt goimports . SubscriberStore
//go:generate moq -out mocks/shared_store.go -pkg mocks -skip-ensure -fmt goimports . SharedStore
//go:generate moq -out mocks/catalog_fetcher.go -pkg mocks -skip-ensure -fmt goimports . CatalogFetcher

// CatalogStore persists the singleton catalog document
type CatalogStore interface {
	GetCatalog(ctx context.Context) (*domain.Catalog, error)
	ReplaceCatalog(ctx context.Context, cat domain.Catalog) (*domain.Catalog, error)
}

// SubscriberStore reads subscribers and writes back recomputed filters
type SubscriberStore interface {
	UpdateFilters(ctx context.Context, id int64, filters []domain.Filter) (*domain.Subscriber, error)
	Subscribers(ctx context.Context) iter.Seq2[domain.Subscriber, error]
}

// SharedStore lists and removes shared items
type SharedStore interface {
	ListSharedItems(ctx context.Context) ([]domain.SharedItem, error)
	DeleteSharedItem(ctx context.Context, id string) (bool, error)
}

// CatalogFetcher pulls one batch of stories per configured category
type CatalogFetcher interface {
	FetchAll(ctx context.Context) ([]domain.CategoryStories, error)
}

// CatalogBuilder turns fetched batches into a catalog
type CatalogBuilder interface {
	Build(ctx context.Context, batches []domain.CategoryStories) (domain.Catalog, error)
}

// Evaluator recomputes a subscriber's filters against a catalog snapshot
type Evaluator interface {
	Evaluate(sub domain.Subscriber, snapshot domain.Catalog) domain.Subscriber
}
