package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/newswatcher/pkg/domain"
)

const defaultPageSize = 100

// ErrDuplicateEmail is returned when a subscriber with the same email exists
var ErrDuplicateEmail = errors.New("email already registered")

// SubscriberRepository handles subscriber documents
type SubscriberRepository struct {
	db       *sqlx.DB
	pageSize int
}

// subscriberSQL represents a subscriber row
type subscriberSQL struct {
	ID          int64                    `db:"id"`
	Email       string                   `db:"email"`
	DisplayName string                   `db:"display_name"`
	Filters     jsonSQL[[]domain.Filter] `db:"filters"`
	CreatedAt   time.Time                `db:"created_at"`
	UpdatedAt   time.Time                `db:"updated_at"`
}

// NewSubscriberRepository creates a new subscriber repository, pageSize controls iteration batches
func NewSubscriberRepository(db *sqlx.DB, pageSize int) *SubscriberRepository {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &SubscriberRepository{db: db, pageSize: pageSize}
}

// CreateSubscriber inserts a subscriber, one without filters gets the default filter
func (r *SubscriberRepository) CreateSubscriber(ctx context.Context, sub *domain.Subscriber) error {
	if len(sub.Filters) == 0 {
		sub.Filters = []domain.Filter{domain.DefaultFilter()}
	}
	now := time.Now()
	row := subscriberSQL{
		Email:       sub.Email,
		DisplayName: sub.DisplayName,
		Filters:     jsonSQL[[]domain.Filter]{V: sub.Filters},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	query := `
		INSERT INTO subscribers (email, display_name, filters, created_at, updated_at)
		VALUES (:email, :display_name, :filters, :created_at, :updated_at)
	`
	result, err := r.db.NamedExecContext(ctx, query, row)
	if isUniqueError(err) {
		return ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("create subscriber: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get insert id: %w", err)
	}
	sub.ID = id
	sub.CreatedAt, sub.UpdatedAt = now, now
	return nil
}

// GetSubscriber finds a subscriber by id
func (r *SubscriberRepository) GetSubscriber(ctx context.Context, id int64) (*domain.Subscriber, error) {
	var row subscriberSQL
	err := r.db.GetContext(ctx, &row, "SELECT * FROM subscribers WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get subscriber %d: %w", id, err)
	}
	return row.toDomain(), nil
}

// UpdateFilters atomically replaces subscriber filters and returns the updated document
func (r *SubscriberRepository) UpdateFilters(ctx context.Context, id int64, filters []domain.Filter) (*domain.Subscriber, error) {
	if filters == nil {
		filters = []domain.Filter{}
	}
	query := `UPDATE subscribers SET filters = ?, updated_at = ? WHERE id = ? RETURNING *`
	var row subscriberSQL
	err := withRetry(ctx, func() error {
		return r.db.GetContext(ctx, &row, query, jsonSQL[[]domain.Filter]{V: filters}, time.Now(), id)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update filters of subscriber %d: %w", id, err)
	}
	return row.toDomain(), nil
}

// DeleteSubscriber removes the subscriber, ErrNotFound if it doesn't exist
func (r *SubscriberRepository) DeleteSubscriber(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM subscribers WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete subscriber %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("get affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountSubscribers returns the number of subscribers
func (r *SubscriberRepository) CountSubscribers(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM subscribers"); err != nil {
		return 0, fmt.Errorf("count subscribers: %w", err)
	}
	return count, nil
}

// Subscribers returns a lazy sequence over all subscribers, read page by page in id order.
// No query stays open while the caller handles a subscriber, so the caller may write to
// the store during iteration. Ranging over the sequence again starts from the beginning.
func (r *SubscriberRepository) Subscribers(ctx context.Context) iter.Seq2[domain.Subscriber, error] {
	return func(yield func(domain.Subscriber, error) bool) {
		var lastID int64
		for {
			var page []subscriberSQL
			err := r.db.SelectContext(ctx, &page, "SELECT * FROM subscribers WHERE id > ? ORDER BY id LIMIT ?", lastID, r.pageSize)
			if err != nil {
				yield(domain.Subscriber{}, fmt.Errorf("select subscribers after %d: %w", lastID, err))
				return
			}
			for i := range page {
				if !yield(*page[i].toDomain(), nil) {
					return
				}
			}
			if len(page) < r.pageSize {
				return
			}
			lastID = page[len(page)-1].ID
		}
	}
}

func (s *subscriberSQL) toDomain() *domain.Subscriber {
	filters := s.Filters.V
	if filters == nil {
		filters = []domain.Filter{}
	}
	return &domain.Subscriber{
		ID:          s.ID,
		Email:       s.Email,
		DisplayName: s.DisplayName,
		Filters:     filters,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
