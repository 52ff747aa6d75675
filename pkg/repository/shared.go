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

var (
	// ErrSharedLimit is returned when the number of shared items reached the configured maximum
	ErrSharedLimit = errors.New("shared story limit reached")
	// ErrAlreadyShared is returned when the story was shared before
	ErrAlreadyShared = errors.New("story was already shared")
)

// SharedRepository handles shared discussion items
type SharedRepository struct {
	db *sqlx.DB
}

// sharedSQL represents a shared item row
type sharedSQL struct {
	ID       string                    `db:"id"`
	Story    jsonSQL[domain.Story]     `db:"story"`
	Comments jsonSQL[[]domain.Comment] `db:"comments"`
	SharedAt time.Time                 `db:"shared_at"`
}

// NewSharedRepository creates a new shared item repository
func NewSharedRepository(db *sqlx.DB) *SharedRepository {
	return &SharedRepository{db: db}
}

// CreateSharedItem inserts the item unless maxItems items are already shared (maxItems <= 0 means
// no limit). The count check and the insert are a single statement.
func (r *SharedRepository) CreateSharedItem(ctx context.Context, item domain.SharedItem, maxItems int) error {
	if len(item.Comments) == 0 {
		return fmt.Errorf("shared item %s has no comments", item.ID)
	}
	if maxItems <= 0 {
		maxItems = -1
	}
	query := `
		INSERT INTO shared_items (id, story, comments, shared_at)
		SELECT ?, ?, ?, ?
		WHERE ? < 0 OR (SELECT COUNT(*) FROM shared_items) < ?
	`
	res, err := r.db.ExecContext(ctx, query, item.ID, jsonSQL[domain.Story]{V: item.Story},
		jsonSQL[[]domain.Comment]{V: item.Comments}, item.SharedAt(), maxItems, maxItems)
	if isUniqueError(err) {
		return ErrAlreadyShared
	}
	if err != nil {
		return fmt.Errorf("create shared item %s: %w", item.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("get affected rows: %w", err)
	}
	if n == 0 {
		return ErrSharedLimit
	}
	return nil
}

// GetSharedItem finds a shared item by id
func (r *SharedRepository) GetSharedItem(ctx context.Context, id string) (*domain.SharedItem, error) {
	var row sharedSQL
	err := r.db.GetContext(ctx, &row, "SELECT * FROM shared_items WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get shared item %s: %w", id, err)
	}
	return row.toDomain(), nil
}

// AddComment appends a comment and returns the updated item
func (r *SharedRepository) AddComment(ctx context.Context, id string, comment domain.Comment) (*domain.SharedItem, error) {
	query := `UPDATE shared_items SET comments = json_insert(comments, '$[#]', json(?)) WHERE id = ? RETURNING *`
	var row sharedSQL
	err := withRetry(ctx, func() error {
		return r.db.GetContext(ctx, &row, query, jsonSQL[domain.Comment]{V: comment}, id)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("add comment to %s: %w", id, err)
	}
	return row.toDomain(), nil
}

// ListSharedItems returns all shared items, oldest first
func (r *SharedRepository) ListSharedItems(ctx context.Context) ([]domain.SharedItem, error) {
	var rows []sharedSQL
	if err := r.db.SelectContext(ctx, &rows, "SELECT * FROM shared_items ORDER BY shared_at ASC, id ASC"); err != nil {
		return nil, fmt.Errorf("list shared items: %w", err)
	}
	res := make([]domain.SharedItem, len(rows))
	for i := range rows {
		res[i] = *rows[i].toDomain()
	}
	return res, nil
}

// DeleteSharedItem atomically deletes the item and reports whether it existed
func (r *SharedRepository) DeleteSharedItem(ctx context.Context, id string) (bool, error) {
	var deleted string
	err := withRetry(ctx, func() error {
		return r.db.GetContext(ctx, &deleted, "DELETE FROM shared_items WHERE id = ? RETURNING id", id)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("delete shared item %s: %w", id, err)
	}
	return true, nil
}

// CountSharedItems returns the number of shared items
func (r *SharedRepository) CountSharedItems(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM shared_items"); err != nil {
		return 0, fmt.Errorf("count shared items: %w", err)
	}
	return count, nil
}

func (s *sharedSQL) toDomain() *domain.SharedItem {
	comments := s.Comments.V
	if comments == nil {
		comments = []domain.Comment{}
	}
	return &domain.SharedItem{ID: s.ID, Story: s.Story.V, Comments: comments}
}
