package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/crudkit/items-api/internal/core/domain"
)

const itemColumns = `id, user_id, title, description, is_completed, created_at, updated_at`

// ItemRepository implements ports.ItemRepository. Update and Delete filter on
// user_id as well as id.
type ItemRepository struct {
	db DBTX
}

func NewItemRepository(db DBTX) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	query := `INSERT INTO items (user_id, title, description, is_completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	out := *item
	err := r.db.QueryRowContext(ctx, query,
		item.OwnerID, item.Title, item.Description, item.IsCompleted, item.CreatedAt, item.UpdatedAt).Scan(&out.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &out, nil
}

func (r *ItemRepository) FindByID(ctx context.Context, id int64) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`

	item, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

// ListByOwner pages through the owner's items. A zero limit binds NULL,
// which PostgreSQL treats as LIMIT ALL.
func (r *ItemRepository) ListByOwner(ctx context.Context, ownerID int64, page domain.Page) ([]*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items
		WHERE user_id = $1
		ORDER BY id
		OFFSET $2 LIMIT $3`

	var limit any
	if page.Limit > 0 {
		limit = page.Limit
	}

	rows, err := r.db.QueryContext(ctx, query, ownerID, page.Skip, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	items := make([]*domain.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return items, nil
}

func (r *ItemRepository) Update(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	query := `UPDATE items
		SET title = $1, description = $2, is_completed = $3, updated_at = $4
		WHERE id = $5 AND user_id = $6
		RETURNING ` + itemColumns

	updated, err := scanItem(r.db.QueryRowContext(ctx, query,
		item.Title, item.Description, item.IsCompleted, item.UpdatedAt, item.ID, item.OwnerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return updated, nil
}

func (r *ItemRepository) Delete(ctx context.Context, id, ownerID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (*domain.Item, error) {
	var (
		item        domain.Item
		description sql.NullString
	)
	if err := s.Scan(&item.ID, &item.OwnerID, &item.Title, &description, &item.IsCompleted, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}
	if description.Valid {
		d := description.String
		item.Description = &d
	}
	return &item, nil
}
