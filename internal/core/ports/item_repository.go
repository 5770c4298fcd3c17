package ports

import (
	"context"

	"github.com/crudkit/items-api/internal/core/domain"
)

// ItemRepository defines persistence operations for items. Writes are scoped
// by owner so a row that changed hands or vanished is reported as
// domain.ErrItemNotFound.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) (*domain.Item, error)
	// FindByID retrieves an item regardless of owner; the caller enforces ownership.
	FindByID(ctx context.Context, id int64) (*domain.Item, error)
	// ListByOwner returns the owner's items ordered by ID.
	ListByOwner(ctx context.Context, ownerID int64, page domain.Page) ([]*domain.Item, error)
	// Update persists the mutable fields of item.
	Update(ctx context.Context, item *domain.Item) (*domain.Item, error)
	Delete(ctx context.Context, id, ownerID int64) error
}
