package ports

import (
	"context"

	"github.com/crudkit/items-api/internal/core/domain"
)

// ItemService defines the use-case operations on items. Every operation takes
// the caller as owner; Get, Update and Delete fail with domain.ErrForbidden
// when the item belongs to someone else.
type ItemService interface {
	Create(ctx context.Context, owner *domain.User, in domain.NewItem) (*domain.Item, error)
	List(ctx context.Context, owner *domain.User, page domain.Page) ([]*domain.Item, error)
	Get(ctx context.Context, owner *domain.User, id int64) (*domain.Item, error)
	Update(ctx context.Context, owner *domain.User, id int64, patch domain.ItemPatch) (*domain.Item, error)
	Delete(ctx context.Context, owner *domain.User, id int64) error
}
