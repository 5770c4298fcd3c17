package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/crudkit/items-api/internal/pkg/metrics"
	"github.com/crudkit/items-api/internal/core/domain"
	"github.com/crudkit/items-api/internal/core/ports"
)

// ItemService implements ports.ItemService on top of an ItemRepository.
type ItemService struct {
	repo   ports.ItemRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewItemService(repo ports.ItemRepository, logger zerolog.Logger) *ItemService {
	return &ItemService{repo: repo, logger: logger, now: time.Now}
}

// Create stores a new item owned by owner.
func (s *ItemService) Create(ctx context.Context, owner *domain.User, in domain.NewItem) (*domain.Item, error) {
	if n := len([]rune(in.Title)); n < domain.TitleMinLength || n > domain.TitleMaxLength {
		return nil, domain.NewValidationError("title", "title must be between 1 and 200 characters")
	}

	now := s.now().UTC()
	item, err := s.repo.Create(ctx, &domain.Item{
		OwnerID:     owner.ID,
		Title:       in.Title,
		Description: in.Description,
		IsCompleted: in.IsCompleted,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", owner.ID).Msg("failed to create item")
		return nil, fmt.Errorf("create item: %w", err)
	}

	metrics.ItemOperationsTotal.WithLabelValues("create").Inc()
	s.logger.Info().Int64("item_id", item.ID).Int64("user_id", owner.ID).Msg("item created")
	return item, nil
}

// List returns the owner's items only.
func (s *ItemService) List(ctx context.Context, owner *domain.User, page domain.Page) ([]*domain.Item, error) {
	if page.Skip < 0 {
		page.Skip = 0
	}
	if page.Limit < 0 {
		page.Limit = 0
	}

	items, err := s.repo.ListByOwner(ctx, owner.ID, page)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	metrics.ItemOperationsTotal.WithLabelValues("list").Inc()
	return items, nil
}

func (s *ItemService) Get(ctx context.Context, owner *domain.User, id int64) (*domain.Item, error) {
	item, err := s.authorize(ctx, owner, id, "get")
	if err != nil {
		return nil, err
	}
	metrics.ItemOperationsTotal.WithLabelValues("get").Inc()
	return item, nil
}

// Update applies only the supplied fields of patch.
func (s *ItemService) Update(ctx context.Context, owner *domain.User, id int64, patch domain.ItemPatch) (*domain.Item, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	item, err := s.authorize(ctx, owner, id, "update")
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return item, nil
	}

	patch.Apply(item, s.now().UTC())

	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("update item %d: %w", id, err)
	}

	metrics.ItemOperationsTotal.WithLabelValues("update").Inc()
	s.logger.Info().Int64("item_id", id).Int64("user_id", owner.ID).Msg("item updated")
	return updated, nil
}

func (s *ItemService) Delete(ctx context.Context, owner *domain.User, id int64) error {
	if _, err := s.authorize(ctx, owner, id, "delete"); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id, owner.ID); err != nil {
		return fmt.Errorf("delete item %d: %w", id, err)
	}

	metrics.ItemOperationsTotal.WithLabelValues("delete").Inc()
	s.logger.Info().Int64("item_id", id).Int64("user_id", owner.ID).Msg("item deleted")
	return nil
}

// authorize resolves the item and checks that owner holds it. It runs before
// every read or mutation of a single item.
func (s *ItemService) authorize(ctx context.Context, owner *domain.User, id int64, op string) (*domain.Item, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !item.OwnedBy(owner.ID) {
		metrics.OwnershipDenialsTotal.WithLabelValues(op).Inc()
		s.logger.Warn().
			Int64("item_id", id).
			Int64("user_id", owner.ID).
			Str("op", op).
			Msg("ownership check failed")
		return nil, domain.ErrForbidden
	}
	return item, nil
}
