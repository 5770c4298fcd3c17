// Package memory is an in-process implementation of the repositories, used
// for local runs without a database and by end-to-end tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/crudkit/items-api/internal/core/domain"
)

// Store holds users and items behind one lock so that cascading deletes are
// atomic. Records are copied in and out.
type Store struct {
	mu         sync.RWMutex
	users      map[int64]domain.User
	items      map[int64]domain.Item
	nextUserID int64
	nextItemID int64
}

func NewStore() *Store {
	return &Store{
		users: make(map[int64]domain.User),
		items: make(map[int64]domain.Item),
	}
}

// Users returns the user repository view of the store.
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// Items returns the item repository view of the store.
func (s *Store) Items() *ItemRepository { return &ItemRepository{s: s} }

// Reset empties the store and restarts id allocation.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make(map[int64]domain.User)
	s.items = make(map[int64]domain.Item)
	s.nextUserID = 0
	s.nextItemID = 0
}

// Checker always reports ready.
type Checker struct{}

func (Checker) Name() string                { return "memory" }
func (Checker) Check(context.Context) error { return nil }

type UserRepository struct {
	s *Store
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}

	r.s.nextUserID++
	u := *user
	u.ID = r.s.nextUserID
	r.s.users[u.ID] = u
	return &u, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) List(context.Context) ([]*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		u := u
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *UserRepository) Count(context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.users)), nil
}

func (r *UserRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.s.users, id)
	for itemID, it := range r.s.items {
		if it.OwnerID == id {
			delete(r.s.items, itemID)
		}
	}
	return nil
}

type ItemRepository struct {
	s *Store
}

func (r *ItemRepository) Create(_ context.Context, item *domain.Item) (*domain.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextItemID++
	it := *item
	it.ID = r.s.nextItemID
	r.s.items[it.ID] = it
	return &it, nil
}

func (r *ItemRepository) FindByID(_ context.Context, id int64) (*domain.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	it, ok := r.s.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	return &it, nil
}

func (r *ItemRepository) ListByOwner(_ context.Context, ownerID int64, page domain.Page) ([]*domain.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	owned := make([]*domain.Item, 0)
	for _, it := range r.s.items {
		if it.OwnerID == ownerID {
			it := it
			owned = append(owned, &it)
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].ID < owned[j].ID })

	if page.Skip >= len(owned) {
		return []*domain.Item{}, nil
	}
	owned = owned[page.Skip:]
	if page.Limit > 0 && page.Limit < len(owned) {
		owned = owned[:page.Limit]
	}
	return owned, nil
}

func (r *ItemRepository) Update(_ context.Context, item *domain.Item) (*domain.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.items[item.ID]
	if !ok || cur.OwnerID != item.OwnerID {
		return nil, domain.ErrItemNotFound
	}

	cur.Title = item.Title
	cur.Description = item.Description
	cur.IsCompleted = item.IsCompleted
	cur.UpdatedAt = item.UpdatedAt
	r.s.items[cur.ID] = cur
	return &cur, nil
}

func (r *ItemRepository) Delete(_ context.Context, id, ownerID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.items[id]
	if !ok || cur.OwnerID != ownerID {
		return domain.ErrItemNotFound
	}
	delete(r.s.items, id)
	return nil
}
