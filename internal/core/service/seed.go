package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/crudkit/items-api/internal/core/domain"
	"github.com/crudkit/items-api/internal/core/ports"
)

// Demo credentials created by Seeder.
const (
	SeedUserEmail     = "test@example.com"
	SeedUserPassword  = "testpassword123"
	SeedAdminEmail    = "admin@example.com"
	SeedAdminPassword = "adminpassword123"
)

// Seeder fills an empty database with a demo user, an admin and a few items.
type Seeder struct {
	users ports.UserRepository
	items ports.ItemRepository
	log   zerolog.Logger
}

func NewSeeder(users ports.UserRepository, items ports.ItemRepository, log zerolog.Logger) *Seeder {
	return &Seeder{users: users, items: items, log: log}
}

// Seed is a no-op when any user already exists. It reports whether data was written.
func (s *Seeder) Seed(ctx context.Context) (bool, error) {
	n, err := s.users.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("seed: count users: %w", err)
	}
	if n > 0 {
		s.log.Warn().Int64("users", n).Msg("database already has data, skipping seed")
		return false, nil
	}

	user, err := s.createUser(ctx, SeedUserEmail, SeedUserPassword, false)
	if err != nil {
		return false, err
	}
	if _, err := s.createUser(ctx, SeedAdminEmail, SeedAdminPassword, true); err != nil {
		return false, err
	}

	desc := func(v string) *string { return &v }
	samples := []domain.Item{
		{Title: "My first item", Description: desc("This is a sample item")},
		{Title: "Another item", Description: desc("This one is completed"), IsCompleted: true},
		{Title: "Important task"},
	}
	now := time.Now().UTC()
	for i := range samples {
		item := samples[i]
		item.OwnerID = user.ID
		item.CreatedAt = now
		item.UpdatedAt = now
		if _, err := s.items.Create(ctx, &item); err != nil {
			return false, fmt.Errorf("seed: create item %q: %w", item.Title, err)
		}
	}

	s.log.Info().Int("items", len(samples)).Msg("seed data created")
	return true, nil
}

func (s *Seeder) createUser(ctx context.Context, email, password string, superuser bool) (*domain.User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	u, err := s.users.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
		IsSuperuser:  superuser,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("seed: create user %s: %w", email, err)
	}
	s.log.Info().Str("email", email).Bool("superuser", superuser).Msg("seed user created")
	return u, nil
}
