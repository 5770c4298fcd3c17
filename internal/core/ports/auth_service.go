package ports

import (
	"context"

	"github.com/crudkit/items-api/internal/core/domain"
)

// AuthService is the identity provider: it turns credentials into tokens and
// tokens back into a verified Session.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.Token, error)
	Authenticate(ctx context.Context, token string) (*domain.Session, error)
	Logout(ctx context.Context, session *domain.Session) error
}

// UserService administers accounts.
type UserService interface {
	Get(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, id int64) error
}
