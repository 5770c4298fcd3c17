package handler

import (
	"time"

	"github.com/crudkit/items-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error   string              `json:"error"`
	Details []domain.FieldError `json:"details,omitempty"`
}

// --- Request types ---

type registerRequest struct {
	Email    string `json:"email"    form:"email"    validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=8"`
}

// loginRequest accepts JSON or an OAuth2 password form, where the email
// travels as "username".
type loginRequest struct {
	Email    string `json:"email"    form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type createItemRequest struct {
	Title       string  `json:"title"        validate:"required,min=1,max=200"`
	Description *string `json:"description"`
	IsCompleted bool    `json:"is_completed"`
}

type updateItemRequest struct {
	Title       domain.Optional[string] `json:"title"        swaggertype:"string" validate:"omitempty,min=1,max=200"`
	Description domain.Optional[string] `json:"description"  swaggertype:"string"`
	IsCompleted domain.Optional[bool]   `json:"is_completed" swaggertype:"boolean"`
}

type listItemsQuery struct {
	Skip  int `query:"skip"  validate:"gte=0"`
	Limit int `query:"limit" validate:"gte=0,lte=1000"`
}

// --- Response types ---

type userResponse struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	IsActive    bool      `json:"is_active"`
	IsSuperuser bool      `json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type itemResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
