package domain

import (
	"strings"
	"time"
)

// User models an account that can authenticate and own items.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	IsSuperuser  bool      `json:"is_superuser"`
	CreatedAt    time.Time `json:"created_at"`
}

// NormalizeEmail is the canonical form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Session is the verified identity behind a bearer token.
type Session struct {
	User      *User
	TokenID   string
	ExpiresAt time.Time
}

// Token is what a successful login hands back to the caller.
type Token struct {
	AccessToken string
	TokenType   string
	ExpiresIn   time.Duration
	User        *User
}
