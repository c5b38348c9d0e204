package ports

import (
	"context"

	"github.com/topicosweb/backend/internal/core/domain"
)

type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Session is what auth endpoints return.
type Session struct {
	Token string             `json:"token"`
	User  domain.UserSummary `json:"user"`
}

// AuthService handles registration, login and token refresh.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*Session, error)
	Login(ctx context.Context, in LoginInput) (*Session, error)
	CheckStatus(ctx context.Context, id domain.Identity) (*Session, error)
}
