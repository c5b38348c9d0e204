package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/topicosweb/backend/internal/core/domain"
	"github.com/topicosweb/backend/internal/core/ports"
)

// AuthService implements registration, login and session refresh.
type AuthService struct {
	users  ports.DocumentStore[domain.User]
	tokens ports.TokenIssuer
	now    func() time.Time
}

func NewAuthService(users ports.DocumentStore[domain.User], tokens ports.TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens, now: func() time.Time { return time.Now().UTC() }}
}

// Register creates a visitor account and signs it in.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.Session, error) {
	if in.Name == "" || in.Email == "" || len(in.Password) < 6 {
		return nil, domain.NewValidationError("name, email and a password of at least 6 characters are required")
	}
	user, err := newUser(in.Name, in.Email, in.Password, domain.RoleVisitor, s.now())
	if err != nil {
		return nil, err
	}
	created, err := createUser(ctx, s.users, user)
	if err != nil {
		return nil, err
	}
	return s.session(created)
}

func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.Session, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindOne(ctx, ports.Query{}.Where("email", ports.OpEq, normalizeEmail(in.Email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}
	return s.session(user)
}

// CheckStatus re-issues a credential for an identity that is still backed by an active user.
func (s *AuthService) CheckStatus(ctx context.Context, id domain.Identity) (*ports.Session, error) {
	user, err := s.users.FindByID(ctx, id.ID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}
	return s.session(user)
}

func (s *AuthService) session(user *domain.User) (*ports.Session, error) {
	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &ports.Session{Token: token, User: user.Summary()}, nil
}
