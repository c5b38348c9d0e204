package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/topicosweb/backend/internal/core/domain"
	"github.com/topicosweb/backend/internal/core/ports"
)

type userService struct {
	crud[domain.User]
}

// NewUserService returns a UserService backed by store.
func NewUserService(store ports.DocumentStore[domain.User]) ports.UserService {
	return &userService{crud: newCrud(store)}
}

func (s *userService) List(ctx context.Context, f ports.UserFilter, p ports.Page) (*ports.ListResult[domain.User], error) {
	q := ports.Query{}
	if f.Role != "" {
		q = q.Where("role", ports.OpEq, f.Role)
	}
	if f.Name != "" {
		q = q.Where("name", ports.OpContains, f.Name)
	}
	if f.IsActive != nil {
		q = q.Where("isActive", ports.OpEq, *f.IsActive)
	}
	res, err := s.list(ctx, q, p)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return res, nil
}

func (s *userService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.store.FindByID(ctx, id)
}

func (s *userService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.store.FindOne(ctx, ports.Query{}.Where("email", ports.OpEq, normalizeEmail(email)))
}

func (s *userService) Create(ctx context.Context, in ports.UserInput) (*domain.User, error) {
	if blank(in.Name) || blank(in.Email) || blank(in.Password) {
		return nil, required("name", "email", "password")
	}
	role := domain.RoleVisitor
	if in.Role != nil {
		role = domain.Role(*in.Role)
	}
	user, err := newUser(*in.Name, *in.Email, *in.Password, role, s.now())
	if err != nil {
		return nil, err
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	return createUser(ctx, s.store, user)
}

func (s *userService) Update(ctx context.Context, id string, in ports.UserInput) (*domain.User, error) {
	set := setter{}
	set.str("name", in.Name)
	set.str("role", in.Role)
	set.val("isActive", deref(in.IsActive), in.IsActive != nil)
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if err := ensureEmailFree(ctx, s.store, email, id); err != nil {
			return nil, err
		}
		set["email"] = email
	}
	if in.Password != nil {
		hash, err := hashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		set["password"] = hash
	}
	if err := set.stamp(s.now()); err != nil {
		return nil, err
	}
	return s.store.UpdateByID(ctx, id, set)
}

func (s *userService) Delete(ctx context.Context, id string) (*domain.User, error) {
	return s.store.DeleteByID(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// newUser builds an active account with a hashed password.
func newUser(name, email, password string, role domain.Role, now time.Time) (*domain.User, error) {
	if !role.Valid() {
		return nil, domain.NewValidationError("role must be one of: visitor analyst admin")
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	return &domain.User{
		Name:         strings.TrimSpace(name),
		Email:        normalizeEmail(email),
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func createUser(ctx context.Context, store ports.DocumentStore[domain.User], user *domain.User) (*domain.User, error) {
	if err := ensureEmailFree(ctx, store, user.Email, ""); err != nil {
		return nil, err
	}
	return store.Insert(ctx, user)
}

func ensureEmailFree(ctx context.Context, store ports.DocumentStore[domain.User], email, exceptID string) error {
	q := ports.Query{}.Where("email", ports.OpEq, email)
	if exceptID != "" {
		q = q.Where("_id", ports.OpNe, exceptID)
	}
	_, err := store.FindOne(ctx, q)
	switch {
	case err == nil:
		return domain.NewConflictError(fmt.Sprintf("email %q is already registered", email))
	case errors.Is(err, domain.ErrNotFound):
		return nil
	default:
		return err
	}
}
