package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"localehub/internal/auth"
	apperrors "localehub/internal/errors"
	"localehub/internal/model"
	"localehub/internal/repository"
)

const bcryptCost = 10

// AuthService handles registration and token lifecycle operations.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, err error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	users  repository.UserRepository
	issuer auth.IssuerInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, issuer auth.IssuerInterface) AuthService {
	return &authService{users: users, issuer: issuer}
}

// Register creates a new user with a bcrypt-hashed password. The plaintext
// password is never persisted or returned.
func (s *authService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	email = normalizeEmail(email)

	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		// The unique index catches the race where two registrations pass the
		// existence check at once.
		if isDuplicateEntry(err) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and mints a fresh bearer token. An unknown email
// and a wrong password fail identically so callers cannot probe for accounts.
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// Logout revokes the presented token.
func (s *authService) Logout(ctx context.Context, token string) error {
	return s.issuer.Revoke(ctx, token)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// isDuplicateEntry reports whether err is a MySQL duplicate-key violation
// (error 1062) or GORM's portable wrapper for one.
func isDuplicateEntry(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
