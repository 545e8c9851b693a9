package server

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/career-navigator/internal/config"
	"github.com/jonathan/career-navigator/internal/db"
	"github.com/jonathan/career-navigator/internal/types"
)

// UserService registers and authenticates accounts.
type UserService struct {
	db        *db.DB
	passwords *config.PasswordConfig
}

// NewUserService creates a new UserService with the given dependencies
func NewUserService(database *db.DB, passwords *config.PasswordConfig) *UserService {
	return &UserService{db: database, passwords: passwords}
}

func publicUser(u *db.AuthUser) *types.User {
	if u == nil {
		return nil
	}
	return &types.User{ID: u.UserID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

// Register creates an account. Emails are compared case-insensitively.
func (s *UserService) Register(ctx context.Context, req *types.RegisterRequest) (*types.User, error) {
	u := &db.AuthUser{
		Email:        req.Email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: s.passwords.HashPassword(req.Password),
	}
	if err := s.db.CreateAuthUser(ctx, u); err != nil {
		if errors.Is(err, db.ErrEmailTaken) {
			return nil, &ErrEmailAlreadyExists{Email: db.NormalizeEmail(req.Email)}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return publicUser(u), nil
}

// Login checks credentials. Unknown emails and wrong passwords give the same error.
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.User, error) {
	u, err := s.db.GetAuthUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	if u == nil || !s.passwords.VerifyPassword(req.Password, u.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}
	return publicUser(u), nil
}
