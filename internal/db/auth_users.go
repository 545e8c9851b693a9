package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/career-navigator/internal/storage"
)

// ErrEmailTaken is returned by CreateAuthUser when the email is registered.
var ErrEmailTaken = errors.New("email already registered")

// NormalizeEmail lowercases and trims an email for use as a key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateAuthUser inserts an account. UserID and CreatedAt are assigned when empty.
func (db *DB) CreateAuthUser(ctx context.Context, u *AuthUser) error {
	if u == nil || u.Email == "" {
		return fmt.Errorf("auth user requires an email")
	}
	u.Email = NormalizeEmail(u.Email)
	if u.UserID == "" {
		u.UserID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	err := db.store.InsertOne(ctx, storage.CollectionAuthUsers, storage.ByEmail(u.Email), storage.Document{
		"user_id":       u.UserID,
		"name":          u.Name,
		"password_hash": u.PasswordHash,
		"created_at":    u.CreatedAt.Format(time.RFC3339),
	})
	if errors.Is(err, storage.ErrDuplicate) {
		return ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("failed to create auth user: %w", err)
	}
	return nil
}

// GetAuthUserByEmail returns the account for email, or nil if none exists.
func (db *DB) GetAuthUserByEmail(ctx context.Context, email string) (*AuthUser, error) {
	email = NormalizeEmail(email)
	doc, err := db.find(ctx, storage.CollectionAuthUsers, storage.ByEmail(email))
	if err != nil {
		return nil, fmt.Errorf("failed to get auth user: %w", err)
	}
	if doc == nil {
		return nil, nil
	}

	u := &AuthUser{Email: email}
	u.UserID, _ = doc["user_id"].(string)
	u.Name, _ = doc["name"].(string)
	u.PasswordHash, _ = doc["password_hash"].(string)
	switch created := doc["created_at"].(type) {
	case string:
		u.CreatedAt, _ = time.Parse(time.RFC3339, created)
	case time.Time:
		u.CreatedAt = created
	}
	return u, nil
}
