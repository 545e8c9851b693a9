// Package storage is the document store boundary: find-one, upsert-one with
// top-level field replacement, and insert-one, over MongoDB, PostgreSQL JSONB,
// or an in-process map.
package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Collection names.
const (
	CollectionUsers         = "users"
	CollectionCareerPaths   = "career_paths"
	CollectionLearningPaths = "learning_paths"
	CollectionAuthUsers     = "auth_users"
)

// DatabaseName is the Mongo database holding all collections.
const DatabaseName = "career_navigator"

// ErrNotFound is returned by FindOne when no document matches.
var ErrNotFound = errors.New("document not found")

// ErrDuplicate is returned by InsertOne when the key already exists.
var ErrDuplicate = errors.New("duplicate document key")

// Document is a JSON-compatible record: nested values are maps, slices,
// strings, float64 numbers, bools, or nil.
type Document map[string]any

// Key selects a single document by one field.
type Key struct {
	Field string
	Value string
}

// ByUserID keys a document by user_id.
func ByUserID(userID string) Key {
	return Key{Field: "user_id", Value: userID}
}

// ByEmail keys a document by email.
func ByEmail(email string) Key {
	return Key{Field: "email", Value: email}
}

// Store is the document store contract.
type Store interface {
	// FindOne returns the document matching key, or ErrNotFound.
	FindOne(ctx context.Context, collection string, key Key) (Document, error)
	// UpsertOne sets the given top-level fields on the document matching key,
	// creating it (with the key field) when absent.
	UpsertOne(ctx context.Context, collection string, key Key, set Document) error
	// InsertOne creates a document, failing with ErrDuplicate when key exists.
	InsertOne(ctx context.Context, collection string, key Key, doc Document) error
	// Ping checks connectivity.
	Ping(ctx context.Context) error
	// Close releases connections.
	Close(ctx context.Context) error
}

// Open picks a backend from the URI scheme: mongodb, mongodb+srv, postgres,
// postgresql, or memory.
func Open(ctx context.Context, uri string) (Store, error) {
	if strings.TrimSpace(uri) == "" {
		return nil, fmt.Errorf("document store URI is empty")
	}
	parsed, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid document store URI: %w", err)
	}

	switch parsed.Scheme {
	case "mongodb", "mongodb+srv":
		return OpenMongo(ctx, uri, DatabaseName)
	case "postgres", "postgresql":
		return OpenPostgres(ctx, uri)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unsupported document store scheme: %q", parsed.Scheme)
	}
}

// Collections lists every collection with the field it is keyed by.
func Collections() map[string]string {
	return map[string]string{
		CollectionUsers:         "user_id",
		CollectionCareerPaths:   "user_id",
		CollectionLearningPaths: "user_id",
		CollectionAuthUsers:     "email",
	}
}

// normalizeValue converts driver-specific containers and numbers into the
// plain JSON-compatible forms Document promises.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, inner := range t {
			out[k] = normalizeValue(inner)
		}
		return out
	case Document:
		return normalizeValue(map[string]any(t))
	case []any:
		out := make([]any, len(t))
		for i, inner := range t {
			out[i] = normalizeValue(inner)
		}
		return out
	case int:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case float32:
		return float64(t)
	default:
		return v
	}
}
