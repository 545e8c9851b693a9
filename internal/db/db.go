// Package db is the persistence gateway: per-user profile, career path and
// learning plan documents, plus auth accounts, over a storage.Store.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/career-navigator/internal/shape"
	"github.com/jonathan/career-navigator/internal/storage"
)

// Field names of stored documents.
const (
	FieldUserID          = "user_id"
	FieldCurrentRole     = "current_role"
	FieldYearsExperience = "years_experience"
	FieldProfileText     = "profile_text"
	FieldExtractedSkills = "extracted_skills"
	FieldPaths           = "paths"
	FieldRecommendations = "recommendations"
)

// DB wraps a document store
type DB struct {
	store storage.Store
}

// New wraps an open store.
func New(store storage.Store) *DB {
	return &DB{store: store}
}

// Connect opens the store named by uri (see storage.Open).
func Connect(ctx context.Context, uri string) (*DB, error) {
	store, err := storage.Open(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to document store: %w", err)
	}
	return &DB{store: store}, nil
}

// Close closes the underlying store
func (db *DB) Close(ctx context.Context) error {
	if db.store == nil {
		return nil
	}
	return db.store.Close(ctx)
}

// Ping checks store connectivity.
func (db *DB) Ping(ctx context.Context) error {
	return db.store.Ping(ctx)
}

// UpsertProfile creates or replaces the user's profile document.
func (db *DB) UpsertProfile(ctx context.Context, p *Profile) error {
	if p == nil || p.UserID == "" {
		return fmt.Errorf("profile requires a user id")
	}
	err := db.store.UpsertOne(ctx, storage.CollectionUsers, storage.ByUserID(p.UserID), storage.Document{
		FieldCurrentRole:     p.CurrentRole,
		FieldYearsExperience: p.YearsExperience,
		FieldProfileText:     p.ProfileText,
		FieldExtractedSkills: p.ExtractedSkills.Document(),
	})
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

// GetProfile returns the user's profile, or nil if none was saved.
func (db *DB) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	doc, err := db.find(ctx, storage.CollectionUsers, storage.ByUserID(userID))
	if err != nil || doc == nil {
		return nil, wrap("failed to get profile", err)
	}
	return profileFromDocument(doc), nil
}

// UpsertCareerPaths stores v under "paths", replacing any earlier value.
func (db *DB) UpsertCareerPaths(ctx context.Context, userID string, v shape.Value) error {
	return db.upsertValue(ctx, storage.CollectionCareerPaths, userID, FieldPaths, v)
}

// UpsertCareerPathsText normalizes LLM text and stores it as career paths.
func (db *DB) UpsertCareerPathsText(ctx context.Context, userID, text string) error {
	return db.UpsertCareerPaths(ctx, userID, shape.Normalize(text))
}

// GetCareerPaths returns the user's career paths, or nil if none were saved.
func (db *DB) GetCareerPaths(ctx context.Context, userID string) (*CareerPaths, error) {
	v, ok, err := db.getValue(ctx, storage.CollectionCareerPaths, userID, FieldPaths)
	if err != nil || !ok {
		return nil, wrap("failed to get career paths", err)
	}
	return &CareerPaths{UserID: userID, Paths: v}, nil
}

// UpsertLearningPlan stores v under "recommendations", replacing any earlier value.
func (db *DB) UpsertLearningPlan(ctx context.Context, userID string, v shape.Value) error {
	return db.upsertValue(ctx, storage.CollectionLearningPaths, userID, FieldRecommendations, v)
}

// UpsertLearningPlanText normalizes LLM text and stores it as a learning plan.
func (db *DB) UpsertLearningPlanText(ctx context.Context, userID, text string) error {
	return db.UpsertLearningPlan(ctx, userID, shape.Normalize(text))
}

// GetLearningPlan returns the user's learning plan, or nil if none was saved.
func (db *DB) GetLearningPlan(ctx context.Context, userID string) (*LearningPlan, error) {
	v, ok, err := db.getValue(ctx, storage.CollectionLearningPaths, userID, FieldRecommendations)
	if err != nil || !ok {
		return nil, wrap("failed to get learning plan", err)
	}
	return &LearningPlan{UserID: userID, Recommendations: v}, nil
}

func (db *DB) upsertValue(ctx context.Context, collection, userID, field string, v shape.Value) error {
	if userID == "" {
		return fmt.Errorf("%s requires a user id", collection)
	}
	if v.IsZero() {
		return fmt.Errorf("refusing to store empty %s", field)
	}
	err := db.store.UpsertOne(ctx, collection, storage.ByUserID(userID), storage.Document{field: v.Document()})
	if err != nil {
		return fmt.Errorf("failed to upsert %s: %w", collection, err)
	}
	return nil
}

func (db *DB) getValue(ctx context.Context, collection, userID, field string) (shape.Value, bool, error) {
	doc, err := db.find(ctx, collection, storage.ByUserID(userID))
	if err != nil || doc == nil {
		return shape.Value{}, false, err
	}
	v := shape.FromAny(doc[field])
	return v, !v.IsZero(), nil
}

// find maps ErrNotFound to a nil document.
func (db *DB) find(ctx context.Context, collection string, key storage.Key) (storage.Document, error) {
	doc, err := db.store.FindOne(ctx, collection, key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func wrap(msg string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
