package storage

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// runStoreContract exercises the Store contract against any backend.
func runStoreContract(t *testing.T, store Store) {
	ctx := context.Background()
	// Unique keys let the contract run against shared databases.
	userID := "contract-" + uuid.NewString()

	t.Run("find missing returns ErrNotFound", func(t *testing.T) {
		_, err := store.FindOne(ctx, CollectionCareerPaths, ByUserID(userID))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("upsert creates document with key field", func(t *testing.T) {
		err := store.UpsertOne(ctx, CollectionCareerPaths, ByUserID(userID), Document{
			"paths": []any{map[string]any{"title": "Staff Engineer"}},
		})
		require.NoError(t, err)

		doc, err := store.FindOne(ctx, CollectionCareerPaths, ByUserID(userID))
		require.NoError(t, err)
		assert.Equal(t, userID, doc["user_id"])
		assert.Equal(t, []any{map[string]any{"title": "Staff Engineer"}}, doc["paths"])
	})

	t.Run("upsert replaces top-level fields without merging nested values", func(t *testing.T) {
		err := store.UpsertOne(ctx, CollectionCareerPaths, ByUserID(userID), Document{
			"paths": map[string]any{"raw_response": "later"},
			"note":  "kept",
		})
		require.NoError(t, err)

		err = store.UpsertOne(ctx, CollectionCareerPaths, ByUserID(userID), Document{
			"paths": map[string]any{"paths": []any{}},
		})
		require.NoError(t, err)

		doc, err := store.FindOne(ctx, CollectionCareerPaths, ByUserID(userID))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"paths": []any{}}, doc["paths"])
		assert.Equal(t, "kept", doc["note"], "fields not named in $set survive")
	})

	t.Run("insert rejects duplicate key", func(t *testing.T) {
		email := userID + "@example.com"
		require.NoError(t, store.InsertOne(ctx, CollectionAuthUsers, ByEmail(email), Document{"name": "A"}))
		err := store.InsertOne(ctx, CollectionAuthUsers, ByEmail(email), Document{"name": "B"})
		assert.ErrorIs(t, err, ErrDuplicate)

		doc, err := store.FindOne(ctx, CollectionAuthUsers, ByEmail(email))
		require.NoError(t, err)
		assert.Equal(t, "A", doc["name"])
		assert.Equal(t, email, doc["email"])
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, store.Ping(ctx))
	})
}

func TestMemory_Contract(t *testing.T) {
	runStoreContract(t, NewMemory())
}

func TestPostgres_Contract(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}
	store, err := OpenPostgres(context.Background(), dsn)
	require.NoError(t, err)
	defer func() { _ = store.Close(context.Background()) }()

	runStoreContract(t, store)
}

func TestMongo_Contract(t *testing.T) {
	uri := os.Getenv("TEST_MONGODB_URI")
	if uri == "" {
		t.Skip("TEST_MONGODB_URI not set, skipping integration test")
	}
	store, err := OpenMongo(context.Background(), uri, DatabaseName+"_test")
	require.NoError(t, err)
	defer func() { _ = store.Close(context.Background()) }()

	runStoreContract(t, store)
}

func TestMemory_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	input := Document{"tags": []any{"a"}}
	require.NoError(t, store.UpsertOne(ctx, CollectionUsers, ByUserID("u1"), input))
	input["tags"] = []any{"mutated"}

	doc, err := store.FindOne(ctx, CollectionUsers, ByUserID("u1"))
	require.NoError(t, err)
	assert.Equal(t, []any{"a"}, doc["tags"])

	doc["tags"] = []any{"mutated again"}
	again, err := store.FindOne(ctx, CollectionUsers, ByUserID("u1"))
	require.NoError(t, err)
	assert.Equal(t, []any{"a"}, again["tags"])
}

func TestMemory_OneDocumentPerKey(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.UpsertOne(ctx, CollectionLearningPaths, ByUserID("u1"), Document{"n": float64(i)}))
	}
	require.NoError(t, store.UpsertOne(ctx, CollectionLearningPaths, ByUserID("u2"), Document{"n": 1.0}))

	assert.Equal(t, 2, store.Len(CollectionLearningPaths))
}

func TestOpen(t *testing.T) {
	tests := []struct {
		uri     string
		wantErr string
	}{
		{"", "empty"},
		{"redis://localhost:6379", "unsupported"},
		{"://bad", "invalid"},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			_, err := Open(context.Background(), tt.uri)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	store, err := Open(context.Background(), "memory://")
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, store)
}

func TestFromBSON(t *testing.T) {
	when := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	oid := primitive.NewObjectID()

	in := primitive.M{
		"count":   int32(3),
		"big":     int64(7),
		"score":   4.5,
		"when":    primitive.NewDateTimeFromTime(when),
		"id":      oid,
		"list":    primitive.A{"x", primitive.M{"n": int32(1)}},
		"ordered": primitive.D{{Key: "k", Value: "v"}},
	}

	out, ok := fromBSON(in).(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 3.0, out["count"])
	assert.Equal(t, 7.0, out["big"])
	assert.Equal(t, 4.5, out["score"])
	assert.Equal(t, when, out["when"])
	assert.Equal(t, oid.Hex(), out["id"])
	assert.Equal(t, []any{"x", map[string]any{"n": 1.0}}, out["list"])
	assert.Equal(t, map[string]any{"k": "v"}, out["ordered"])
}

func TestCollections(t *testing.T) {
	cols := Collections()
	assert.Len(t, cols, 4)
	assert.Equal(t, "email", cols[CollectionAuthUsers])
	for _, name := range []string{CollectionUsers, CollectionCareerPaths, CollectionLearningPaths} {
		assert.Equal(t, "user_id", cols[name], fmt.Sprintf("collection %s", name))
	}
}
