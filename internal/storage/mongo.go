package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"
)

// Mongo is a Store backed by a MongoDB database.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// OpenMongo connects to MongoDB, verifies the connection, and ensures a unique
// index on each collection's key field.
func OpenMongo(ctx context.Context, uri, database string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	m := &Mongo{client: client, db: client.Database(database)}
	if err := m.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return m, nil
}

func (m *Mongo) ensureIndexes(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for collection, field := range Collections() {
		g.Go(func() error {
			_, err := m.db.Collection(collection).Indexes().CreateOne(gctx, mongo.IndexModel{
				Keys:    bson.D{{Key: field, Value: 1}},
				Options: options.Index().SetUnique(true),
			})
			if err != nil {
				return fmt.Errorf("failed to create index on %s.%s: %w", collection, field, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// FindOne implements Store.
func (m *Mongo) FindOne(ctx context.Context, collection string, key Key) (Document, error) {
	var raw bson.M
	err := m.db.Collection(collection).FindOne(ctx, bson.M{key.Field: key.Value}).Decode(&raw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find %s document: %w", collection, err)
	}

	delete(raw, "_id")
	doc, _ := fromBSON(raw).(map[string]any)
	return Document(doc), nil
}

// UpsertOne implements Store.
func (m *Mongo) UpsertOne(ctx context.Context, collection string, key Key, set Document) error {
	_, err := m.db.Collection(collection).UpdateOne(ctx,
		bson.M{key.Field: key.Value},
		bson.M{"$set": map[string]any(set)},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert %s document: %w", collection, err)
	}
	return nil
}

// InsertOne implements Store.
func (m *Mongo) InsertOne(ctx context.Context, collection string, key Key, doc Document) error {
	record := make(bson.M, len(doc)+1)
	for k, v := range doc {
		record[k] = v
	}
	record[key.Field] = key.Value

	if _, err := m.db.Collection(collection).InsertOne(ctx, record); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert %s document: %w", collection, err)
	}
	return nil
}

// Ping implements Store.
func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

// Close implements Store.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// fromBSON turns decoded BSON containers into plain maps and slices.
func fromBSON(v any) any {
	switch t := v.(type) {
	case primitive.M:
		out := make(map[string]any, len(t))
		for k, inner := range t {
			out[k] = fromBSON(inner)
		}
		return out
	case primitive.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = fromBSON(e.Value)
		}
		return out
	case primitive.A:
		out := make([]any, len(t))
		for i, inner := range t {
			out[i] = fromBSON(inner)
		}
		return out
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.ObjectID:
		return t.Hex()
	case time.Time:
		return t.UTC()
	default:
		return normalizeValue(v)
	}
}
