package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS documents (
	collection TEXT NOT NULL,
	key_field  TEXT NOT NULL,
	key_value  TEXT NOT NULL,
	body       JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (collection, key_field, key_value)
)`

// Postgres is a Store that keeps every collection in one JSONB table.
// Upserts merge with the jsonb || operator, which replaces top-level keys.
type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres establishes a connection pool and creates the documents table.
func OpenPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create documents table: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// FindOne implements Store.
func (p *Postgres) FindOne(ctx context.Context, collection string, key Key) (Document, error) {
	var body []byte
	err := p.pool.QueryRow(ctx,
		`SELECT body FROM documents WHERE collection = $1 AND key_field = $2 AND key_value = $3`,
		collection, key.Field, key.Value,
	).Scan(&body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find %s document: %w", collection, err)
	}

	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode %s document: %w", collection, err)
	}
	return doc, nil
}

// UpsertOne implements Store.
func (p *Postgres) UpsertOne(ctx context.Context, collection string, key Key, set Document) error {
	body, err := encodeWithKey(set, key)
	if err != nil {
		return err
	}

	_, err = p.pool.Exec(ctx,
		`INSERT INTO documents (collection, key_field, key_value, body)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (collection, key_field, key_value)
		 DO UPDATE SET body = documents.body || EXCLUDED.body, updated_at = NOW()`,
		collection, key.Field, key.Value, body,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert %s document: %w", collection, err)
	}
	return nil
}

// InsertOne implements Store.
func (p *Postgres) InsertOne(ctx context.Context, collection string, key Key, doc Document) error {
	body, err := encodeWithKey(doc, key)
	if err != nil {
		return err
	}

	tag, err := p.pool.Exec(ctx,
		`INSERT INTO documents (collection, key_field, key_value, body)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (collection, key_field, key_value) DO NOTHING`,
		collection, key.Field, key.Value, body,
	)
	if err != nil {
		return fmt.Errorf("failed to insert %s document: %w", collection, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDuplicate
	}
	return nil
}

// Ping implements Store.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close implements Store.
func (p *Postgres) Close(context.Context) error {
	p.pool.Close()
	return nil
}

func encodeWithKey(doc Document, key Key) ([]byte, error) {
	record := make(map[string]any, len(doc)+1)
	for k, v := range doc {
		record[k] = v
	}
	record[key.Field] = key.Value

	body, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	return body, nil
}
