package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Memory is an in-process Store used for local runs and tests. Documents are
// deep-copied through JSON on the way in and out, so callers never share state
// with the store.
type Memory struct {
	mu   sync.RWMutex
	data map[string]map[string]Document
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]map[string]Document)}
}

func memoryKey(key Key) string {
	return key.Field + "\x00" + key.Value
}

// FindOne implements Store.
func (m *Memory) FindOne(_ context.Context, collection string, key Key) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.data[collection][memoryKey(key)]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneDocument(doc)
}

// UpsertOne implements Store.
func (m *Memory) UpsertOne(_ context.Context, collection string, key Key, set Document) error {
	copied, err := cloneDocument(set)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	coll := m.collection(collection)
	existing, ok := coll[memoryKey(key)]
	if !ok {
		existing = Document{key.Field: key.Value}
	}
	for field, value := range copied {
		existing[field] = value
	}
	coll[memoryKey(key)] = existing
	return nil
}

// InsertOne implements Store.
func (m *Memory) InsertOne(_ context.Context, collection string, key Key, doc Document) error {
	copied, err := cloneDocument(doc)
	if err != nil {
		return err
	}
	copied[key.Field] = key.Value

	m.mu.Lock()
	defer m.mu.Unlock()

	coll := m.collection(collection)
	if _, exists := coll[memoryKey(key)]; exists {
		return ErrDuplicate
	}
	coll[memoryKey(key)] = copied
	return nil
}

// Ping implements Store.
func (m *Memory) Ping(context.Context) error { return nil }

// Close implements Store.
func (m *Memory) Close(context.Context) error { return nil }

// Len returns the number of documents in a collection.
func (m *Memory) Len(collection string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data[collection])
}

func (m *Memory) collection(name string) map[string]Document {
	coll, ok := m.data[name]
	if !ok {
		coll = make(map[string]Document)
		m.data[name] = coll
	}
	return coll
}

func cloneDocument(doc Document) (Document, error) {
	if doc == nil {
		return Document{}, nil
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	var out Document
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return out, nil
}
