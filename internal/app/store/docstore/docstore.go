// internal/app/store/docstore/docstore.go

// Package docstore provides the collection store the gateway mediates.
// The store is deliberately narrow: equality-filtered queries with
// limit/skip, and id-based get/insert/update/remove. It is injected into
// everything that persists, so tests can substitute the in-memory
// implementation for the Mongo one.
package docstore

import (
	"context"
	"errors"
)

// Document is a schemaless record. Persisted documents carry a string
// "_id", "created_at"/"updated_at" timestamps, and a "version" counter
// maintained by the store.
type Document map[string]any

var (
	// ErrNotFound is returned when an id lookup matches nothing.
	ErrNotFound = errors.New("document not found")

	// ErrVersionConflict is returned when an update's expected version no
	// longer matches the stored document (a concurrent writer won).
	ErrVersionConflict = errors.New("document version conflict")
)

// Store is the opaque persistence contract. Implementations must provide
// atomic per-document reads and writes; no multi-document transactions
// are assumed.
type Store interface {
	// Find returns documents matching every equality pair in filter,
	// in insertion order, honoring skip then limit (limit <= 0 means no
	// limit).
	Find(ctx context.Context, collection string, filter map[string]any, limit, skip int64) ([]Document, error)

	// Count returns how many documents match the filter.
	Count(ctx context.Context, collection string, filter map[string]any) (int64, error)

	// Get fetches a document by id. Returns ErrNotFound if absent.
	Get(ctx context.Context, collection, id string) (Document, error)

	// Insert stores a new document. The document must already carry its
	// "_id"; inserting a duplicate id is an error.
	Insert(ctx context.Context, collection string, doc Document) error

	// Update merges fields over the document with the given id, but only
	// if its stored version still equals expectVersion; the version is
	// incremented in the same write. Returns ErrNotFound or
	// ErrVersionConflict.
	Update(ctx context.Context, collection, id string, expectVersion int64, fields Document) error

	// Remove deletes a document by id. Returns ErrNotFound if absent.
	Remove(ctx context.Context, collection, id string) error
}

// ID returns the document's string id, or "".
func (d Document) ID() string {
	s, _ := d["_id"].(string)
	return s
}

// Version returns the document's version counter, or 0.
func (d Document) Version() int64 {
	switch v := d["version"].(type) {
	case int64:
		return v
	case int32:
		return int64(v)
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

// Str returns a string field, or "" when absent or not a string.
func (d Document) Str(key string) string {
	s, _ := d[key].(string)
	return s
}
