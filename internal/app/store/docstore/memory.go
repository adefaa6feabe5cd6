// internal/app/store/docstore/memory.go
package docstore

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is an in-memory Store used by tests and local development.
// Documents are deep-copied on the way in and out so callers cannot
// mutate stored state through retained references.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]Document
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string][]Document)}
}

func copyDoc(d Document) Document {
	out := make(Document, len(d))
	for k, v := range d {
		if s, ok := v.([]bool); ok {
			cp := make([]bool, len(s))
			copy(cp, s)
			out[k] = cp
			continue
		}
		out[k] = v
	}
	return out
}

func matches(d Document, filter map[string]any) bool {
	for k, want := range filter {
		if d[k] != want {
			return false
		}
	}
	return true
}

func (s *MemoryStore) Find(ctx context.Context, collection string, filter map[string]any, limit, skip int64) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Document
	var matched int64
	for _, d := range s.collections[collection] {
		if !matches(d, filter) {
			continue
		}
		matched++
		if matched <= skip {
			continue
		}
		if limit > 0 && int64(len(out)) >= limit {
			break
		}
		out = append(out, copyDoc(d))
	}
	return out, nil
}

func (s *MemoryStore) Count(ctx context.Context, collection string, filter map[string]any) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, d := range s.collections[collection] {
		if matches(d, filter) {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) Get(ctx context.Context, collection, id string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, d := range s.collections[collection] {
		if d.ID() == id {
			return copyDoc(d), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) Insert(ctx context.Context, collection string, doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := doc.ID()
	if id == "" {
		return fmt.Errorf("insert into %s: document missing _id", collection)
	}
	for _, d := range s.collections[collection] {
		if d.ID() == id {
			return fmt.Errorf("insert into %s: duplicate _id %s", collection, id)
		}
	}
	s.collections[collection] = append(s.collections[collection], copyDoc(doc))
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, collection, id string, expectVersion int64, fields Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, d := range s.collections[collection] {
		if d.ID() != id {
			continue
		}
		if d.Version() != expectVersion {
			return ErrVersionConflict
		}
		next := copyDoc(d)
		for k, v := range fields {
			if k == "_id" || k == "version" {
				continue
			}
			next[k] = v
		}
		next["version"] = expectVersion + 1
		s.collections[collection][i] = next
		return nil
	}
	return ErrNotFound
}

func (s *MemoryStore) Remove(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.collections[collection]
	for i, d := range rows {
		if d.ID() == id {
			s.collections[collection] = append(rows[:i:i], rows[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
