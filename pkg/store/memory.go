package store

import (
	"context"
	"sort"
	"sync"

	"github.com/mlorenz/asciigram/pkg/errors"
)

// MemoryStore is an in-memory diagram store for development and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	diagrams map[string]Diagram
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{diagrams: make(map[string]Diagram)}
}

// Put inserts or replaces a diagram by ID.
func (s *MemoryStore) Put(ctx context.Context, d *Diagram) error {
	if d.ID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "diagram ID cannot be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.diagrams[d.ID] = *d
	return nil
}

// Get retrieves a diagram by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Diagram, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.diagrams[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeDiagramNotFound, "diagram %s not found", id)
	}
	return &d, nil
}

// List returns all diagrams ordered by creation time.
func (s *MemoryStore) List(ctx context.Context) ([]*Diagram, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Diagram, 0, len(s.diagrams))
	for id := range s.diagrams {
		d := s.diagrams[id]
		out = append(out, &d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Delete removes a diagram. Missing IDs are ignored.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.diagrams, id)
	return nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
