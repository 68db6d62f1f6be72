// Package memory provides an in-process VectorStore implementation.
// It is used by tests and as an offline backend; records do not
// survive process restarts.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/docsift-labs/docsift-cli/internal/core/domain"
	"github.com/docsift-labs/docsift-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

type collection struct {
	dimension int
	records   []domain.IndexRecord
}

// Store is an in-memory vector store with cosine similarity search.
type Store struct {
	mu          sync.RWMutex
	collections map[string]*collection
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		collections: make(map[string]*collection),
	}
}

// DeleteCollection removes the named collection.
func (s *Store) DeleteCollection(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[name]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrCollectionNotFound, name)
	}
	delete(s.collections, name)
	return nil
}

// CreateCollection creates the named collection with a fixed dimension.
func (s *Store) CreateCollection(_ context.Context, name string, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("%w: dimension must be positive, got %d", domain.ErrInvalidInput, dimension)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.collections[name]; ok {
		if existing.dimension != dimension {
			return fmt.Errorf("%w: collection %q exists with dimension %d, requested %d",
				domain.ErrIndexCreation, name, existing.dimension, dimension)
		}
		return nil
	}

	s.collections[name] = &collection{dimension: dimension}
	return nil
}

// Upsert appends records to the collection.
func (s *Store) Upsert(_ context.Context, name string, records []domain.IndexRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.collections[name]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrCollectionNotFound, name)
	}
	for i := range records {
		if len(records[i].Vector) != col.dimension {
			return fmt.Errorf("%w: record %d has dimension %d, collection %q expects %d",
				domain.ErrInvalidInput, i, len(records[i].Vector), name, col.dimension)
		}
	}

	col.records = append(col.records, records...)
	return nil
}

// Query returns up to topK records by descending cosine similarity.
func (s *Store) Query(_ context.Context, name string, vector []float32, topK int) ([]driven.VectorHit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	col, ok := s.collections[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCollectionNotFound, name)
	}
	if topK <= 0 || len(col.records) == 0 {
		return []driven.VectorHit{}, nil
	}

	hits := make([]driven.VectorHit, 0, len(col.records))
	for i := range col.records {
		hits = append(hits, driven.VectorHit{
			ID:       col.records[i].ID,
			Score:    cosine(vector, col.records[i].Vector),
			Metadata: col.records[i].Metadata,
		})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if topK < len(hits) {
		hits = hits[:topK]
	}
	return hits, nil
}

// Count returns the number of records in the collection, for tests.
func (s *Store) Count(name string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	col, ok := s.collections[name]
	if !ok {
		return 0
	}
	return len(col.records)
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
