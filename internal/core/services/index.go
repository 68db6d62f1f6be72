package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/docsift-labs/docsift-cli/internal/core/domain"
	"github.com/docsift-labs/docsift-cli/internal/core/ports/driven"
	"github.com/docsift-labs/docsift-cli/internal/logger"
)

// IndexManager owns the lifecycle of a single named vector collection:
// reset, create-with-dimension, upsert, query. Within one ingestion
// run, Reset strictly precedes EnsureCreated, which strictly precedes
// every Upsert; creation happens exactly once per run, with the
// dimension of the first embedding batch.
//
// The collection is process-wide shared mutable state. A query issued
// while an ingestion run is in progress may observe the old document,
// a reset-but-not-yet-created collection, or the new document's
// partial state: no isolation snapshot is provided. Concurrent
// ingestion runs are not supported and must be serialised by the
// caller.
type IndexManager struct {
	store      driven.VectorStore
	collection string

	// Per-run creation state.
	created   bool
	dimension int
}

// NewIndexManager creates a manager for the named collection.
func NewIndexManager(store driven.VectorStore, collection string) *IndexManager {
	return &IndexManager{
		store:      store,
		collection: collection,
	}
}

// Collection returns the managed collection name.
func (m *IndexManager) Collection() string {
	return m.collection
}

// Reset deletes the collection if present. Reset is best-effort and
// idempotent: "not found" is swallowed as success, and any other
// delete failure is logged but does not abort the caller.
func (m *IndexManager) Reset(ctx context.Context) error {
	m.created = false
	m.dimension = 0

	err := m.store.DeleteCollection(ctx, m.collection)
	if err != nil && !errors.Is(err, domain.ErrCollectionNotFound) {
		logger.Warn("Resetting collection %q failed: %v", m.collection, err)
	}
	return nil
}

// EnsureCreated creates the collection with the given fixed dimension.
// Only the first successful call of a run actually creates; later
// calls verify the dimension. A conflicting dimension, here or on an
// already existing collection in the store, fails with an error
// wrapping domain.ErrIndexCreation carrying both dimensions.
func (m *IndexManager) EnsureCreated(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("%w: dimension must be positive, got %d", domain.ErrInvalidInput, dimension)
	}

	if m.created {
		if dimension != m.dimension {
			return fmt.Errorf("%w: collection %q has dimension %d, batch has %d",
				domain.ErrIndexCreation, m.collection, m.dimension, dimension)
		}
		return nil
	}

	if err := m.store.CreateCollection(ctx, m.collection, dimension); err != nil {
		return err
	}

	m.created = true
	m.dimension = dimension
	logger.Debug("Collection %q created with dimension %d", m.collection, dimension)
	return nil
}

// Upsert writes records additively into the collection. The collection
// must have been created this run, and every vector must match the
// fixed dimension. Exclusivity of "one document per collection" is
// enforced by the ingestion pipeline calling Reset first, not here.
func (m *IndexManager) Upsert(ctx context.Context, records []domain.IndexRecord) error {
	if !m.created {
		return fmt.Errorf("upsert into %q: collection not created", m.collection)
	}
	for i := range records {
		if len(records[i].Vector) != m.dimension {
			return fmt.Errorf("%w: record %d has dimension %d, collection %q expects %d",
				domain.ErrInvalidInput, i, len(records[i].Vector), m.collection, m.dimension)
		}
	}
	return m.store.Upsert(ctx, m.collection, records)
}

// Query returns up to topK hits ordered by descending similarity.
// A non-positive topK yields an empty result, never an error, as does
// a created-but-empty collection.
func (m *IndexManager) Query(ctx context.Context, vector []float32, topK int) ([]driven.VectorHit, error) {
	if topK <= 0 {
		return []driven.VectorHit{}, nil
	}
	return m.store.Query(ctx, m.collection, vector, topK)
}
