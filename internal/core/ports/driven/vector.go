package driven

import (
	"context"

	"github.com/docsift-labs/docsift-cli/internal/core/domain"
)

// VectorStore is the backend-agnostic wire contract to a vector
// database. Adapters exist for Qdrant (REST), chromem-go (embedded)
// and an in-process memory store.
//
// Error mapping expected from implementations:
//   - deleting or querying a missing collection: domain.ErrCollectionNotFound
//   - creating a collection that exists with a different dimension:
//     domain.ErrIndexCreation
//   - connectivity failures: domain.ErrVectorStoreUnavailable
type VectorStore interface {
	// DeleteCollection removes the named collection and all records.
	DeleteCollection(ctx context.Context, name string) error

	// CreateCollection creates the named collection with a fixed
	// vector dimension. Creating an existing collection with the same
	// dimension is a no-op.
	CreateCollection(ctx context.Context, name string, dimension int) error

	// Upsert writes records additively into the collection.
	Upsert(ctx context.Context, name string, records []domain.IndexRecord) error

	// Query returns up to topK hits ordered by descending cosine
	// similarity to the query vector.
	Query(ctx context.Context, name string, vector []float32, topK int) ([]VectorHit, error)
}

// VectorHit is a similarity search result.
type VectorHit struct {
	// ID is the matched record id.
	ID string

	// Score is the cosine similarity score, higher is closer.
	Score float64

	// Metadata is the stored payload for the record.
	Metadata domain.ChunkMetadata
}
