package driven

import (
	"context"

	"github.com/docsift-labs/docsift-cli/internal/core/domain"
)

// StateStore durably remembers which document was last successfully
// ingested. It is written only by the ingestion pipeline, after the
// final upsert, and read by retrieval when no explicit path is given.
//
// An injected store (rather than module-level mutable state) lets
// tests substitute an in-memory fake for the SQLite-backed default.
type StateStore interface {
	// Last returns the most recent ingest state, or (nil, nil) when
	// nothing has been ingested yet. Corrupt or missing state reads as
	// "no document ingested", never as a fatal error.
	Last(ctx context.Context) (*domain.IngestState, error)

	// Record overwrites the current state after a successful run.
	Record(ctx context.Context, state domain.IngestState) error

	// Close releases resources.
	Close() error
}
