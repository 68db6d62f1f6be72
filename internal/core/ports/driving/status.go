package driving

import (
	"context"

	"github.com/docsift-labs/docsift-cli/internal/core/domain"
)

// StatusReport describes the current state of the pipeline.
type StatusReport struct {
	// LastIngest is the most recently ingested document, nil when the
	// pipeline has never run.
	LastIngest *domain.IngestState `json:"last_ingest,omitempty"`

	// EmbeddingModel is the configured embedding model name.
	EmbeddingModel string `json:"embedding_model"`

	// Collection is the vector collection in use.
	Collection string `json:"collection"`

	// AskEnabled reports whether an LLM is configured.
	AskEnabled bool `json:"ask_enabled"`
}

// StatusService reports pipeline state for status surfaces.
type StatusService interface {
	// Status returns the current pipeline status.
	Status(ctx context.Context) (*StatusReport, error)

	// History returns past ingestions, newest first, capped at limit.
	// A non-positive limit returns everything.
	History(ctx context.Context, limit int) ([]domain.IngestState, error)
}
