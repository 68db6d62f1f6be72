package driving

import (
	"context"

	"github.com/docsift-labs/docsift-cli/internal/core/domain"
)

// RetrieveOptions configures a retrieval query.
type RetrieveOptions struct {
	// TopK is the maximum number of results (default 5).
	TopK int

	// FilePath explicitly names the document to retrieve against.
	// When empty, the last successfully ingested document is used.
	FilePath string
}

// RetrievalService answers free-text queries with ranked supporting
// passages from the current document.
type RetrievalService interface {
	// Retrieve returns up to TopK chunks ordered by descending
	// similarity. A blank query returns an empty slice without calling
	// the embedding service. "Nothing found" is an empty slice, never
	// an error; only a missing document reference is reported, as
	// domain.ErrNoDocumentIngested.
	Retrieve(ctx context.Context, query string, opts RetrieveOptions) ([]domain.RetrievedChunk, error)

	// Ask retrieves supporting passages for the question and asks the
	// configured language model to answer from them. Returns
	// domain.ErrLLMUnavailable when no model is configured.
	Ask(ctx context.Context, question string, opts RetrieveOptions) (string, []domain.RetrievedChunk, error)
}
