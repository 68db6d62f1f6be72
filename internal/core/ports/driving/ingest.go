package driving

import (
	"context"

	"github.com/docsift-labs/docsift-cli/internal/core/domain"
)

// IngestOptions carries optional document metadata supplied by the
// caller at ingestion time.
type IngestOptions struct {
	// Title is a human-readable document title.
	Title string

	// Author is the document author.
	Author string

	// Description is a free-text description.
	Description string
}

// IngestService ingests a single document into the vector collection,
// replacing whatever document was there before.
type IngestService interface {
	// Ingest runs extraction, chunking, embedding and indexing for the
	// document at path. On success the document becomes the current
	// retrieval target. On failure the previously ingested document, if
	// any, remains current and queryable.
	Ingest(ctx context.Context, path string, opts IngestOptions) (*domain.IngestResult, error)
}
