package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/docsift-labs/docsift-cli/internal/core/domain"
	"github.com/docsift-labs/docsift-cli/internal/core/ports/driven"
	"github.com/docsift-labs/docsift-cli/internal/core/ports/driving"
	"github.com/docsift-labs/docsift-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService composes extraction, chunking, embedding and indexing
// into one operation per document. The collection holds at most one
// ingested document at a time: every run resets it before writing.
type IngestService struct {
	extractor driven.PageExtractor
	chunker   driven.Chunker
	batcher   *Batcher
	index     *IndexManager
	state     driven.StateStore
}

// NewIngestService creates an ingestion pipeline from its collaborators.
func NewIngestService(
	extractor driven.PageExtractor,
	chunker driven.Chunker,
	batcher *Batcher,
	index *IndexManager,
	state driven.StateStore,
) *IngestService {
	return &IngestService{
		extractor: extractor,
		chunker:   chunker,
		batcher:   batcher,
		index:     index,
		state:     state,
	}
}

// Ingest runs the full pipeline for the document at path. Each step's
// failure aborts the whole operation: the previously ingested
// document, if any, stays recorded as current, so callers never
// observe a half-ingested document.
func (s *IngestService) Ingest(ctx context.Context, path string, opts driving.IngestOptions) (*domain.IngestResult, error) {
	logger.Section("Ingestion")
	logger.Debug("Document: %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}

	pages, err := s.extractor.ExtractPages(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", filepath.Base(path), err)
	}
	logger.Debug("Extracted %d pages", len(pages))

	// Pages are concatenated in order, separated by a blank line.
	fullText := strings.Join(pages, "\n\n")

	chunks := s.chunker.Chunk(fullText)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: document contains no extractable text", domain.ErrDocumentParse)
	}
	logger.Debug("Chunked into %d chunks (%s strategy)", len(chunks), s.chunker.Name())

	// Guarantees the collection contains only this document's data.
	if err := s.index.Reset(ctx); err != nil {
		return nil, err
	}

	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Text
	}

	fileName := filepath.Base(path)
	total := len(chunks)

	err = s.batcher.Run(ctx, texts, func(start int, vectors [][]float32) error {
		if start == 0 {
			// The first batch fixes the collection dimension.
			if err := s.index.EnsureCreated(ctx, len(vectors[0])); err != nil {
				return err
			}
		}

		records := make([]domain.IndexRecord, len(vectors))
		for i, vec := range vectors {
			chunk := chunks[start+i]
			records[i] = domain.IndexRecord{
				ID:     uuid.New().String(),
				Vector: vec,
				Metadata: domain.ChunkMetadata{
					Text:        chunk.Text,
					Title:       opts.Title,
					FileName:    fileName,
					Author:      opts.Author,
					Description: opts.Description,
					ChunkIndex:  chunk.Index,
					TotalChunks: total,
					Source:      path,
				},
			}
		}
		return s.index.Upsert(ctx, records)
	})
	if err != nil {
		return nil, err
	}

	// Only after every batch is upserted does this document become current.
	ingState := domain.IngestState{
		Path:        path,
		FileName:    fileName,
		Title:       opts.Title,
		ChunkCount:  total,
		ProcessedAt: time.Now().UTC(),
	}
	if err := s.state.Record(ctx, ingState); err != nil {
		return nil, fmt.Errorf("recording ingest state: %w", err)
	}

	logger.Info("Ingested %s: %d chunks", fileName, total)
	return &domain.IngestResult{FileName: fileName, ChunkCount: total}, nil
}
