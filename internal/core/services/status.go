package services

import (
	"context"
	"fmt"

	"github.com/docsift-labs/docsift-cli/internal/core/domain"
	"github.com/docsift-labs/docsift-cli/internal/core/ports/driven"
	"github.com/docsift-labs/docsift-cli/internal/core/ports/driving"
)

// Ensure StatusService implements the interface.
var _ driving.StatusService = (*StatusService)(nil)

// historyProvider is an optional state store capability. Stores that
// keep an ingestion log expose it; others fall back to the last entry.
type historyProvider interface {
	History(ctx context.Context, limit int) ([]domain.IngestState, error)
}

// StatusService reports pipeline state.
type StatusService struct {
	state      driven.StateStore
	embedder   driven.EmbeddingService
	collection string
	askEnabled bool
}

// NewStatusService creates a status reporter.
func NewStatusService(
	state driven.StateStore,
	embedder driven.EmbeddingService,
	collection string,
	askEnabled bool,
) *StatusService {
	return &StatusService{
		state:      state,
		embedder:   embedder,
		collection: collection,
		askEnabled: askEnabled,
	}
}

// Status returns the current pipeline status.
func (s *StatusService) Status(ctx context.Context) (*driving.StatusReport, error) {
	last, err := s.state.Last(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading ingest state: %w", err)
	}

	report := &driving.StatusReport{
		LastIngest: last,
		Collection: s.collection,
		AskEnabled: s.askEnabled,
	}
	if s.embedder != nil {
		report.EmbeddingModel = s.embedder.ModelName()
	}
	return report, nil
}

// History returns past ingestions, newest first. Stores without an
// ingestion log report at most the last entry.
func (s *StatusService) History(ctx context.Context, limit int) ([]domain.IngestState, error) {
	if hp, ok := s.state.(historyProvider); ok {
		return hp.History(ctx, limit)
	}

	last, err := s.state.Last(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading ingest state: %w", err)
	}
	if last == nil {
		return []domain.IngestState{}, nil
	}
	return []domain.IngestState{*last}, nil
}
