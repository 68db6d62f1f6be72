package cli

import (
	"context"
	"errors"
	"time"

	"github.com/docsift-labs/docsift-cli/internal/core/domain"
	"github.com/docsift-labs/docsift-cli/internal/core/ports/driving"
)

// setupTestServices injects mock services into the package-level
// service variables so commands run without real adapters. The
// returned cleanup restores the previous services.
func setupTestServices() func() {
	oldIngest := ingestService
	oldRetrieval := retrievalService
	oldStatus := statusService

	ingestService = &mockIngestService{
		result: &domain.IngestResult{FileName: "guide.pdf", ChunkCount: 12},
	}
	retrievalService = &mockRetrievalService{
		answer: "Thirty seconds.",
		chunks: []domain.RetrievedChunk{
			{
				Text:  "The grace period defaults to thirty seconds.",
				Score: 0.91,
				Metadata: domain.ChunkMetadata{
					Title:      "Operations Guide",
					FileName:   "guide.pdf",
					ChunkIndex: 4,
				},
			},
		},
	}
	statusService = &mockStatusService{
		report: &driving.StatusReport{
			LastIngest: &domain.IngestState{
				FileName:    "guide.pdf",
				ChunkCount:  12,
				ProcessedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
			},
			EmbeddingModel: "text-embedding-3-small",
			Collection:     "docs",
			AskEnabled:     true,
		},
		history: []domain.IngestState{
			{FileName: "guide.pdf", ChunkCount: 12, ProcessedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)},
		},
	}

	return func() {
		ingestService = oldIngest
		retrievalService = oldRetrieval
		statusService = oldStatus
	}
}

type mockIngestService struct {
	result *domain.IngestResult
	err    error

	lastPath string
	lastOpts driving.IngestOptions
}

func (m *mockIngestService) Ingest(
	_ context.Context,
	path string,
	opts driving.IngestOptions,
) (*domain.IngestResult, error) {
	m.lastPath = path
	m.lastOpts = opts
	return m.result, m.err
}

type mockRetrievalService struct {
	chunks []domain.RetrievedChunk
	answer string
	err    error

	lastOpts driving.RetrieveOptions
}

func (m *mockRetrievalService) Retrieve(
	_ context.Context,
	_ string,
	opts driving.RetrieveOptions,
) ([]domain.RetrievedChunk, error) {
	m.lastOpts = opts
	return m.chunks, m.err
}

func (m *mockRetrievalService) Ask(
	_ context.Context,
	_ string,
	opts driving.RetrieveOptions,
) (string, []domain.RetrievedChunk, error) {
	m.lastOpts = opts
	if m.err != nil {
		return "", nil, m.err
	}
	return m.answer, m.chunks, nil
}

type mockStatusService struct {
	report  *driving.StatusReport
	history []domain.IngestState
	err     error
}

func (m *mockStatusService) Status(_ context.Context) (*driving.StatusReport, error) {
	return m.report, m.err
}

func (m *mockStatusService) History(_ context.Context, _ int) ([]domain.IngestState, error) {
	return m.history, m.err
}

// mockRetrievalServiceError always fails.
type mockRetrievalServiceError struct{}

func (m *mockRetrievalServiceError) Retrieve(
	context.Context, string, driving.RetrieveOptions,
) ([]domain.RetrievedChunk, error) {
	return nil, errors.New("vector store unreachable")
}

func (m *mockRetrievalServiceError) Ask(
	context.Context, string, driving.RetrieveOptions,
) (string, []domain.RetrievedChunk, error) {
	return "", nil, errors.New("vector store unreachable")
}
