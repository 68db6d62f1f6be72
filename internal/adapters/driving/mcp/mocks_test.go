package mcp

import (
	"context"

	"github.com/docsift-labs/docsift-cli/internal/core/domain"
	"github.com/docsift-labs/docsift-cli/internal/core/ports/driving"
)

// mockRetrievalService is a mock implementation of driving.RetrievalService.
type mockRetrievalService struct {
	chunks []domain.RetrievedChunk
	answer string
	err    error

	lastQuery string
	lastOpts  driving.RetrieveOptions
}

func (m *mockRetrievalService) Retrieve(
	_ context.Context,
	query string,
	opts driving.RetrieveOptions,
) ([]domain.RetrievedChunk, error) {
	m.lastQuery = query
	m.lastOpts = opts
	return m.chunks, m.err
}

func (m *mockRetrievalService) Ask(
	_ context.Context,
	question string,
	opts driving.RetrieveOptions,
) (string, []domain.RetrievedChunk, error) {
	m.lastQuery = question
	m.lastOpts = opts
	if m.err != nil {
		return "", nil, m.err
	}
	return m.answer, m.chunks, nil
}

// mockIngestService is a mock implementation of driving.IngestService.
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

// mockStatusService is a mock implementation of driving.StatusService.
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
