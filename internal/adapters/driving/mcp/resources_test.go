package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsift-labs/docsift-cli/internal/core/domain"
	"github.com/docsift-labs/docsift-cli/internal/core/ports/driving"
)

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleStatusResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil status service returns empty object", func(t *testing.T) {
		ports := &Ports{Retrieval: &mockRetrievalService{}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("docsift://status")
		result, err := server.handleStatusResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "{}", result.Contents[0].Text)
	})

	t.Run("returns status successfully", func(t *testing.T) {
		mockStatus := &mockStatusService{
			report: &driving.StatusReport{
				LastIngest: &domain.IngestState{
					FileName:   "ops.pdf",
					ChunkCount: 12,
				},
				EmbeddingModel: "text-embedding-3-small",
				Collection:     "docs",
				AskEnabled:     true,
			},
		}

		ports := &Ports{Retrieval: &mockRetrievalService{}, Status: mockStatus}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("docsift://status")
		result, err := server.handleStatusResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, "ops.pdf")
		assert.Contains(t, result.Contents[0].Text, "text-embedding-3-small")
		assert.Contains(t, result.Contents[0].Text, `"ask_enabled": true`)
	})

	t.Run("returns error on status failure", func(t *testing.T) {
		mockStatus := &mockStatusService{err: errors.New("state store closed")}

		ports := &Ports{Retrieval: &mockRetrievalService{}, Status: mockStatus}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("docsift://status")
		_, err = server.handleStatusResource(ctx, req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading status")
	})
}

func TestServer_handleHistoryResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil status service returns empty list", func(t *testing.T) {
		ports := &Ports{Retrieval: &mockRetrievalService{}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("docsift://history")
		result, err := server.handleHistoryResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns entries newest first", func(t *testing.T) {
		mockStatus := &mockStatusService{
			history: []domain.IngestState{
				{Path: "/docs/b.pdf", FileName: "b.pdf", ChunkCount: 3, ProcessedAt: time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC)},
				{Path: "/docs/a.pdf", FileName: "a.pdf", ChunkCount: 7, ProcessedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)},
			},
		}

		ports := &Ports{Retrieval: &mockRetrievalService{}, Status: mockStatus}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("docsift://history")
		result, err := server.handleHistoryResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, "b.pdf")
		assert.Contains(t, result.Contents[0].Text, "a.pdf")
		assert.Contains(t, result.Contents[0].Text, "2026-08-02T10:00:00Z")
	})

	t.Run("handles empty history", func(t *testing.T) {
		mockStatus := &mockStatusService{history: []domain.IngestState{}}

		ports := &Ports{Retrieval: &mockRetrievalService{}, Status: mockStatus}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("docsift://history")
		result, err := server.handleHistoryResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns error on history failure", func(t *testing.T) {
		mockStatus := &mockStatusService{err: errors.New("state store closed")}

		ports := &Ports{Retrieval: &mockRetrievalService{}, Status: mockStatus}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("docsift://history")
		_, err = server.handleHistoryResource(ctx, req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading history")
	})
}
