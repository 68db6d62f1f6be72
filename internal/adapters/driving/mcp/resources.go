package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for Docsift resources.
	uriScheme = "docsift://"

	// historyLimit caps the entries reported by the history resource.
	historyLimit = 50
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "status",
		Name:        "status",
		Description: "Current pipeline status: last ingested document, embedding model, collection",
		MIMEType:    "application/json",
	}, s.handleStatusResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "history",
		Name:        "history",
		Description: "Past document ingestions, newest first",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)
}

// handleStatusResource returns the current pipeline status.
func (s *Server) handleStatusResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Status == nil {
		return jsonResource(req.Params.URI, "{}"), nil
	}

	report, err := s.ports.Status.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading status: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling status: %w", err)
	}

	return jsonResource(req.Params.URI, string(data)), nil
}

// handleHistoryResource returns past ingestions.
func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Status == nil {
		return jsonResource(req.Params.URI, "[]"), nil
	}

	history, err := s.ports.Status.History(ctx, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}

	type entryInfo struct {
		Path        string `json:"path"`
		FileName    string `json:"file_name"`
		Title       string `json:"title,omitempty"`
		ChunkCount  int    `json:"chunk_count"`
		ProcessedAt string `json:"processed_at"`
	}

	entries := make([]entryInfo, len(history))
	for i := range history {
		entries[i] = entryInfo{
			Path:        history[i].Path,
			FileName:    history[i].FileName,
			Title:       history[i].Title,
			ChunkCount:  history[i].ChunkCount,
			ProcessedAt: history[i].ProcessedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling history: %w", err)
	}

	return jsonResource(req.Params.URI, string(data)), nil
}

// jsonResource wraps a JSON document in a single-content read result.
func jsonResource(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}
