package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/docsift-labs/docsift-cli/internal/core/domain"
	"github.com/docsift-labs/docsift-cli/internal/core/ports/driving"
)

// defaultLimit is the number of passages returned when the caller does
// not specify one.
const defaultLimit = 5

// RetrieveInput is the input schema for the retrieve tool.
type RetrieveInput struct {
	Query string `json:"query" jsonschema:"the query to find relevant passages for"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of passages to return (default 5)"`
	File  string `json:"file,omitempty" jsonschema:"path of the ingested document to query (default: the last ingested document)"`
}

// RetrieveOutput is the output schema for the retrieve tool.
type RetrieveOutput struct {
	Passages []PassageOutput `json:"passages"`
	Count    int             `json:"count"`
	Message  string          `json:"message,omitempty"`
}

// PassageOutput represents a single retrieved passage.
type PassageOutput struct {
	Text       string  `json:"text"`
	Score      float64 `json:"score"`
	Title      string  `json:"title,omitempty"`
	FileName   string  `json:"file_name"`
	ChunkIndex int     `json:"chunk_index"`
}

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer from the ingested document"`
	Limit    int    `json:"limit,omitempty" jsonschema:"number of supporting passages to retrieve (default 5)"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer  string          `json:"answer"`
	Sources []PassageOutput `json:"sources"`
}

// IngestInput is the input schema for the ingest tool.
type IngestInput struct {
	Path  string `json:"path" jsonschema:"filesystem path of the PDF document to ingest"`
	Title string `json:"title,omitempty" jsonschema:"optional human-readable document title"`
}

// IngestOutput is the output schema for the ingest tool.
type IngestOutput struct {
	FileName   string `json:"file_name"`
	ChunkCount int    `json:"chunk_count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "retrieve",
		Description: "Retrieve the most relevant passages from the ingested document",
	}, s.handleRetrieve)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question using passages from the ingested document",
	}, s.handleAsk)

	if s.ports.Ingest != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "ingest",
			Description: "Ingest a PDF document, replacing the current one",
		}, s.handleIngest)
	}
}

// handleRetrieve handles the retrieve tool invocation.
func (s *Server) handleRetrieve(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RetrieveInput,
) (*mcp.CallToolResult, RetrieveOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	opts := driving.RetrieveOptions{TopK: limit, FilePath: input.File}
	chunks, err := s.ports.Retrieval.Retrieve(ctx, input.Query, opts)
	if err != nil {
		if errors.Is(err, domain.ErrNoDocumentIngested) {
			return nil, RetrieveOutput{
				Passages: []PassageOutput{},
				Message:  "no document has been ingested yet",
			}, nil
		}
		return nil, RetrieveOutput{}, err
	}

	output := RetrieveOutput{
		Passages: passagesFromChunks(chunks),
		Count:    len(chunks),
	}

	return nil, output, nil
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	opts := driving.RetrieveOptions{TopK: limit}
	answer, sources, err := s.ports.Retrieval.Ask(ctx, input.Question, opts)
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Answer:  answer,
		Sources: passagesFromChunks(sources),
	}

	return nil, output, nil
}

// handleIngest handles the ingest tool invocation.
func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	opts := driving.IngestOptions{Title: input.Title}
	result, err := s.ports.Ingest.Ingest(ctx, input.Path, opts)
	if err != nil {
		return nil, IngestOutput{}, err
	}

	output := IngestOutput{
		FileName:   result.FileName,
		ChunkCount: result.ChunkCount,
	}

	return nil, output, nil
}

// passagesFromChunks converts retrieval results into the tool output shape.
func passagesFromChunks(chunks []domain.RetrievedChunk) []PassageOutput {
	passages := make([]PassageOutput, len(chunks))
	for i := range chunks {
		passages[i] = PassageOutput{
			Text:       chunks[i].Text,
			Score:      chunks[i].Score,
			Title:      chunks[i].Metadata.Title,
			FileName:   chunks[i].Metadata.FileName,
			ChunkIndex: chunks[i].Metadata.ChunkIndex,
		}
	}
	return passages
}
