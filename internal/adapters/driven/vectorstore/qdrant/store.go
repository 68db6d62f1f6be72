// Package qdrant provides a VectorStore adapter backed by the Qdrant
// REST API. Collections use cosine distance; connection parameters
// come from configuration, never from code.
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/docsift-labs/docsift-cli/internal/core/domain"
	"github.com/docsift-labs/docsift-cli/internal/core/ports/driven"
)

// DefaultTimeout is the per-request timeout.
const DefaultTimeout = 30 * time.Second

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Config holds connection settings for a Qdrant instance.
type Config struct {
	// URL is the base URL, e.g. http://localhost:6333 (required).
	URL string

	// APIKey authenticates requests; empty for unsecured instances.
	APIKey string

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration
}

// Store talks to Qdrant over its REST API.
type Store struct {
	client *http.Client
	url    string
	apiKey string
}

// NewStore creates a Qdrant store from config.
func NewStore(cfg Config) (*Store, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("qdrant: URL is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Store{
		client: &http.Client{Timeout: cfg.Timeout},
		url:    cfg.URL,
		apiKey: cfg.APIKey,
	}, nil
}

// DeleteCollection removes the named collection.
// A missing collection reports domain.ErrCollectionNotFound.
func (s *Store) DeleteCollection(ctx context.Context, name string) error {
	status, _, err := s.do(ctx, http.MethodDelete, "/collections/"+name, nil)
	if err != nil {
		return err
	}
	if status == http.StatusNotFound {
		return fmt.Errorf("%w: %s", domain.ErrCollectionNotFound, name)
	}
	if status >= 300 {
		return fmt.Errorf("qdrant: delete collection %s: status %d", name, status)
	}
	return nil
}

// collectionInfo is the subset of the collection response we inspect.
type collectionInfo struct {
	Result struct {
		Config struct {
			Params struct {
				Vectors struct {
					Size int `json:"size"`
				} `json:"vectors"`
			} `json:"params"`
		} `json:"config"`
	} `json:"result"`
}

// CreateCollection creates the named collection with a fixed cosine
// vector dimension. If the collection already exists its dimension is
// verified; a conflict reports domain.ErrIndexCreation with both
// dimensions.
func (s *Store) CreateCollection(ctx context.Context, name string, dimension int) error {
	status, body, err := s.do(ctx, http.MethodGet, "/collections/"+name, nil)
	if err != nil {
		return err
	}
	if status == http.StatusOK {
		var info collectionInfo
		if err := json.Unmarshal(body, &info); err != nil {
			return fmt.Errorf("qdrant: decode collection info: %w", err)
		}
		existing := info.Result.Config.Params.Vectors.Size
		if existing != dimension {
			return fmt.Errorf("%w: collection %q exists with dimension %d, requested %d",
				domain.ErrIndexCreation, name, existing, dimension)
		}
		return nil
	}

	payload := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	status, body, err = s.do(ctx, http.MethodPut, "/collections/"+name, payload)
	if err != nil {
		return err
	}
	if status >= 300 {
		return fmt.Errorf("qdrant: create collection %s: status %d: %s", name, status, string(body))
	}
	return nil
}

// Upsert writes records into the collection, waiting for persistence.
func (s *Store) Upsert(ctx context.Context, name string, records []domain.IndexRecord) error {
	if len(records) == 0 {
		return nil
	}

	points := make([]map[string]any, len(records))
	for i := range records {
		points[i] = map[string]any{
			"id":      records[i].ID,
			"vector":  records[i].Vector,
			"payload": payloadFromMetadata(records[i].Metadata),
		}
	}

	status, body, err := s.do(ctx, http.MethodPut, "/collections/"+name+"/points?wait=true",
		map[string]any{"points": points})
	if err != nil {
		return err
	}
	if status == http.StatusNotFound {
		return fmt.Errorf("%w: %s", domain.ErrCollectionNotFound, name)
	}
	if status >= 300 {
		return fmt.Errorf("qdrant: upsert into %s: status %d: %s", name, status, string(body))
	}
	return nil
}

// searchResponse is the points/search response shape.
type searchResponse struct {
	Result []struct {
		ID      any            `json:"id"`
		Score   float64        `json:"score"`
		Payload map[string]any `json:"payload"`
	} `json:"result"`
}

// Query returns up to topK hits by descending cosine similarity.
func (s *Store) Query(ctx context.Context, name string, vector []float32, topK int) ([]driven.VectorHit, error) {
	payload := map[string]any{
		"vector":       vector,
		"limit":        topK,
		"with_payload": true,
	}
	status, body, err := s.do(ctx, http.MethodPost, "/collections/"+name+"/points/search", payload)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", domain.ErrCollectionNotFound, name)
	}
	if status >= 300 {
		return nil, fmt.Errorf("qdrant: search %s: status %d: %s", name, status, string(body))
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("qdrant: decode search response: %w", err)
	}

	hits := make([]driven.VectorHit, 0, len(resp.Result))
	for _, r := range resp.Result {
		hits = append(hits, driven.VectorHit{
			ID:       fmt.Sprintf("%v", r.ID),
			Score:    r.Score,
			Metadata: metadataFromPayload(r.Payload),
		})
	}
	return hits, nil
}

// do sends one request and returns status and body. Transport-level
// failures are mapped to domain.ErrVectorStoreUnavailable; retry
// policy belongs to the caller.
func (s *Store) do(ctx context.Context, method, path string, payload any) (int, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("qdrant: encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.url+path, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("qdrant: create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", domain.ErrVectorStoreUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: reading response: %v", domain.ErrVectorStoreUnavailable, err)
	}
	return resp.StatusCode, body, nil
}

func payloadFromMetadata(md domain.ChunkMetadata) map[string]any {
	return map[string]any{
		"text":         md.Text,
		"title":        md.Title,
		"file_name":    md.FileName,
		"author":       md.Author,
		"description":  md.Description,
		"chunk_index":  md.ChunkIndex,
		"total_chunks": md.TotalChunks,
		"source":       md.Source,
	}
}

func metadataFromPayload(payload map[string]any) domain.ChunkMetadata {
	md := domain.ChunkMetadata{}
	if payload == nil {
		return md
	}
	md.Text = stringField(payload, "text")
	md.Title = stringField(payload, "title")
	md.FileName = stringField(payload, "file_name")
	md.Author = stringField(payload, "author")
	md.Description = stringField(payload, "description")
	md.ChunkIndex = intField(payload, "chunk_index")
	md.TotalChunks = intField(payload, "total_chunks")
	md.Source = stringField(payload, "source")
	return md
}

func stringField(payload map[string]any, key string) string {
	if v, ok := payload[key].(string); ok {
		return v
	}
	return ""
}

func intField(payload map[string]any, key string) int {
	// JSON numbers decode as float64.
	switch v := payload[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}
