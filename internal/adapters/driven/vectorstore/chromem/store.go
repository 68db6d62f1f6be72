// Package chromem provides a VectorStore adapter backed by the
// embedded chromem-go database. It needs no external service, which
// makes it the default for local setups.
package chromem

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	chromemgo "github.com/philippgille/chromem-go"

	"github.com/docsift-labs/docsift-cli/internal/core/domain"
	"github.com/docsift-labs/docsift-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Store persists vectors in a chromem-go database on disk.
type Store struct {
	db *chromemgo.DB

	// chromem does not enforce vector width and offers no way to read
	// collection metadata back, so dimensions live in a sidecar
	// registry file next to the database.
	mu           sync.Mutex
	dimensions   map[string]int
	registryPath string
}

// NewStore opens (or creates) a persistent database at path.
func NewStore(path string) (*Store, error) {
	db, err := chromemgo.NewPersistentDB(path, false)
	if err != nil {
		return nil, fmt.Errorf("chromem: open database: %w", err)
	}
	registryPath := filepath.Join(path, "dimensions.json")
	return &Store{
		db:           db,
		dimensions:   loadDimensions(registryPath),
		registryPath: registryPath,
	}, nil
}

// loadDimensions reads the dimension registry. A missing or unreadable
// registry starts empty; the dimensions re-register on the next create.
func loadDimensions(path string) map[string]int {
	dims := make(map[string]int)
	data, err := os.ReadFile(path)
	if err != nil {
		return dims
	}
	if err := json.Unmarshal(data, &dims); err != nil {
		return make(map[string]int)
	}
	return dims
}

// saveDimensions persists the registry. Callers hold s.mu.
func (s *Store) saveDimensions() error {
	data, err := json.Marshal(s.dimensions)
	if err != nil {
		return fmt.Errorf("chromem: encoding dimension registry: %w", err)
	}
	if err := os.WriteFile(s.registryPath, data, 0600); err != nil {
		return fmt.Errorf("chromem: writing dimension registry: %w", err)
	}
	return nil
}

// DeleteCollection removes the named collection.
// A missing collection reports domain.ErrCollectionNotFound.
func (s *Store) DeleteCollection(ctx context.Context, name string) error {
	if s.db.GetCollection(name, nil) == nil {
		return fmt.Errorf("%w: %s", domain.ErrCollectionNotFound, name)
	}
	if err := s.db.DeleteCollection(name); err != nil {
		return fmt.Errorf("chromem: delete collection %s: %w", name, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.dimensions, name)
	return s.saveDimensions()
}

// CreateCollection creates the named collection with a fixed cosine
// vector dimension. chromem does not enforce dimensions itself, so the
// store tracks them and rejects conflicting re-creation.
func (s *Store) CreateCollection(ctx context.Context, name string, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("%w: dimension must be positive, got %d", domain.ErrIndexCreation, dimension)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.dimensions[name]; ok && existing != dimension {
		return fmt.Errorf("%w: collection %q exists with dimension %d, requested %d",
			domain.ErrIndexCreation, name, existing, dimension)
	}

	metadata := map[string]string{
		"hnsw:space": "cosine",
		"dimension":  strconv.Itoa(dimension),
	}
	if _, err := s.db.GetOrCreateCollection(name, metadata, nil); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIndexCreation, err)
	}
	s.dimensions[name] = dimension
	return s.saveDimensions()
}

// Upsert writes records into the collection.
func (s *Store) Upsert(ctx context.Context, name string, records []domain.IndexRecord) error {
	if len(records) == 0 {
		return nil
	}

	collection := s.db.GetCollection(name, nil)
	if collection == nil {
		return fmt.Errorf("%w: %s", domain.ErrCollectionNotFound, name)
	}

	s.mu.Lock()
	dimension := s.dimensions[name]
	s.mu.Unlock()

	ids := make([]string, len(records))
	vectors := make([][]float32, len(records))
	metadatas := make([]map[string]string, len(records))
	contents := make([]string, len(records))
	for i := range records {
		if dimension > 0 && len(records[i].Vector) != dimension {
			return fmt.Errorf("%w: record %s has dimension %d, collection %q expects %d",
				domain.ErrInvalidInput, records[i].ID, len(records[i].Vector), name, dimension)
		}
		ids[i] = records[i].ID
		vectors[i] = records[i].Vector
		metadatas[i] = metadataToMap(records[i].Metadata)
		contents[i] = records[i].Metadata.Text
	}

	if err := collection.Add(ctx, ids, vectors, metadatas, contents); err != nil {
		return fmt.Errorf("chromem: add to %s: %w", name, err)
	}
	return nil
}

// Query returns up to topK hits by descending cosine similarity.
func (s *Store) Query(ctx context.Context, name string, vector []float32, topK int) ([]driven.VectorHit, error) {
	collection := s.db.GetCollection(name, nil)
	if collection == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrCollectionNotFound, name)
	}

	// chromem rejects result counts above the collection size.
	count := collection.Count()
	if count == 0 {
		return []driven.VectorHit{}, nil
	}
	if topK > count {
		topK = count
	}

	results, err := collection.QueryEmbedding(ctx, vector, topK, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem: query %s: %w", name, err)
	}

	hits := make([]driven.VectorHit, 0, len(results))
	for _, r := range results {
		md := metadataFromMap(r.Metadata)
		if md.Text == "" {
			md.Text = r.Content
		}
		hits = append(hits, driven.VectorHit{
			ID:       r.ID,
			Score:    float64(r.Similarity),
			Metadata: md,
		})
	}
	return hits, nil
}

func metadataToMap(md domain.ChunkMetadata) map[string]string {
	return map[string]string{
		"text":         md.Text,
		"title":        md.Title,
		"file_name":    md.FileName,
		"author":       md.Author,
		"description":  md.Description,
		"chunk_index":  strconv.Itoa(md.ChunkIndex),
		"total_chunks": strconv.Itoa(md.TotalChunks),
		"source":       md.Source,
	}
}

func metadataFromMap(m map[string]string) domain.ChunkMetadata {
	md := domain.ChunkMetadata{}
	if m == nil {
		return md
	}
	md.Text = m["text"]
	md.Title = m["title"]
	md.FileName = m["file_name"]
	md.Author = m["author"]
	md.Description = m["description"]
	md.ChunkIndex, _ = strconv.Atoi(m["chunk_index"])
	md.TotalChunks, _ = strconv.Atoi(m["total_chunks"])
	md.Source = m["source"]
	return md
}
