package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Note: This is separate from VectorStore which persists and searches
// vectors. EmbeddingService generates vectors; VectorStore stores them.
//
// Implementations may include:
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - Ollama (nomic-embed-text, all-minilm)
//   - Local models via inference servers
type EmbeddingService interface {
	// EmbedBatch generates one embedding per input text, in input
	// order. Callers must keep batches within MaxBatchSize.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// MaxBatchSize returns the largest batch the service accepts
	// in a single call.
	MaxBatchSize() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request. Used at startup to verify connectivity before
	// committing to an ingestion run.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
