package driven

import "github.com/docsift-labs/docsift-cli/internal/core/domain"

// Chunker splits extracted full text into bounded, ordered chunks.
// Implementations are pure: same input, same chunks.
//
// Two strategies ship with Docsift: paragraph/sentence splitting and
// fixed-size windows with character overlap. See internal/chunkers.
type Chunker interface {
	// Name returns the strategy name for logging and configuration.
	Name() string

	// Chunk splits text into ordered chunks with Index assigned
	// sequentially from zero. Empty or whitespace-only text yields no
	// chunks; any non-whitespace text yields at least one.
	Chunk(text string) []domain.Chunk
}
