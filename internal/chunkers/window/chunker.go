// Package window provides a fixed-size window chunker with character
// overlap between consecutive chunks, independent of paragraph or
// sentence boundaries.
package window

import (
	"strings"

	"github.com/docsift-labs/docsift-cli/internal/core/domain"
	"github.com/docsift-labs/docsift-cli/internal/core/ports/driven"
)

// DefaultWindowSize is the default number of characters per chunk.
const DefaultWindowSize = 1000

// DefaultOverlap is the default number of overlapping characters.
const DefaultOverlap = 200

// Ensure Chunker implements the interface.
var _ driven.Chunker = (*Chunker)(nil)

// Chunker splits text into fixed-size overlapping windows.
type Chunker struct {
	windowSize int
	overlap    int
}

// Option configures the window chunker.
type Option func(*Chunker)

// WithWindowSize sets the window size in characters.
func WithWindowSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.windowSize = size
		}
	}
}

// WithOverlap sets the overlap between consecutive windows in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a window chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		windowSize: DefaultWindowSize,
		overlap:    DefaultOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Overlap must stay below the window size or the cursor never advances.
	if c.overlap >= c.windowSize {
		c.overlap = c.windowSize / 4
	}

	return c
}

// Name returns the strategy name.
func (c *Chunker) Name() string {
	return "window"
}

// Chunk splits text into ordered overlapping windows. Each window's
// start is the previous start advanced by windowSize minus overlap.
func (c *Chunker) Chunk(text string) []domain.Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	textLen := len(text)
	estimated := textLen/(c.windowSize-c.overlap) + 1
	chunks := make([]domain.Chunk, 0, estimated)

	for start := 0; start < textLen; start += c.windowSize - c.overlap {
		end := start + c.windowSize
		if end > textLen {
			end = textLen
		}

		content := strings.TrimSpace(text[start:end])
		if content != "" {
			chunks = append(chunks, domain.Chunk{Text: content, Index: len(chunks)})
		}

		if end == textLen {
			break
		}
	}

	return chunks
}
