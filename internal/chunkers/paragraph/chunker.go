// Package paragraph provides a paragraph- and sentence-aware chunker.
//
// Text is split on blank-line paragraph boundaries. Paragraphs are
// packed into chunks up to the target size; a paragraph longer than
// 1.5x the target is split further on sentence boundaries. A single
// sentence longer than the target is never cut: it becomes an
// oversized chunk, trading size for coherence.
package paragraph

import (
	"regexp"
	"strings"

	"github.com/docsift-labs/docsift-cli/internal/core/domain"
	"github.com/docsift-labs/docsift-cli/internal/core/ports/driven"
)

// DefaultTargetSize is the default number of characters per chunk.
const DefaultTargetSize = 1000

// Ensure Chunker implements the interface.
var _ driven.Chunker = (*Chunker)(nil)

var paragraphRe = regexp.MustCompile(`\r?\n\s*\r?\n`)

// Chunker splits text into paragraph-aligned chunks.
type Chunker struct {
	targetSize int
}

// New creates a paragraph chunker with the given target chunk size.
// Non-positive sizes fall back to DefaultTargetSize.
func New(targetSize int) *Chunker {
	if targetSize <= 0 {
		targetSize = DefaultTargetSize
	}
	return &Chunker{targetSize: targetSize}
}

// Name returns the strategy name.
func (c *Chunker) Name() string {
	return "paragraph"
}

// Chunk splits text into ordered chunks. Empty or whitespace-only
// input yields no chunks; any non-whitespace input yields at least one.
func (c *Chunker) Chunk(text string) []domain.Chunk {
	var chunks []domain.Chunk
	var current strings.Builder

	seal := func() {
		trimmed := strings.TrimSpace(current.String())
		if trimmed != "" {
			chunks = append(chunks, domain.Chunk{Text: trimmed, Index: len(chunks)})
		}
		current.Reset()
	}

	oversize := c.targetSize + c.targetSize/2

	for _, para := range paragraphRe.Split(text, -1) {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if len(para) > oversize {
			// Too large to place whole: pack sentence by sentence.
			for _, sentence := range splitSentences(para) {
				if current.Len() > 0 && current.Len()+1+len(sentence) > c.targetSize {
					seal()
				}
				if current.Len() > 0 {
					current.WriteByte(' ')
				}
				current.WriteString(sentence)
			}
			continue
		}

		if current.Len() > 0 && current.Len()+2+len(para) > c.targetSize {
			seal()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
	}

	seal()
	return chunks
}

// splitSentences splits on '.', '!' or '?' followed by whitespace or
// end of text. The terminator stays with its sentence.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '.', '!', '?':
			if i+1 < len(text) && !isSpace(text[i+1]) {
				continue
			}
			if s := strings.TrimSpace(text[start : i+1]); s != "" {
				sentences = append(sentences, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
