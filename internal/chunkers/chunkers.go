// Package chunkers selects a chunking strategy by name.
package chunkers

import (
	"fmt"

	"github.com/docsift-labs/docsift-cli/internal/chunkers/paragraph"
	"github.com/docsift-labs/docsift-cli/internal/chunkers/window"
	"github.com/docsift-labs/docsift-cli/internal/core/domain"
	"github.com/docsift-labs/docsift-cli/internal/core/ports/driven"
)

// Strategy names accepted by ForStrategy.
const (
	StrategyParagraph = "paragraph"
	StrategyWindow    = "window"
)

// ForStrategy builds a chunker for the named strategy. An empty name
// selects the paragraph strategy. The overlap argument only applies to
// the window strategy.
func ForStrategy(name string, targetSize, overlap int) (driven.Chunker, error) {
	switch name {
	case "", StrategyParagraph:
		return paragraph.New(targetSize), nil
	case StrategyWindow:
		return window.New(window.WithWindowSize(targetSize), window.WithOverlap(overlap)), nil
	default:
		return nil, fmt.Errorf("%w: unknown chunking strategy %q", domain.ErrInvalidInput, name)
	}
}
