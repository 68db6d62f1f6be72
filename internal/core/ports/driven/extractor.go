package driven

import "context"

// PageExtractor turns raw document bytes into per-page text.
//
// Implementations must return one string per page, in page order.
// Malformed or unreadable input is reported as an error wrapping
// domain.ErrDocumentParse.
type PageExtractor interface {
	// ExtractPages extracts the text of every page, in order.
	ExtractPages(ctx context.Context, data []byte) ([]string, error)
}
