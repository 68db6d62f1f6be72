// Package unipdf extracts page text from PDF documents using the
// unidoc unipdf library.
package unipdf

import (
	"bytes"
	"context"
	"fmt"

	pdfextractor "github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"

	"github.com/docsift-labs/docsift-cli/internal/core/domain"
	"github.com/docsift-labs/docsift-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.PageExtractor = (*Extractor)(nil)

// Extractor parses PDF bytes and returns per-page text.
type Extractor struct{}

// NewExtractor creates a PDF page extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractPages returns the text of every page, in order. Pages whose
// text cannot be decoded are returned as empty strings rather than
// failing the whole document. Encrypted documents are tried with an
// empty password; anything stronger reports domain.ErrDocumentParse.
func (e *Extractor) ExtractPages(ctx context.Context, data []byte) ([]string, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty document", domain.ErrDocumentParse)
	}

	reader, err := model.NewPdfReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDocumentParse, err)
	}

	encrypted, err := reader.IsEncrypted()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDocumentParse, err)
	}
	if encrypted {
		ok, err := reader.Decrypt([]byte(""))
		if err != nil || !ok {
			return nil, fmt.Errorf("%w: document is password protected", domain.ErrDocumentParse)
		}
	}

	numPages, err := reader.GetNumPages()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDocumentParse, err)
	}

	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, err := reader.GetPage(i)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", domain.ErrDocumentParse, i, err)
		}

		ex, err := pdfextractor.New(page)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		text, err := ex.ExtractText()
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}
	return pages, nil
}
