// Package normalise provides a whitespace normalisation processor.
package normalise

import (
	"context"
	"strings"
	"unicode"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
)

// Processor collapses every run of Unicode whitespace in the document
// content to a single space and trims the ends. Extracted text (PDF
// especially) arrives riddled with hard wraps and stray tabs; chunking
// on the cleaned form keeps spans meaningful and deterministic.
// It implements the PostProcessor interface.
type Processor struct{}

// New creates a new whitespace normalisation processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "normalise"
}

// Process rewrites doc.Content to its normalised form and records the
// original rune count in doc.RawChars. Chunks pass through untouched;
// this processor must run before the chunker.
func (p *Processor) Process(_ context.Context, doc *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error) {
	doc.RawChars = len([]rune(doc.Content))
	doc.Content = Text(doc.Content)
	return chunks, nil
}

// Text returns s with every whitespace run collapsed to one space and
// leading/trailing whitespace removed.
func Text(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inSpace = true
			continue
		}
		if inSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inSpace = false
		b.WriteRune(r)
	}

	return b.String()
}
