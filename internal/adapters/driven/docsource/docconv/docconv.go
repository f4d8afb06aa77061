// Package docconv loads rich-format documents (PDF, Word, HTML) by
// converting them to plain text.
package docconv

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	conv "code.sajari.com/docconv/v2"
	"github.com/google/uuid"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
)

// extensions maps the file extensions this loader converts.
var extensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".doc":  true,
	".odt":  true,
	".rtf":  true,
	".html": true,
	".htm":  true,
}

// Ensure Source implements the interface.
var _ driven.DocumentSource = (*Source)(nil)

// Source converts rich documents to text via docconv. Register it
// before the plain file loader so binary formats never get read as
// raw text.
type Source struct{}

// NewSource creates a docconv-backed document source.
func NewSource() *Source {
	return &Source{}
}

// Name returns the source name for logging.
func (s *Source) Name() string {
	return "docconv"
}

// CanLoad reports whether the location is a local path with a
// convertible extension.
func (s *Source) CanLoad(source string) bool {
	if strings.Contains(source, "://") {
		return false
	}
	return extensions[strings.ToLower(filepath.Ext(source))]
}

// Load converts the file to plain text.
func (s *Source) Load(_ context.Context, source string) (*domain.Document, error) {
	res, err := conv.ConvertPath(source)
	if err != nil {
		return nil, fmt.Errorf("%w: converting %q: %w", domain.ErrInvalidInput, source, err)
	}

	doc := &domain.Document{
		ID:       uuid.NewString(),
		Source:   source,
		Title:    filepath.Base(source),
		Content:  res.Body,
		RawChars: len([]rune(res.Body)),
		Metadata: map[string]any{"loader": s.Name()},
		LoadedAt: time.Now().UTC(),
	}
	if title := strings.TrimSpace(res.Meta["Title"]); title != "" {
		doc.Title = title
	}
	return doc, nil
}
