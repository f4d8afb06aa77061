// Package docsource resolves a location string to a loaded document.
//
// Each subpackage implements one loader: local files, docconv-backed
// rich formats, and GitHub repository files. The registry tries them
// in registration order; the first loader whose CanLoad returns true
// handles the location.
package docsource

import (
	"context"
	"fmt"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/custodia-labs/askdoc-cli/internal/logger"
)

// Registry dispatches document loading across registered sources.
type Registry struct {
	sources []driven.DocumentSource
}

// NewRegistry creates a registry. Order matters: the first source whose
// CanLoad returns true wins, so register specific loaders before
// general ones.
func NewRegistry(sources ...driven.DocumentSource) *Registry {
	return &Registry{sources: sources}
}

// Load resolves the location to a source and loads the document.
func (r *Registry) Load(ctx context.Context, source string) (*domain.Document, error) {
	for _, s := range r.sources {
		if !s.CanLoad(source) {
			continue
		}
		logger.Debug("Loading %q via %s source", source, s.Name())
		return s.Load(ctx, source)
	}
	return nil, fmt.Errorf("%w: no document source can load %q", domain.ErrUnsupportedType, source)
}
