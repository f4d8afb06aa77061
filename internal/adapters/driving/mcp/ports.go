package mcp

import (
	"context"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driving"
)

// DocumentLoader resolves a location string to a document. It matches
// the docsource registry and exists so the server can reload the
// document when the watcher fires.
type DocumentLoader interface {
	Load(ctx context.Context, source string) (*domain.Document, error)
}

// Ports aggregates the driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Answer runs the question answering pipeline.
	Answer driving.AnswerService

	// Loader reloads the document on demand. Optional; without it the
	// file watcher cannot re-index.
	Loader DocumentLoader
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Answer == nil {
		return ErrMissingAnswerService
	}
	// Loader is optional; it only enables re-indexing.
	return nil
}
