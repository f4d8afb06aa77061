package driving

import (
	"context"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
)

// AnswerService answers questions about a single indexed document.
// Driving adapters (CLI, TUI, MCP) hold a DocumentHandle per loaded
// document; handles are independent, so several documents can be
// indexed side by side in one process.
type AnswerService interface {
	// Index chunks and embeds the document, returning a handle to the
	// built index. The build is all-or-nothing: on error no handle
	// exists. Safe to call repeatedly; each call builds a fresh index.
	Index(ctx context.Context, doc *domain.Document) (DocumentHandle, error)

	// Answer retrieves evidence for the question from the handle's
	// index and generates a grounded answer.
	Answer(ctx context.Context, handle DocumentHandle, question string) (*domain.Answer, error)

	// AnswerText is the one-shot form: index the text, answer the
	// question, discard the index.
	AnswerText(ctx context.Context, documentText, question string) (*domain.Answer, error)

	// Retrieve returns the ranked evidence without generating. Used by
	// inspection surfaces (MCP retrieve tool, --show-context).
	Retrieve(ctx context.Context, handle DocumentHandle, question string) (domain.RetrievalResult, error)

	// Summarise produces a summary of the handle's document.
	Summarise(ctx context.Context, handle DocumentHandle, maxWords int) (string, error)
}

// DocumentHandle is an opaque reference to one built index and its
// document. Handles are read-only and safe for concurrent use.
type DocumentHandle interface {
	// Document returns the indexed document.
	Document() *domain.Document

	// Chunks returns the document's chunks in ordinal order.
	Chunks() []domain.Chunk

	// Close releases index resources.
	Close() error
}
