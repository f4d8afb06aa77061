package driven

import (
	"context"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
)

// DocumentSource loads a document from a location string: a file path,
// a github:// URI, or "-" for stdin. Sources are tried in registration
// order; the first one whose CanLoad returns true wins.
type DocumentSource interface {
	// Name returns the source name for logging.
	Name() string

	// CanLoad reports whether this source understands the location.
	CanLoad(source string) bool

	// Load reads the document. Content is returned raw; normalisation
	// happens later in the indexing pipeline.
	Load(ctx context.Context, source string) (*domain.Document, error)
}
