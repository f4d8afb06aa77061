// Package file loads documents from the local filesystem and stdin.
package file

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
)

// stdinLocation is the conventional marker for reading from stdin.
const stdinLocation = "-"

// Ensure Source implements the interface.
var _ driven.DocumentSource = (*Source)(nil)

// Source loads plain-text documents from file paths, and from stdin
// when the location is "-". It treats every file as text, so it should
// be registered after loaders that handle binary formats.
type Source struct {
	// Stdin is the reader used for the "-" location. Defaults to
	// os.Stdin; tests substitute their own.
	Stdin io.Reader
}

// NewSource creates a filesystem document source.
func NewSource() *Source {
	return &Source{Stdin: os.Stdin}
}

// Name returns the source name for logging.
func (s *Source) Name() string {
	return "file"
}

// CanLoad reports whether the location is stdin or a plausible path.
// Anything with a URI scheme belongs to another loader.
func (s *Source) CanLoad(source string) bool {
	if source == stdinLocation {
		return true
	}
	return !strings.Contains(source, "://")
}

// Load reads the file (or stdin) into a document.
func (s *Source) Load(_ context.Context, source string) (*domain.Document, error) {
	if source == stdinLocation {
		return s.loadStdin()
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %q: %w", domain.ErrInvalidInput, source, err)
	}

	content := string(data)
	return &domain.Document{
		ID:       uuid.NewString(),
		Source:   source,
		Title:    filepath.Base(source),
		Content:  content,
		RawChars: len([]rune(content)),
		Metadata: map[string]any{"loader": s.Name()},
		LoadedAt: time.Now().UTC(),
	}, nil
}

func (s *Source) loadStdin() (*domain.Document, error) {
	in := s.Stdin
	if in == nil {
		in = os.Stdin
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("%w: reading stdin: %w", domain.ErrInvalidInput, err)
	}

	content := string(data)
	return &domain.Document{
		ID:       uuid.NewString(),
		Source:   "stdin",
		Title:    "stdin",
		Content:  content,
		RawChars: len([]rune(content)),
		Metadata: map[string]any{"loader": s.Name()},
		LoadedAt: time.Now().UTC(),
	}, nil
}
