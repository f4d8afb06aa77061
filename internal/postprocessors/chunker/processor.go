// Package chunker provides a fixed-size overlapping text chunking processor.
package chunker

import (
	"context"
	"fmt"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
)

// DefaultChunkSize is the default span length in runes.
const DefaultChunkSize = domain.DefaultChunkSize

// DefaultChunkOverlap is the default overlap between consecutive spans.
const DefaultChunkOverlap = domain.DefaultOverlap

// Processor splits document content into fixed-size overlapping chunks.
// Spans are measured in runes and refer back into doc.Content, so the
// chunk list plus the document reconstructs exactly. Chunking is fully
// deterministic: same content and parameters, same chunks.
// It implements the PostProcessor interface.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in runes.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in runes.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
// Parameter combinations are not clamped; an overlap that reaches the
// chunk size is reported as an error by Process.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// ChunkSize returns the configured span length in runes.
func (p *Processor) ChunkSize() int {
	return p.chunkSize
}

// Overlap returns the configured overlap in runes.
func (p *Processor) Overlap() int {
	return p.overlap
}

// validate checks the parameter combination before any splitting work.
func (p *Processor) validate() error {
	if p.chunkSize <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", domain.ErrInvalidConfig, p.chunkSize)
	}
	if p.overlap < 0 || p.overlap >= p.chunkSize {
		return fmt.Errorf("%w: overlap %d must be in [0, %d)", domain.ErrInvalidConfig, p.overlap, p.chunkSize)
	}
	return nil
}

// Process splits the document content into chunks.
// Input chunks are ignored; this processor creates new chunks from
// document content. Empty content yields no chunks and no error.
//
// The walk starts a span every chunkSize-overlap runes and clamps each
// span to the end of the content. The span that reaches the end is the
// last one, so the final chunk may be short but is never empty.
func (p *Processor) Process(_ context.Context, doc *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	runes := []rune(doc.Content)
	n := len(runes)
	if n == 0 {
		return nil, nil
	}

	stride := p.chunkSize - p.overlap
	chunks := make([]domain.Chunk, 0, n/stride+1)

	ordinal := 0
	for start := 0; start < n; start += stride {
		end := start + p.chunkSize
		if end > n {
			end = n
		}

		chunks = append(chunks, domain.Chunk{
			Ordinal:    ordinal,
			DocumentID: doc.ID,
			Start:      start,
			End:        end,
			Text:       string(runes[start:end]),
		})
		ordinal++

		if end == n {
			break
		}
	}

	return chunks, nil
}
