package services

import (
	"fmt"
	"time"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driving"
)

// Ensure DocumentIndex implements the interface.
var _ driving.DocumentHandle = (*DocumentIndex)(nil)

// DocumentIndex is one built index together with the document and
// chunks it was built from. It is the context object the pipeline
// hands to callers: several may coexist in one process, each fully
// independent. All fields are set at build time and never mutated, so
// a DocumentIndex is safe for concurrent use.
type DocumentIndex struct {
	doc      *domain.Document
	chunks   []domain.Chunk
	vector   driven.VectorIndex
	model    string
	provider string
	builtAt  time.Time
}

// Document returns the indexed document.
func (d *DocumentIndex) Document() *domain.Document {
	return d.doc
}

// Chunks returns the document's chunks in ordinal order.
func (d *DocumentIndex) Chunks() []domain.Chunk {
	return d.chunks
}

// EmbeddingModel returns the model that produced the index vectors.
func (d *DocumentIndex) EmbeddingModel() string {
	return d.model
}

// BuiltAt returns when the index build completed.
func (d *DocumentIndex) BuiltAt() time.Time {
	return d.builtAt
}

// Close releases the underlying vector index.
func (d *DocumentIndex) Close() error {
	if d.vector == nil {
		return nil
	}
	return d.vector.Close()
}

// chunk resolves an ordinal back to its chunk. Ordinals are dense and
// assigned in slice order by the chunker, so this is a direct lookup.
func (d *DocumentIndex) chunk(ordinal int) (domain.Chunk, error) {
	if ordinal < 0 || ordinal >= len(d.chunks) {
		return domain.Chunk{}, fmt.Errorf("%w: chunk ordinal %d (index has %d chunks)",
			domain.ErrNotFound, ordinal, len(d.chunks))
	}
	return d.chunks[ordinal], nil
}

// asDocumentIndex unwraps the opaque handle driving adapters hold.
func asDocumentIndex(handle driving.DocumentHandle) (*DocumentIndex, error) {
	idx, ok := handle.(*DocumentIndex)
	if !ok || idx == nil {
		return nil, fmt.Errorf("%w: document handle was not produced by this pipeline", domain.ErrInvalidInput)
	}
	return idx, nil
}
