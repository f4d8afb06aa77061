package domain

import "time"

// Document represents a loaded document ready for indexing.
// It is immutable once constructed; Content holds the whitespace-normalised
// text that all chunk offsets refer to.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Source is the original location (file path, github URI, or "stdin").
	Source string

	// Title is the human-readable title, usually derived from Source.
	Title string

	// Content is the full text after whitespace normalisation.
	// Chunk offsets index into this string, counted in runes.
	Content string

	// RawChars is the rune count of the text before normalisation.
	RawChars int

	// Metadata contains arbitrary key-value pairs from the loader.
	Metadata map[string]any

	// LoadedAt is when the document was read from its source.
	LoadedAt time.Time
}

// Chars returns the rune count of the normalised content.
func (d *Document) Chars() int {
	return len([]rune(d.Content))
}

// Chunk is a contiguous span of document text. Chunks carry their own
// identity: a dense ordinal assigned in document order, and the half-open
// rune span [Start, End) within Document.Content.
type Chunk struct {
	// Ordinal is the chunk's position in document order, starting at 0.
	// Ordinals are unique and dense within one chunking pass.
	Ordinal int

	// DocumentID links to the parent Document.
	DocumentID string

	// Start is the inclusive rune offset of the span.
	Start int

	// End is the exclusive rune offset of the span. Always > Start.
	End int

	// Text is the document content covered by [Start, End).
	Text string
}

// Len returns the chunk's span length in runes.
func (c Chunk) Len() int {
	return c.End - c.Start
}
