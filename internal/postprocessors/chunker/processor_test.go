package chunker

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
)

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		p := New()
		if p.chunkSize != DefaultChunkSize {
			t.Errorf("expected chunkSize %d, got %d", DefaultChunkSize, p.chunkSize)
		}
		if p.overlap != DefaultChunkOverlap {
			t.Errorf("expected overlap %d, got %d", DefaultChunkOverlap, p.overlap)
		}
	})

	t.Run("custom chunk size", func(t *testing.T) {
		p := New(WithChunkSize(500))
		if p.chunkSize != 500 {
			t.Errorf("expected chunkSize 500, got %d", p.chunkSize)
		}
	})

	t.Run("custom overlap", func(t *testing.T) {
		p := New(WithOverlap(100))
		if p.overlap != 100 {
			t.Errorf("expected overlap 100, got %d", p.overlap)
		}
	})

	t.Run("zero values ignored", func(t *testing.T) {
		p := New(WithChunkSize(0), WithOverlap(-1))
		if p.chunkSize != DefaultChunkSize {
			t.Errorf("expected default chunkSize, got %d", p.chunkSize)
		}
		if p.overlap != DefaultChunkOverlap {
			t.Errorf("expected default overlap, got %d", p.overlap)
		}
	})
}

func TestProcessor_Name(t *testing.T) {
	p := New()
	if p.Name() != "chunker" {
		t.Errorf("expected name 'chunker', got '%s'", p.Name())
	}
}

func TestProcessor_Process_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		proc *Processor
	}{
		{"overlap equals chunk size", New(WithChunkSize(10), WithOverlap(10))},
		{"overlap exceeds chunk size", New(WithChunkSize(10), WithOverlap(15))},
		{"zero chunk size", &Processor{chunkSize: 0, overlap: 0}},
		{"negative overlap", &Processor{chunkSize: 10, overlap: -2}},
	}

	doc := &domain.Document{ID: "test-doc", Content: "some content"}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks, err := tt.proc.Process(context.Background(), doc, nil)
			if !errors.Is(err, domain.ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
			if chunks != nil {
				t.Errorf("expected no chunks on invalid config, got %d", len(chunks))
			}
		})
	}
}

func TestProcessor_Process_EmptyContent(t *testing.T) {
	p := New()
	doc := &domain.Document{
		ID:      "test-doc",
		Content: "",
	}

	chunks, err := p.Process(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 0 {
		t.Errorf("expected 0 chunks for empty content, got %d", len(chunks))
	}
}

func TestProcessor_Process_SmallContent(t *testing.T) {
	p := New(WithChunkSize(100), WithOverlap(20))
	doc := &domain.Document{
		ID:      "test-doc",
		Content: "This is a small piece of content.",
	}

	chunks, err := p.Process(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk for small content, got %d", len(chunks))
	}

	c := chunks[0]
	if c.DocumentID != doc.ID {
		t.Errorf("expected DocumentID '%s', got '%s'", doc.ID, c.DocumentID)
	}
	if c.Text != doc.Content {
		t.Errorf("expected chunk text to match document content")
	}
	if c.Ordinal != 0 || c.Start != 0 || c.End != len([]rune(doc.Content)) {
		t.Errorf("unexpected identity: ordinal=%d span=[%d,%d)", c.Ordinal, c.Start, c.End)
	}
}

func TestProcessor_Process_ReferenceWalk(t *testing.T) {
	p := New(WithChunkSize(8), WithOverlap(2))
	doc := &domain.Document{
		ID:      "test-doc",
		Content: "AAAA BBBB CCCC DDDD", // 19 runes
	}

	chunks, err := p.Process(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []struct {
		start, end int
		text       string
	}{
		{0, 8, "AAAA BBB"},
		{6, 14, "BBB CCCC"},
		{12, 19, "CC DDDD"},
	}

	if len(chunks) != len(want) {
		t.Fatalf("expected %d chunks, got %d", len(want), len(chunks))
	}
	for i, w := range want {
		c := chunks[i]
		if c.Ordinal != i {
			t.Errorf("chunk %d: expected ordinal %d, got %d", i, i, c.Ordinal)
		}
		if c.Start != w.start || c.End != w.end {
			t.Errorf("chunk %d: expected span [%d,%d), got [%d,%d)", i, w.start, w.end, c.Start, c.End)
		}
		if c.Text != w.text {
			t.Errorf("chunk %d: expected text %q, got %q", i, w.text, c.Text)
		}
	}
}

func TestProcessor_Process_NoEmptyTail(t *testing.T) {
	// A stride landing exactly on the end must not emit a zero-length chunk.
	p := New(WithChunkSize(8), WithOverlap(2))
	doc := &domain.Document{
		ID:      "test-doc",
		Content: strings.Repeat("x", 12),
	}

	chunks, err := p.Process(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	last := chunks[len(chunks)-1]
	if last.Start != 6 || last.End != 12 {
		t.Errorf("expected final span [6,12), got [%d,%d)", last.Start, last.End)
	}
	for i, c := range chunks {
		if c.Len() == 0 {
			t.Errorf("chunk %d is empty", i)
		}
	}
}

func TestProcessor_Process_Deterministic(t *testing.T) {
	p := New(WithChunkSize(50), WithOverlap(10))
	doc := &domain.Document{
		ID:      "test-doc",
		Content: strings.Repeat("the quick brown fox jumps over the lazy dog ", 20),
	}

	first, err := p.Process(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := p.Process(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical chunks across runs")
	}
}

func TestProcessor_Process_Reconstruct(t *testing.T) {
	p := New(WithChunkSize(37), WithOverlap(9))
	doc := &domain.Document{
		ID:      "test-doc",
		Content: strings.Repeat("retrieval depends on offsets staying honest. ", 11),
	}

	chunks, err := p.Process(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Every span re-sliced from the document must equal the chunk text.
	runes := []rune(doc.Content)
	for _, c := range chunks {
		if got := string(runes[c.Start:c.End]); got != c.Text {
			t.Errorf("chunk %d: span does not match text", c.Ordinal)
		}
	}

	// Concatenating spans minus overlaps must rebuild the document.
	var b strings.Builder
	prevEnd := 0
	for _, c := range chunks {
		r := []rune(c.Text)
		b.WriteString(string(r[prevEnd-c.Start:]))
		prevEnd = c.End
	}
	if b.String() != doc.Content {
		t.Error("reconstructed content does not match document")
	}
	if chunks[0].Start != 0 || chunks[len(chunks)-1].End != len(runes) {
		t.Error("chunks do not cover the document")
	}
}

func TestProcessor_Process_MultibyteRunes(t *testing.T) {
	p := New(WithChunkSize(3), WithOverlap(1))
	doc := &domain.Document{
		ID:      "test-doc",
		Content: "你好世界你好世界", // 8 runes
	}

	chunks, err := p.Process(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(chunks) != 4 {
		t.Fatalf("expected 4 chunks, got %d", len(chunks))
	}
	if chunks[0].Text != "你好世" {
		t.Errorf("expected first chunk '你好世', got %q", chunks[0].Text)
	}
	last := chunks[len(chunks)-1]
	if last.Start != 6 || last.End != 8 || last.Text != "世界" {
		t.Errorf("unexpected final chunk: span=[%d,%d) text=%q", last.Start, last.End, last.Text)
	}
}

func TestProcessor_Process_IgnoresInputChunks(t *testing.T) {
	p := New(WithChunkSize(100))

	existingChunks := []domain.Chunk{
		{Ordinal: 99, Text: "should be ignored"},
	}

	doc := &domain.Document{
		ID:      "test-doc",
		Content: "New content to chunk",
	}

	chunks, err := p.Process(context.Background(), doc, existingChunks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(chunks) != 1 || chunks[0].Ordinal != 0 {
		t.Error("expected fresh chunks with ordinals starting at 0")
	}
}
