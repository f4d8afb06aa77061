package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/custodia-labs/askdoc-cli/internal/logger"
)

// defaultAnswerPrompt is the fallback template when no PromptStore is
// configured. It carries the grounding contract: the model must answer
// only from the supplied context and admit when the context is not
// enough. Placeholders: context sections, then the question.
const defaultAnswerPrompt = `You are answering a question about a single document.
Use ONLY the context sections below. Do not use outside knowledge.
If the context does not contain enough information to answer, say so explicitly.
Reference sections by their labels when it helps the reader verify the answer.

Context:
%s

Question: %s

Answer:`

// defaultNoContextMarker is the context body used when retrieval found
// nothing at all.
const defaultNoContextMarker = `(no relevant context was found in the document)`

// Composer assembles a bounded generation prompt from ranked chunks
// and a question. Composition is pure text assembly: identical inputs
// produce byte-identical prompts.
type Composer struct {
	promptStore driven.PromptStore
}

// NewComposer creates a composer. promptStore may be nil, in which
// case the compiled-in templates are used.
func NewComposer(promptStore driven.PromptStore) *Composer {
	return &Composer{promptStore: promptStore}
}

// Compose builds the grounded prompt for the question. Chunks are
// included whole, in the given rank order, until the next chunk would
// push the included rune count past maxContextChars. If not even the
// best-ranked chunk fits, that single chunk is cut to the budget at a
// rune boundary and the prompt is flagged Truncated.
func (c *Composer) Compose(question string, result domain.RetrievalResult, maxContextChars int) (domain.Prompt, error) {
	if maxContextChars < 1 {
		return domain.Prompt{}, fmt.Errorf("%w: max_context_chars must be at least 1, got %d",
			domain.ErrInvalidConfig, maxContextChars)
	}

	template := c.loadPrompt(driven.PromptAnswer, defaultAnswerPrompt)

	var prompt domain.Prompt
	var sections []string

	switch {
	case result.Empty():
		sections = append(sections, c.loadPrompt(driven.PromptNoContext, defaultNoContextMarker))

	default:
		for _, sc := range result.Chunks {
			if prompt.ContextChars+sc.Chunk.Len() > maxContextChars {
				break
			}
			sections = append(sections, sectionLabel(sc.Chunk)+"\n"+sc.Chunk.Text)
			prompt.Ordinals = append(prompt.Ordinals, sc.Chunk.Ordinal)
			prompt.ContextChars += sc.Chunk.Len()
		}

		// Nothing fit whole: include the best chunk cut to budget
		// rather than answering from nothing.
		if len(prompt.Ordinals) == 0 {
			best := result.Chunks[0].Chunk
			cut := string([]rune(best.Text)[:maxContextChars])
			sections = append(sections, sectionLabel(best)+"\n"+cut)
			prompt.Ordinals = []int{best.Ordinal}
			prompt.ContextChars = maxContextChars
			prompt.Truncated = true
			logger.Warn("Best chunk (%d runes) exceeds context budget (%d), truncating", best.Len(), maxContextChars)
		}
	}

	prompt.Text = fmt.Sprintf(template, strings.Join(sections, "\n\n"), result.Query)

	logger.Debug("Composed prompt: %d sections, %d context runes, truncated=%t",
		len(prompt.Ordinals), prompt.ContextChars, prompt.Truncated)
	return prompt, nil
}

// sectionLabel is the stable provenance line introducing a chunk. It
// is derived from chunk identity, never from the score, so the same
// chunk always carries the same label.
func sectionLabel(c domain.Chunk) string {
	return fmt.Sprintf("[Section %d | chars %d-%d]", c.Ordinal+1, c.Start, c.End)
}

// loadPrompt loads a template from the store, falling back to the default.
func (c *Composer) loadPrompt(name, fallback string) string {
	if c.promptStore == nil {
		return fallback
	}
	prompt, err := c.promptStore.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}
