package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer from the loaded document"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer    string          `json:"answer"`
	Sections  []SectionOutput `json:"sections"`
	Truncated bool            `json:"truncated,omitempty"`
	ElapsedMS int64           `json:"elapsed_ms"`
}

// RetrieveInput is the input schema for the retrieve tool.
type RetrieveInput struct {
	Question string `json:"question" jsonschema:"the question to retrieve evidence for"`
}

// RetrieveOutput is the output schema for the retrieve tool.
type RetrieveOutput struct {
	Sections []SectionOutput `json:"sections"`
	Count    int             `json:"count"`
}

// SummariseInput is the input schema for the summarise tool.
type SummariseInput struct {
	MaxWords int `json:"max_words,omitempty" jsonschema:"soft word budget for the summary (default 200)"`
}

// SummariseOutput is the output schema for the summarise tool.
type SummariseOutput struct {
	Summary string `json:"summary"`
}

// SectionOutput is one retrieved chunk with provenance.
type SectionOutput struct {
	Ordinal int     `json:"ordinal"`
	Start   int     `json:"start"`
	End     int     `json:"end"`
	Score   float64 `json:"score"`
	Text    string  `json:"text"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question using only the loaded document",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "retrieve",
		Description: "Return the document sections most relevant to a question, without generating an answer",
	}, s.handleRetrieve)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "summarise",
		Description: "Summarise the loaded document",
	}, s.handleSummarise)
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	handle, err := s.current()
	if err != nil {
		return nil, AskOutput{}, err
	}

	answer, err := s.ports.Answer.Answer(ctx, handle, input.Question)
	if err != nil {
		return nil, AskOutput{}, err
	}

	return nil, AskOutput{
		Answer:    answer.Text,
		Sections:  toSections(answer.Retrieval.Chunks),
		Truncated: answer.Prompt.Truncated,
		ElapsedMS: answer.Stats.ElapsedMS,
	}, nil
}

// handleRetrieve handles the retrieve tool invocation.
func (s *Server) handleRetrieve(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RetrieveInput,
) (*mcp.CallToolResult, RetrieveOutput, error) {
	handle, err := s.current()
	if err != nil {
		return nil, RetrieveOutput{}, err
	}

	result, err := s.ports.Answer.Retrieve(ctx, handle, input.Question)
	if err != nil {
		return nil, RetrieveOutput{}, err
	}

	sections := toSections(result.Chunks)
	return nil, RetrieveOutput{
		Sections: sections,
		Count:    len(sections),
	}, nil
}

// handleSummarise handles the summarise tool invocation.
func (s *Server) handleSummarise(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SummariseInput,
) (*mcp.CallToolResult, SummariseOutput, error) {
	handle, err := s.current()
	if err != nil {
		return nil, SummariseOutput{}, err
	}

	maxWords := input.MaxWords
	if maxWords <= 0 {
		maxWords = 200
	}

	summary, err := s.ports.Answer.Summarise(ctx, handle, maxWords)
	if err != nil {
		return nil, SummariseOutput{}, err
	}

	return nil, SummariseOutput{Summary: summary}, nil
}

// toSections converts scored chunks to the wire shape.
func toSections(chunks []domain.ScoredChunk) []SectionOutput {
	sections := make([]SectionOutput, len(chunks))
	for i, sc := range chunks {
		sections[i] = SectionOutput{
			Ordinal: sc.Chunk.Ordinal,
			Start:   sc.Chunk.Start,
			End:     sc.Chunk.End,
			Score:   sc.Score,
			Text:    sc.Chunk.Text,
		}
	}
	return sections
}
