package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for Askdoc resources.
	uriScheme = "document://"

	// currentURI exposes the loaded document's full text.
	currentURI = uriScheme + "current"

	// chunksURI exposes the chunk map of the loaded document.
	chunksURI = uriScheme + "chunks"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         currentURI,
		Name:        "current-document",
		Description: "Full normalised text of the loaded document",
		MIMEType:    "text/plain",
	}, s.handleCurrentResource)

	s.server.AddResource(&mcp.Resource{
		URI:         chunksURI,
		Name:        "document-chunks",
		Description: "Chunk spans of the loaded document",
		MIMEType:    "application/json",
	}, s.handleChunksResource)
}

// handleCurrentResource returns the loaded document's content.
func (s *Server) handleCurrentResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	doc, err := s.currentDocument()
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     doc.Content,
		}},
	}, nil
}

// handleChunksResource returns the chunk spans of the loaded document.
func (s *Server) handleChunksResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	handle, err := s.current()
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	type chunkInfo struct {
		Ordinal int `json:"ordinal"`
		Start   int `json:"start"`
		End     int `json:"end"`
	}

	chunks := handle.Chunks()
	infos := make([]chunkInfo, len(chunks))
	for i, c := range chunks {
		infos[i] = chunkInfo{Ordinal: c.Ordinal, Start: c.Start, End: c.End}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling chunks: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
