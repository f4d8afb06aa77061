// Package mcp provides an MCP (Model Context Protocol) server adapter for Askdoc.
// It lets AI assistants like Claude ask questions about the loaded document.
package mcp

import "errors"

// ErrMissingAnswerService is returned when the answer service is not provided.
var ErrMissingAnswerService = errors.New("mcp: answer service is required")

// ErrNoDocument is returned when a tool is invoked before a document is loaded.
var ErrNoDocument = errors.New("mcp: no document is loaded")
