package mcp

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driving"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server is the MCP server for Askdoc. It serves one document at a
// time; SetDocument swaps the indexed handle atomically, so tools
// always see a complete index.
type Server struct {
	ports  *Ports
	server *mcp.Server

	mu     sync.RWMutex
	source string
	handle driving.DocumentHandle
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    "askdoc",
		Version: Version,
	}

	s := &Server{
		ports:  ports,
		server: mcp.NewServer(impl, nil),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// SetDocument installs an indexed document. The previous handle, if
// any, is closed. Safe to call while the server is running.
func (s *Server) SetDocument(source string, handle driving.DocumentHandle) {
	s.mu.Lock()
	old := s.handle
	s.source = source
	s.handle = handle
	s.mu.Unlock()

	if old != nil {
		old.Close() //nolint:errcheck // Best-effort release of the old index.
	}
}

// Reindex reloads the current source and rebuilds the index.
// Requires a Loader port.
func (s *Server) Reindex(ctx context.Context) error {
	s.mu.RLock()
	source := s.source
	s.mu.RUnlock()

	if source == "" {
		return ErrNoDocument
	}
	if s.ports.Loader == nil {
		return fmt.Errorf("mcp: no document loader configured")
	}

	doc, err := s.ports.Loader.Load(ctx, source)
	if err != nil {
		return fmt.Errorf("reloading %q: %w", source, err)
	}

	handle, err := s.ports.Answer.Index(ctx, doc)
	if err != nil {
		return fmt.Errorf("re-indexing %q: %w", source, err)
	}

	s.SetDocument(source, handle)
	return nil
}

// current returns the installed handle, or ErrNoDocument.
func (s *Server) current() (driving.DocumentHandle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.handle == nil {
		return nil, ErrNoDocument
	}
	return s.handle, nil
}

// currentDocument returns the installed document, or ErrNoDocument.
func (s *Server) currentDocument() (*domain.Document, error) {
	handle, err := s.current()
	if err != nil {
		return nil, err
	}
	return handle.Document(), nil
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP starts the MCP server over HTTP on the specified address.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
