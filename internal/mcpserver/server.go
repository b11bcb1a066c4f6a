// Package mcpserver exposes the design catalog and garment generation as MCP
// tools over streamable HTTP.
package mcpserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/mark3labs/mcp-go/server"
	"github.com/mark3labs/tailor/internal/catalog"
	"github.com/mark3labs/tailor/internal/journal"
	"github.com/mark3labs/tailor/internal/logger"
	"github.com/mark3labs/tailor/internal/session"
)

// HistorySource returns the generation history of the running session.
type HistorySource interface {
	History(ctx context.Context) (*journal.History, error)
}

// Options configures a Server.
type Options struct {
	Addr       string // listen address; empty means a random local port
	Currency   string
	ServiceFee float64
	History    HistorySource // optional; enables the generation-history tool
}

// Server manages an MCP HTTP server. Every generate-design call runs on a
// fresh wizard controller.
type Server struct {
	catalog *catalog.Catalog
	gen     session.Generator
	opts    Options

	mcpServer  *server.MCPServer
	httpServer *server.StreamableHTTPServer
	stdServer  *http.Server
	port       int
	mu         sync.Mutex
}

// New creates a server. It is not started until Start is called.
func New(cat *catalog.Catalog, gen session.Generator, opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = "127.0.0.1:0"
	}
	return &Server{catalog: cat, gen: gen, opts: opts}
}

// Start starts the HTTP server and returns the port it listens on.
func (s *Server) Start(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdServer != nil {
		return 0, fmt.Errorf("server already started")
	}

	s.mcpServer = server.NewMCPServer(
		"tailor",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	s.registerTools()

	// Pass the listener to Serve directly so the port cannot be taken in between.
	listener, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return 0, fmt.Errorf("failed to listen on %s: %w", s.opts.Addr, err)
	}
	s.port = listener.Addr().(*net.TCPAddr).Port

	mux := http.NewServeMux()
	mcpHandler := server.NewStreamableHTTPServer(
		s.mcpServer,
		server.WithStateLess(true),
	)
	mux.Handle("/mcp", mcpHandler)

	s.stdServer = &http.Server{Handler: mux}
	s.httpServer = mcpHandler

	stdServer := s.stdServer
	go func() {
		if err := stdServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("MCP server error: %v", err)
		}
	}()

	logger.Info("MCP server ready on port %d", s.port)
	return s.port, nil
}

// Stop stops the HTTP server.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdServer == nil {
		return nil
	}

	if err := s.stdServer.Shutdown(context.Background()); err != nil {
		logger.Warn("Error stopping MCP server: %v", err)
		return fmt.Errorf("failed to stop server: %w", err)
	}

	s.httpServer = nil
	s.stdServer = nil
	s.mcpServer = nil
	logger.Debug("MCP server stopped")
	return nil
}

// URL returns the HTTP URL of the MCP endpoint.
func (s *Server) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("http://localhost:%d/mcp", s.port)
}
