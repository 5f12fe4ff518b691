package mcp

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is the MCP server version.
const Version = "0.1.0"

// instructions tells clients how the tools and resources fit together.
const instructions = `hybra serves social media datasets stored in a local data directory.
Read hybra://sources for the source names and hybra://versions for the data
folders of each source. Every tool takes a source and an optional folder.

- filter: records matching text terms, authors, URL domains, a date range
  and an expression; at most 50 records unless limit is given
- describe: post, author and domain totals plus the time span
- author_counts, domain_counts: records per author or per domain, busiest first
- hybra://sources/{source}/summary: the describe totals as a resource`

// Server is the MCP server for hybra.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    "hybra",
		Version: Version,
	}

	s := &Server{
		ports:  ports,
		server: mcp.NewServer(impl, serverOptions()),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

func serverOptions() *mcp.ServerOptions {
	return &mcp.ServerOptions{
		Instructions: instructions,
	}
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
