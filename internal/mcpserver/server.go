package mcpserver

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/edvin/dokdash/internal/dokploy"
)

// Fetcher loads the full project tree with the process credentials.
type Fetcher func(ctx context.Context) ([]dokploy.Project, error)

// Server exposes read-only Dokploy inventory tools over streamable HTTP.
type Server struct {
	router chi.Router
	logger zerolog.Logger
}

// New creates the MCP endpoint. fetch is nil when no API key is configured;
// every tool then reports the missing key.
func New(fetch Fetcher, logger zerolog.Logger) *Server {
	tools := &toolset{fetch: fetch, logger: logger}

	mcpSrv := server.NewMCPServer(
		"dokploy-dashboard",
		"1.0.0",
		server.WithInstructions("Read-only view of a Dokploy instance: summary counts, every identifier grouped by category, and a text rendering of all projects."),
	)
	mcpSrv.AddTools(tools.serverTools()...)

	router := chi.NewRouter()
	router.Mount("/", server.NewStreamableHTTPServer(mcpSrv, server.WithEndpointPath("/")))

	logger.Info().Int("tools", len(tools.serverTools())).Bool("has_api_key", fetch != nil).Msg("mounted MCP endpoint")

	return &Server{router: router, logger: logger}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
