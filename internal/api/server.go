package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/edvin/dokdash/internal/api/handler"
	mw "github.com/edvin/dokdash/internal/api/middleware"
	"github.com/edvin/dokdash/internal/config"
	"github.com/edvin/dokdash/internal/dokploy"
	"github.com/edvin/dokdash/internal/mcpserver"
	"github.com/edvin/dokdash/internal/proxy"
	"github.com/edvin/dokdash/internal/render"
)

type Server struct {
	router   chi.Router
	logger   zerolog.Logger
	cfg      *config.Config
	renderer *render.Renderer
}

func NewServer(logger zerolog.Logger, cfg *config.Config) (*Server, error) {
	renderer, err := render.NewRenderer()
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:   chi.NewRouter(),
		logger:   logger,
		cfg:      cfg,
		renderer: renderer,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s, nil
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.RequestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(mw.Metrics)
	s.router.Use(mw.CORS(s.cfg.CORSOrigins))
}

// loadProjects fetches straight from Dokploy for server-rendered pages.
func (s *Server) loadProjects(ctx context.Context, baseURL, apiKey string) ([]dokploy.Project, error) {
	return dokploy.FetchProjects(ctx, baseURL, apiKey, dokploy.WithTimeout(s.cfg.UpstreamTimeout))
}

func (s *Server) setupRoutes() {
	// Prometheus metrics endpoint, unless served on its own listener
	if s.cfg.MetricsAddr == "" {
		s.router.Handle("/metrics", promhttp.Handler())
	}

	// Health check endpoints
	s.router.Get("/health", handler.NewHealth(s.cfg).Get)
	s.router.Get("/healthz", s.handleHealthz)

	// Credential-injecting relay to the Dokploy API
	s.router.Handle("/api/dokploy/*", proxy.NewForwarder(s.logger, s.cfg.DokployURL, s.cfg.DokployAPIKey, s.cfg.UpstreamTimeout))

	if s.cfg.MCPEnabled {
		fetch := mcpserver.FetcherFor(s.cfg.DokployURL, s.cfg.DokployAPIKey, dokploy.WithTimeout(s.cfg.UpstreamTimeout))
		s.router.Mount("/mcp", mcpserver.New(fetch, s.logger))
	}

	s.router.Handle(render.AssetsPath+"*", http.StripPrefix(render.AssetsPath, handler.Assets()))

	dashboard := handler.NewDashboard(s.cfg, s.renderer, s.loadProjects)
	s.router.Get("/", dashboard.Index)
	s.router.Post("/", dashboard.Submit)
	s.router.Get("/ids", dashboard.IDs)
	s.router.Post("/retry", dashboard.Retry)
	s.router.Post("/sidebar", dashboard.ToggleSidebar)
	s.router.Post("/forget", dashboard.Forget)

	// Anything else is the single-page app
	s.router.NotFound(handler.NewSPA(s.cfg.StaticDir, http.HandlerFunc(dashboard.Index)).ServeHTTP)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
