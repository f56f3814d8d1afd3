package api

import (
	_ "embed"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/edvin/snowguard/internal/api/handler"
	mw "github.com/edvin/snowguard/internal/api/middleware"
	"github.com/edvin/snowguard/internal/config"
	"github.com/edvin/snowguard/internal/core"
	"github.com/edvin/snowguard/internal/web"
)

//go:embed docs/openapi.json
var openAPIJSON []byte

type Server struct {
	router   chi.Router
	logger   zerolog.Logger
	services *core.Services
	cfg      *config.Config
}

func NewServer(logger zerolog.Logger, services *core.Services, cfg *config.Config) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		logger:   logger,
		services: services,
		cfg:      cfg,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.RequestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(mw.Metrics)
}

func (s *Server) setupRoutes() {
	// Prometheus metrics endpoint
	s.router.Handle("/metrics", promhttp.Handler())

	// Health check endpoint
	s.router.Get("/healthz", s.handleHealthz)

	// API documentation
	s.router.Get("/api/openapi.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(openAPIJSON)
	})
	s.router.Get("/api/docs", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(scalarHTML))
	})

	perimeter := handler.NewPerimeter(s.services.Perimeter)
	rbac := handler.NewRBAC(s.services.RBAC)
	docs := handler.NewDocs()

	// Form pages and the downloads they link to
	web.NewHandler(s.services).Routes(s.router)
	s.router.Get("/perimeter/download", perimeter.Download)
	s.router.Get("/rbac/download", rbac.Download)
	s.router.Get("/rbac/diagram", rbac.DiagramDownload)

	s.router.Route("/api/v1", func(r chi.Router) {
		// Perimeter
		r.Get("/perimeter/defaults", perimeter.Defaults)
		r.Post("/perimeter/preview", perimeter.Preview)
		r.Post("/perimeter/script", perimeter.Script)

		// RBAC
		r.Post("/rbac/preview", rbac.Preview)
		r.Post("/rbac/script", rbac.Script)
		r.Post("/rbac/diagram", rbac.Diagram)

		// Documentation
		r.Get("/docs", docs.List)
		r.Get("/docs/{page}", docs.Get)
	})
}

// Mount attaches an additional handler, such as the MCP endpoint, under pattern.
func (s *Server) Mount(pattern string, h http.Handler) {
	s.router.Mount(pattern, h)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

const scalarHTML = `<!DOCTYPE html>
<html>
<head>
  <title>Snowguard API</title>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
</head>
<body>
  <script id="api-reference" data-url="/api/openapi.json"></script>
  <script src="https://cdn.jsdelivr.net/npm/@scalar/api-reference"></script>
</body>
</html>`
