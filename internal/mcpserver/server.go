package mcpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	mw "github.com/edvin/snowguard/internal/api/middleware"
	"github.com/edvin/snowguard/internal/core"
)

const (
	serverName    = "snowguard"
	serverVersion = "1.0.0"
)

// Server is the standalone MCP server exposing the generators as tools.
type Server struct {
	router chi.Router
	logger zerolog.Logger
	tools  []server.ServerTool
}

// New creates the MCP server. Tools are served at /mcp, a tool index at /tools.
func New(cfg *Config, services *core.Services, logger zerolog.Logger) *Server {
	tools := BuildTools(cfg, services)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(mw.RequestLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(mw.Metrics)

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	s := &Server{router: router, logger: logger, tools: tools}
	router.Get("/tools", s.handleTools)
	router.Mount("/mcp", newStreamable(cfg, tools))

	logger.Info().Int("tools", len(tools)).Msg("mounted MCP endpoint at /mcp")

	return s
}

// Handler returns the streamable HTTP MCP endpoint for mounting on another router.
func Handler(cfg *Config, services *core.Services) http.Handler {
	return newStreamable(cfg, BuildTools(cfg, services))
}

func newStreamable(cfg *Config, tools []server.ServerTool) http.Handler {
	mcpSrv := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithInstructions(cfg.Instructions),
		server.WithToolCapabilities(false),
	)
	mcpSrv.AddTools(tools...)

	return server.NewStreamableHTTPServer(mcpSrv, server.WithEndpointPath("/"))
}

type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handleTools(w http.ResponseWriter, _ *http.Request) {
	list := make([]toolInfo, 0, len(s.tools))
	for _, t := range s.tools {
		list = append(list, toolInfo{Name: t.Tool.Name, Description: t.Tool.Description})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(list)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
