package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edvin/snowguard/internal/config"
	"github.com/edvin/snowguard/internal/core"
	"github.com/edvin/snowguard/internal/logging"
	"github.com/edvin/snowguard/internal/mcpserver"
)

func main() {
	configPath := flag.String("config", "mcp.yaml", "Path to mcp.yaml configuration file (optional)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate("mcp-server"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg)

	mcpCfg, err := mcpserver.LoadConfig(*configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logger.Info().Str("path", *configPath).Msg("no mcp config found, using defaults")
		mcpCfg = mcpserver.DefaultConfig()
	case err != nil:
		logger.Fatal().Err(err).Msg("failed to load mcp config")
	}

	srv := mcpserver.New(mcpCfg, core.NewServices(nil), logger)

	tlsConfig, err := cfg.ServerTLS()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure TLS")
	}

	httpSrv := &http.Server{
		Addr:         cfg.MCPListenAddr,
		Handler:      srv,
		TLSConfig:    tlsConfig,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info().Str("addr", cfg.MCPListenAddr).Msg("MCP server starting")
		var err error
		if tlsConfig != nil {
			err = httpSrv.ListenAndServeTLS("", "")
		} else {
			err = httpSrv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	<-done
	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
	}
}
