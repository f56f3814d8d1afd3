package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/edvin/snowguard/internal/api"
	"github.com/edvin/snowguard/internal/config"
	"github.com/edvin/snowguard/internal/core"
	"github.com/edvin/snowguard/internal/logging"
	"github.com/edvin/snowguard/internal/mcpserver"
	"github.com/edvin/snowguard/internal/metrics"
)

func main() {
	openFlag := flag.Bool("open", false, "Open the wizard in the default browser after startup")
	mcpConfigFlag := flag.String("mcp-config", "", "Path to mcp.yaml (optional)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate("server"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg)

	mcpCfg := mcpserver.DefaultConfig()
	if *mcpConfigFlag != "" {
		mcpCfg, err = mcpserver.LoadConfig(*mcpConfigFlag)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to load mcp config")
		}
	}

	services := core.NewServices(nil)

	srv := api.NewServer(logger, services, cfg)
	srv.Mount("/mcp", mcpserver.Handler(mcpCfg, services))

	tlsConfig, err := cfg.ServerTLS()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure TLS")
	}

	servers := []*http.Server{{
		Addr:         cfg.HTTPListenAddr,
		Handler:      srv,
		TLSConfig:    tlsConfig,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}}
	if cfg.MetricsListenAddr != "" {
		servers = append(servers, metrics.NewServer(cfg.MetricsListenAddr))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	for _, s := range servers {
		g.Go(func() error {
			logger.Info().Str("addr", s.Addr).Bool("tls", s.TLSConfig != nil).Msg("starting server")
			var err error
			if s.TLSConfig != nil {
				err = s.ListenAndServeTLS("", "")
			} else {
				err = s.ListenAndServe()
			}
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve %s: %w", s.Addr, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		logger.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		for _, s := range servers {
			if err := s.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Str("addr", s.Addr).Msg("shutdown error")
			}
		}
		return nil
	})

	url := cfg.BaseURL()
	logger.Info().Str("url", url).Msg("security setup wizard available")
	if *openFlag {
		openBrowser(logger, url)
	}

	if err := g.Wait(); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}

func openBrowser(logger zerolog.Logger, url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return
	}
	if err := cmd.Start(); err != nil {
		logger.Warn().Err(err).Msg("could not open browser")
	}
}
