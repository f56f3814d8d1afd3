package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

type Config struct {
	HTTPListenAddr string
	// MetricsListenAddr serves /metrics and /healthz on a separate listener.
	// Empty keeps /metrics on the main router only.
	MetricsListenAddr string
	MCPListenAddr     string
	LogLevel          string
	ServiceName       string
	// PublicBaseURL is the externally reachable URL of the server, used in
	// links printed at startup.
	PublicBaseURL string

	TLSCertFile string
	TLSKeyFile  string
}

func Load() (*Config, error) {
	cfg := &Config{
		HTTPListenAddr:    getEnv("HTTP_LISTEN_ADDR", ":8080"),
		MetricsListenAddr: getEnv("METRICS_LISTEN_ADDR", ""),
		MCPListenAddr:     getEnv("MCP_LISTEN_ADDR", ":8091"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		ServiceName:       getEnv("SERVICE_NAME", "snowguard"),
		PublicBaseURL:     getEnv("PUBLIC_BASE_URL", ""),
		TLSCertFile:       getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:        getEnv("TLS_KEY_FILE", ""),
	}

	return cfg, nil
}

// Validate checks that the keys required by the named binary are set.
func (c *Config) Validate(service string) error {
	var missing []string

	switch service {
	case "server":
		if c.HTTPListenAddr == "" {
			missing = append(missing, "HTTP_LISTEN_ADDR")
		}
	case "mcp-server":
		if c.MCPListenAddr == "" {
			missing = append(missing, "MCP_LISTEN_ADDR")
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	if c.LogLevel != "" {
		if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
		}
	}

	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		return fmt.Errorf("TLS_CERT_FILE and TLS_KEY_FILE must both be set")
	}

	return nil
}

// BaseURL returns PublicBaseURL, or a localhost URL derived from the listen address.
func (c *Config) BaseURL() string {
	if c.PublicBaseURL != "" {
		return strings.TrimRight(c.PublicBaseURL, "/")
	}
	scheme := "http"
	if c.TLSEnabled() {
		scheme = "https"
	}
	addr := c.HTTPListenAddr
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return scheme + "://" + addr
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
