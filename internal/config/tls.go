package config

import (
	"crypto/tls"
	"fmt"
)

// TLSEnabled reports whether the HTTP server should serve TLS.
func (c *Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

// ServerTLS builds a *tls.Config from the TLS fields.
// Returns nil, nil if no cert/key is configured (plaintext mode).
func (c *Config) ServerTLS() (*tls.Config, error) {
	if !c.TLSEnabled() {
		return nil, nil
	}

	cert, err := tls.LoadX509KeyPair(c.TLSCertFile, c.TLSKeyFile)
	if err != nil {
		return nil, fmt.Errorf("load server cert: %w", err)
	}

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}, nil
}
