package mcpserver

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultInstructions = "Snowflake security setup generator. Generates the security perimeter script " +
	"(network rules, network policy, session and authentication policies), the RBAC script for a database " +
	"and schema, and the RBAC role hierarchy as a diagram. Tools only return text; nothing is executed " +
	"against Snowflake."

// Config is the MCP server configuration loaded from mcp.yaml. Every field is optional.
type Config struct {
	Instructions string                  `yaml:"instructions"`
	Overrides    map[string]ToolOverride `yaml:"overrides"`
}

// ToolOverride allows per-tool customization.
type ToolOverride struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Disabled    bool   `yaml:"disabled"`
}

// LoadConfig reads and parses the mcp.yaml configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return ParseConfig(data)
}

// ParseConfig parses mcp.yaml configuration from raw bytes.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse mcp config: %w", err)
	}
	if cfg.Instructions == "" {
		cfg.Instructions = defaultInstructions
	}
	return &cfg, nil
}

// DefaultConfig is used when no mcp.yaml is present.
func DefaultConfig() *Config {
	return &Config{Instructions: defaultInstructions}
}

// apply renames and redescribes a tool according to its override.
// It reports false when the tool is disabled.
func (c *Config) apply(name, desc string) (string, string, bool) {
	o, ok := c.Overrides[name]
	if !ok {
		return name, desc, true
	}
	if o.Disabled {
		return "", "", false
	}
	if o.Name != "" {
		name = o.Name
	}
	if o.Description != "" {
		desc = o.Description
	}
	return name, desc, true
}
