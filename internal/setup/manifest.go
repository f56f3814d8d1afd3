package setup

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const ManifestFilename = "snowguard.yaml"

// LoadManifest reads a manifest from disk. Omitted perimeter fields take the form defaults.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	var present struct {
		Perimeter struct {
			SessionTimeout *int `yaml:"session_timeout"`
		} `yaml:"perimeter"`
	}
	if err := yaml.Unmarshal(data, &present); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	m.applyDefaults(present.Perimeter.SessionTimeout != nil)

	return &m, nil
}

// WriteManifest writes the manifest to disk.
func WriteManifest(m *Manifest, path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	header := "# Snowguard manifest.\n" +
		"# Lists the perimeter and the database/schema pairs to generate scripts for.\n" +
		"# Run `snowguard generate manifest -f " + filepath.Base(path) + "` to write the SQL and diagrams.\n\n"

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	if err := os.WriteFile(path, []byte(header+string(data)), 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}
