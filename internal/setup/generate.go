package setup

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/edvin/snowguard/internal/diagram"
	"github.com/edvin/snowguard/internal/model"
	"github.com/edvin/snowguard/internal/script"
)

// GenerateResult describes the files that were generated.
type GenerateResult struct {
	OutputDir string          `json:"output_dir"`
	Files     []GeneratedFile `json:"files"`
}

// GeneratedFile describes a single generated file.
type GeneratedFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// ProgressFunc is called with status messages during generation.
type ProgressFunc func(msg string)

// Generate writes every script and diagram listed in the manifest to outputDir.
// All entries are validated first; nothing is written if any entry is invalid.
func Generate(m *Manifest, outputDir string, progress ProgressFunc) (*GenerateResult, error) {
	if progress == nil {
		progress = func(string) {}
	}
	if m.Perimeter == nil && len(m.RBAC) == 0 {
		return nil, ErrEmptyManifest
	}
	if errs := Validate(m); len(errs) > 0 {
		return nil, errs
	}

	absDir, err := filepath.Abs(outputDir)
	if err != nil {
		absDir = outputDir
	}
	result := &GenerateResult{OutputDir: absDir}

	progress("Rendering scripts...")
	files, err := render(m)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", outputDir, err)
	}

	progress("Writing manifest...")
	if err := WriteManifest(m, filepath.Join(outputDir, ManifestFilename)); err != nil {
		return nil, err
	}

	for _, f := range files {
		progress("Writing " + f.Path + "...")
		if err := os.WriteFile(filepath.Join(outputDir, f.Path), []byte(f.Content), 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", f.Path, err)
		}
		result.Files = append(result.Files, f)
	}

	return result, nil
}

// render produces the file contents for every entry. Entries render concurrently;
// the output order follows the manifest.
func render(m *Manifest) ([]GeneratedFile, error) {
	perEntry := make([][]GeneratedFile, len(m.RBAC)+1)

	var g errgroup.Group
	if m.Perimeter != nil {
		cfg := *m.Perimeter
		g.Go(func() error {
			sql, err := script.Perimeter(cfg)
			if err != nil {
				return err
			}
			perEntry[0] = []GeneratedFile{{Path: cfg.Filename(), Content: sql}}
			return nil
		})
	}
	for i, cfg := range m.RBAC {
		g.Go(func() error {
			files, err := renderRBAC(cfg)
			if err != nil {
				return err
			}
			perEntry[i+1] = files
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var files []GeneratedFile
	for _, entry := range perEntry {
		files = append(files, entry...)
	}
	return files, nil
}

func renderRBAC(cfg model.RBACConfig) ([]GeneratedFile, error) {
	sql, err := script.RBAC(cfg)
	if err != nil {
		return nil, err
	}
	graph, err := diagram.Build(cfg)
	if err != nil {
		return nil, err
	}
	return []GeneratedFile{
		{Path: cfg.Filename(), Content: sql},
		{Path: cfg.DiagramFilename("dot"), Content: diagram.DOT(graph)},
		{Path: cfg.DiagramFilename("mmd"), Content: diagram.Mermaid(graph)},
	}, nil
}

// GenerateFromManifest loads a manifest file and generates its files.
// This is the CLI entry point for `snowguard generate manifest`.
func GenerateFromManifest(manifestPath, outputDir string, progress ProgressFunc) (*GenerateResult, error) {
	m, err := LoadManifest(manifestPath)
	if err != nil {
		return nil, err
	}
	return Generate(m, outputDir, progress)
}
