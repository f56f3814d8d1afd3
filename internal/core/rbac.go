package core

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/edvin/snowguard/internal/diagram"
	"github.com/edvin/snowguard/internal/docs"
	"github.com/edvin/snowguard/internal/metrics"
	"github.com/edvin/snowguard/internal/model"
	"github.com/edvin/snowguard/internal/script"
)

// Diagram formats.
const (
	FormatJSON    = "json"
	FormatDOT     = "dot"
	FormatMermaid = "mermaid"
)

// RBACPreview is everything the RBAC page shows for one input.
// When Ready is false only Config and Prompt are set.
type RBACPreview struct {
	Config       model.RBACConfig `json:"config"`
	Ready        bool             `json:"ready"`
	Prompt       string           `json:"prompt,omitempty"`
	Filename     string           `json:"filename,omitempty"`
	Names        *model.RoleNames `json:"names,omitempty"`
	SQL          string           `json:"sql,omitempty"`
	OverviewHTML string           `json:"overview_html,omitempty"`
	Graph        *diagram.Graph   `json:"graph,omitempty"`
	Mermaid      string           `json:"mermaid,omitempty"`
}

type RBACService struct {
	rec Recorder
}

func NewRBACService(rec Recorder) *RBACService {
	return &RBACService{rec: rec}
}

// Preview renders the page output for cfg. Missing input yields the prompt.
func (s *RBACService) Preview(ctx context.Context, cfg model.RBACConfig) (*RBACPreview, error) {
	if !cfg.Ready() {
		return &RBACPreview{Config: cfg, Prompt: model.RBACPrompt}, nil
	}

	sql, err := s.generate(ctx, cfg)
	if err != nil {
		return nil, err
	}

	g, err := diagram.Build(cfg)
	if err != nil {
		return nil, err
	}

	overview, err := docs.Render(docs.RBACOverview, cfg)
	if err != nil {
		return nil, fmt.Errorf("rbac overview: %w", err)
	}

	names := cfg.Names()
	return &RBACPreview{
		Config:       cfg,
		Ready:        true,
		Filename:     cfg.Filename(),
		Names:        &names,
		SQL:          sql,
		OverviewHTML: overview.HTML,
		Graph:        g,
		Mermaid:      diagram.Mermaid(g),
	}, nil
}

// Script returns the downloadable RBAC script.
func (s *RBACService) Script(ctx context.Context, cfg model.RBACConfig) (*Download, error) {
	sql, err := s.generate(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Download{Filename: cfg.Filename(), Content: sql}, nil
}

// Diagram returns the role hierarchy graph.
func (s *RBACService) Diagram(ctx context.Context, cfg model.RBACConfig) (*diagram.Graph, error) {
	g, err := diagram.Build(cfg)
	if err != nil {
		s.rec.Rejected(metrics.KindDiagram, err)
		zerolog.Ctx(ctx).Debug().Err(err).Msg("rbac diagram rejected")
		return nil, err
	}
	s.rec.Generated(metrics.KindDiagram)
	return g, nil
}

// DiagramText returns the diagram in a text format ("dot" or "mermaid") as a download.
func (s *RBACService) DiagramText(ctx context.Context, cfg model.RBACConfig, format string) (*Download, error) {
	var render func(*diagram.Graph) string
	var ext string
	switch format {
	case FormatDOT:
		render, ext = diagram.DOT, "dot"
	case FormatMermaid:
		render, ext = diagram.Mermaid, "mmd"
	default:
		return nil, fmt.Errorf("%w: unsupported diagram format %q", model.ErrInvalidValue, format)
	}

	g, err := s.Diagram(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Download{Filename: cfg.DiagramFilename(ext), Content: render(g)}, nil
}

func (s *RBACService) generate(ctx context.Context, cfg model.RBACConfig) (string, error) {
	logger := zerolog.Ctx(ctx)

	sql, err := script.RBAC(cfg)
	if err != nil {
		s.rec.Rejected(metrics.KindRBAC, err)
		logger.Debug().Err(err).
			Str("database_name", cfg.DatabaseName).
			Str("schema_name", cfg.SchemaName).
			Msg("rbac script rejected")
		return "", err
	}

	s.rec.Generated(metrics.KindRBAC)
	logger.Debug().
		Str("database_name", cfg.DatabaseName).
		Str("schema_name", cfg.SchemaName).
		Int("bytes", len(sql)).
		Msg("rbac script generated")
	return sql, nil
}
