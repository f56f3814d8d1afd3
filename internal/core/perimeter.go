package core

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/edvin/snowguard/internal/docs"
	"github.com/edvin/snowguard/internal/metrics"
	"github.com/edvin/snowguard/internal/model"
	"github.com/edvin/snowguard/internal/script"
)

// PerimeterPreview is everything the perimeter page shows for one input.
// When Ready is false only Config and Prompt are set.
type PerimeterPreview struct {
	Config       model.PerimeterConfig `json:"config"`
	Ready        bool                  `json:"ready"`
	Prompt       string                `json:"prompt,omitempty"`
	Filename     string                `json:"filename,omitempty"`
	Names        *model.PerimeterNames `json:"names,omitempty"`
	SQL          string                `json:"sql,omitempty"`
	OverviewHTML string                `json:"overview_html,omitempty"`
}

type PerimeterService struct {
	rec Recorder
}

func NewPerimeterService(rec Recorder) *PerimeterService {
	return &PerimeterService{rec: rec}
}

// Defaults returns the form defaults.
func (s *PerimeterService) Defaults() model.PerimeterConfig {
	return model.DefaultPerimeterConfig()
}

// Preview renders the page output for cfg. Missing input is not an error: the
// result carries the prompt instead. Invalid input returns the validation error.
func (s *PerimeterService) Preview(ctx context.Context, cfg model.PerimeterConfig) (*PerimeterPreview, error) {
	if !cfg.Ready() {
		return &PerimeterPreview{Config: cfg, Prompt: model.PerimeterPrompt}, nil
	}

	sql, err := s.generate(ctx, cfg)
	if err != nil {
		return nil, err
	}

	overview, err := docs.Render(docs.PerimeterOverview, cfg)
	if err != nil {
		return nil, fmt.Errorf("perimeter overview: %w", err)
	}

	names := cfg.Names()
	return &PerimeterPreview{
		Config:       cfg,
		Ready:        true,
		Filename:     cfg.Filename(),
		Names:        &names,
		SQL:          sql,
		OverviewHTML: overview.HTML,
	}, nil
}

// Script returns the downloadable perimeter script.
func (s *PerimeterService) Script(ctx context.Context, cfg model.PerimeterConfig) (*Download, error) {
	sql, err := s.generate(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Download{Filename: cfg.Filename(), Content: sql}, nil
}

func (s *PerimeterService) generate(ctx context.Context, cfg model.PerimeterConfig) (string, error) {
	logger := zerolog.Ctx(ctx)

	sql, err := script.Perimeter(cfg)
	if err != nil {
		s.rec.Rejected(metrics.KindPerimeter, err)
		logger.Debug().Err(err).Str("company_name", cfg.CompanyName).Msg("perimeter script rejected")
		return "", err
	}

	s.rec.Generated(metrics.KindPerimeter)
	logger.Debug().Str("company_name", cfg.CompanyName).Int("bytes", len(sql)).Msg("perimeter script generated")
	return sql, nil
}
