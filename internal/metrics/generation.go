package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/edvin/snowguard/internal/model"
)

// Script and artifact kinds used as label values.
const (
	KindPerimeter = "perimeter"
	KindRBAC      = "rbac"
	KindDiagram   = "diagram"
)

// Rejection reasons used as label values.
const (
	ReasonMissingInput      = "missing_input"
	ReasonInvalidIdentifier = "invalid_identifier"
	ReasonInvalidValue      = "invalid_value"
	ReasonOther             = "other"
)

var (
	scriptsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snowguard_scripts_generated_total",
			Help: "Total number of generated scripts and diagrams",
		},
		[]string{"kind"},
	)

	generationRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snowguard_generation_rejected_total",
			Help: "Total number of generation requests rejected by validation",
		},
		[]string{"kind", "reason"},
	)
)

// RecordGenerated counts a successful generation of kind.
func RecordGenerated(kind string) {
	scriptsGenerated.WithLabelValues(kind).Inc()
}

// RecordRejected counts a rejected generation of kind, labelled by the cause in err.
func RecordRejected(kind string, err error) {
	generationRejected.WithLabelValues(kind, Reason(err)).Inc()
}

// Reason maps a generation error to its rejection label.
// Missing input wins over the other causes when several fields failed.
func Reason(err error) string {
	switch {
	case errors.Is(err, model.ErrMissingInput):
		return ReasonMissingInput
	case errors.Is(err, model.ErrInvalidIdentifier):
		return ReasonInvalidIdentifier
	case errors.Is(err, model.ErrInvalidValue):
		return ReasonInvalidValue
	default:
		return ReasonOther
	}
}
