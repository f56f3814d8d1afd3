package core

import (
	"github.com/edvin/snowguard/internal/metrics"
)

// Recorder receives the outcome of every generation.
type Recorder interface {
	Generated(kind string)
	Rejected(kind string, err error)
}

// PrometheusRecorder records outcomes in the process-wide Prometheus collectors.
type PrometheusRecorder struct{}

func (PrometheusRecorder) Generated(kind string)           { metrics.RecordGenerated(kind) }
func (PrometheusRecorder) Rejected(kind string, err error) { metrics.RecordRejected(kind, err) }

type Services struct {
	Perimeter *PerimeterService
	RBAC      *RBACService
}

// NewServices wires the generator services. A nil recorder records to Prometheus.
func NewServices(rec Recorder) *Services {
	if rec == nil {
		rec = PrometheusRecorder{}
	}
	return &Services{
		Perimeter: NewPerimeterService(rec),
		RBAC:      NewRBACService(rec),
	}
}

// Download is a generated file offered to the user.
type Download struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}
