package setup

import "github.com/edvin/snowguard/internal/model"

// Manifest is the batch input of `snowguard generate manifest`: at most one
// perimeter and any number of RBAC database/schema pairs.
type Manifest struct {
	Perimeter *model.PerimeterConfig `yaml:"perimeter,omitempty" json:"perimeter,omitempty"`
	RBAC      []model.RBACConfig     `yaml:"rbac,omitempty" json:"rbac,omitempty"`
}

// DefaultManifest returns the example manifest written by `snowguard init`.
func DefaultManifest() *Manifest {
	perimeter := model.DefaultPerimeterConfig()
	perimeter.CompanyName = "acme"
	return &Manifest{
		Perimeter: &perimeter,
		RBAC: []model.RBACConfig{
			{DatabaseName: "MKT_DB", SchemaName: "CRM"},
		},
	}
}

// applyDefaults fills perimeter fields left out of the manifest with the form defaults.
// An explicit session_timeout, including 0, is kept so validation can reject it.
func (m *Manifest) applyDefaults(timeoutSet bool) {
	if m.Perimeter == nil {
		return
	}
	d := model.DefaultPerimeterConfig()
	if m.Perimeter.AllowedIPs == "" {
		m.Perimeter.AllowedIPs = d.AllowedIPs
	}
	if m.Perimeter.BlockedIP == "" {
		m.Perimeter.BlockedIP = d.BlockedIP
	}
	if !timeoutSet {
		m.Perimeter.SessionTimeout = d.SessionTimeout
	}
}
