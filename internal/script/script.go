// Package script renders the Snowflake setup scripts from validated configs.
//
// The SQL lives in embedded template assets; this package only substitutes
// values. Every entry point validates its config first and returns no text
// when validation fails, so unsafe identifiers never reach a template.
package script

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/edvin/snowguard/internal/model"
)

//go:embed templates/*.sql.tmpl
var templatesFS embed.FS

var templates = template.Must(
	template.New("").Option("missingkey=error").ParseFS(templatesFS, "templates/*.sql.tmpl"),
)

type perimeterData struct {
	CompanyName    string
	AllowedIPs     string
	BlockedIP      string
	SessionTimeout int
	Names          model.PerimeterNames
}

// Perimeter renders the security perimeter script: network rules and policy,
// session policy and authentication policy.
func Perimeter(cfg model.PerimeterConfig) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", fmt.Errorf("perimeter script: %w", err)
	}
	return render("perimeter.sql.tmpl", perimeterData{
		CompanyName:    cfg.CompanyName,
		AllowedIPs:     cfg.AllowedIPs,
		BlockedIP:      cfg.BlockedIP,
		SessionTimeout: cfg.SessionTimeout,
		Names:          cfg.Names(),
	})
}

// RBAC renders the role hierarchy script for one database and schema.
func RBAC(cfg model.RBACConfig) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", fmt.Errorf("rbac script: %w", err)
	}
	return render("rbac.sql.tmpl", cfg.Names())
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
