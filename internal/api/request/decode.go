package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/edvin/snowguard/internal/model"
)

// ErrInvalidBody is returned when the request body is not valid JSON.
var ErrInvalidBody = errors.New("invalid JSON")

// Decode reads a JSON body into v. An empty body leaves v untouched.
// Field validation happens in the generators, not here.
func Decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}
	return nil
}

// DecodePerimeter reads a perimeter config from a JSON body.
// Omitted fields take the form defaults.
func DecodePerimeter(r *http.Request) (model.PerimeterConfig, error) {
	cfg := model.DefaultPerimeterConfig()
	if err := Decode(r, &cfg); err != nil {
		return cfg, err
	}
	return trimPerimeter(cfg), nil
}

// DecodeRBAC reads an RBAC config from a JSON body.
func DecodeRBAC(r *http.Request) (model.RBACConfig, error) {
	var cfg model.RBACConfig
	if err := Decode(r, &cfg); err != nil {
		return cfg, err
	}
	return trimRBAC(cfg), nil
}

// PerimeterFromQuery reads a perimeter config from URL query or form values.
// Absent keys take the form defaults.
func PerimeterFromQuery(q url.Values) (model.PerimeterConfig, error) {
	cfg := model.DefaultPerimeterConfig()
	cfg.CompanyName = q.Get("company_name")
	if q.Has("allowed_ips") {
		cfg.AllowedIPs = q.Get("allowed_ips")
	}
	if q.Has("blocked_ip") {
		cfg.BlockedIP = q.Get("blocked_ip")
	}
	if raw := strings.TrimSpace(q.Get("session_timeout")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return trimPerimeter(cfg), model.ValidationErrors{{
				Field:   "session_timeout",
				Message: "Session idle timeout must be a whole number of minutes",
				Kind:    model.ErrInvalidValue,
			}}
		}
		cfg.SessionTimeout = n
	}
	return trimPerimeter(cfg), nil
}

// RBACFromQuery reads an RBAC config from URL query or form values.
func RBACFromQuery(q url.Values) model.RBACConfig {
	return trimRBAC(model.RBACConfig{
		DatabaseName: q.Get("database_name"),
		SchemaName:   q.Get("schema_name"),
	})
}

func trimPerimeter(cfg model.PerimeterConfig) model.PerimeterConfig {
	cfg.CompanyName = strings.TrimSpace(cfg.CompanyName)
	cfg.AllowedIPs = strings.TrimSpace(cfg.AllowedIPs)
	cfg.BlockedIP = strings.TrimSpace(cfg.BlockedIP)
	return cfg
}

func trimRBAC(cfg model.RBACConfig) model.RBACConfig {
	cfg.DatabaseName = strings.TrimSpace(cfg.DatabaseName)
	cfg.SchemaName = strings.TrimSpace(cfg.SchemaName)
	return cfg
}
