package setup

import (
	"errors"
	"fmt"
	"strings"

	"github.com/edvin/snowguard/internal/model"
)

// ErrEmptyManifest is returned for a manifest with nothing to generate.
var ErrEmptyManifest = errors.New("manifest lists no perimeter and no rbac entries")

// Validate checks every entry of the manifest and returns all field errors.
// Field names are prefixed with the entry path, e.g. "rbac[1].schema_name".
func Validate(m *Manifest) model.ValidationErrors {
	var errs model.ValidationErrors
	add := func(prefix string, err error) {
		for _, fe := range model.FieldErrors(err) {
			fe.Field = prefix + fe.Field
			errs = append(errs, fe)
		}
	}

	if m.Perimeter != nil {
		add("perimeter.", m.Perimeter.Validate())
	}

	// Each entry creates the database-scoped roles DB_*_DBR_<db> and SC_*_DBR_<db>
	// with CREATE OR REPLACE, so a second entry on the same database would drop
	// the grants of the first. Unquoted identifiers are case-insensitive.
	seen := make(map[string]int)
	for i, cfg := range m.RBAC {
		prefix := fmt.Sprintf("rbac[%d].", i)
		if err := cfg.Validate(); err != nil {
			add(prefix, err)
			continue
		}
		key := strings.ToUpper(cfg.DatabaseName)
		if first, ok := seen[key]; ok {
			msg := fmt.Sprintf("database %s is already listed as rbac[%d]; use one entry per database", cfg.DatabaseName, first)
			errs = append(errs, model.ValidationError{
				Field:   prefix + "database_name",
				Message: msg,
				Kind:    model.ErrInvalidValue,
			})
			continue
		}
		seen[key] = i
	}

	return errs
}
