package model

import (
	"errors"
	"fmt"
	"net/netip"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,254}$`)

var validate = newValidator()

var fieldLabels = map[string]string{
	"company_name":    "Company name",
	"allowed_ips":     "Allowed IP range",
	"blocked_ip":      "Blocked IP",
	"session_timeout": "Session idle timeout",
	"database_name":   "Database name",
	"schema_name":     "Schema name",
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterValidation("sqlident", func(fl validator.FieldLevel) bool {
		return IsIdentifier(fl.Field().String())
	})
	v.RegisterValidation("ipv4range", func(fl validator.FieldLevel) bool {
		return IsIPv4Range(fl.Field().String())
	})
	return v
}

// IsIdentifier reports whether s is usable as an unquoted SQL identifier:
// letters, digits and underscores, not starting with a digit.
func IsIdentifier(s string) bool {
	return identifierRegex.MatchString(s)
}

// IsIPv4Range reports whether s is an IPv4 address or an IPv4 CIDR range.
// Host bits in a CIDR are accepted, as Snowflake network rules accept them.
func IsIPv4Range(s string) bool {
	if prefix, err := netip.ParsePrefix(s); err == nil {
		return prefix.Addr().Is4()
	}
	addr, err := netip.ParseAddr(s)
	return err == nil && addr.Is4()
}

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}

	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, toValidationError(fe))
	}
	return out
}

func toValidationError(fe validator.FieldError) ValidationError {
	field := fe.Field()
	label := fieldLabels[field]
	if label == "" {
		label = field
	}

	switch fe.Tag() {
	case "required":
		return ValidationError{Field: field, Message: label + " is required", Kind: ErrMissingInput}
	case "sqlident":
		return ValidationError{
			Field:   field,
			Message: label + " may only contain letters, digits and underscores, and must not start with a digit",
			Kind:    ErrInvalidIdentifier,
		}
	case "ipv4":
		return ValidationError{Field: field, Message: label + " must be a valid IPv4 address", Kind: ErrInvalidValue}
	case "ipv4range":
		return ValidationError{Field: field, Message: label + " must be an IPv4 address or CIDR range", Kind: ErrInvalidValue}
	case "max":
		if fe.Kind() == reflect.String {
			return ValidationError{
				Field:   field,
				Message: fmt.Sprintf("%s must be at most %s characters", label, fe.Param()),
				Kind:    ErrInvalidIdentifier,
			}
		}
		return ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s must be between %d and %d minutes", label, MinSessionTimeout, MaxSessionTimeout),
			Kind:    ErrInvalidValue,
		}
	case "min":
		return ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s must be between %d and %d minutes", label, MinSessionTimeout, MaxSessionTimeout),
			Kind:    ErrInvalidValue,
		}
	default:
		return ValidationError{Field: field, Message: label + " is invalid", Kind: ErrInvalidValue}
	}
}
