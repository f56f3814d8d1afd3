package model

import (
	"errors"
	"strings"
)

var (
	// ErrMissingInput means a required field was empty; the page shows a prompt instead.
	ErrMissingInput = errors.New("missing required input")
	// ErrInvalidIdentifier means a name field cannot be used as an unquoted SQL identifier.
	ErrInvalidIdentifier = errors.New("invalid identifier")
	// ErrInvalidValue covers malformed IPs and out-of-range numbers.
	ErrInvalidValue = errors.New("invalid value")
)

// ValidationError represents a field-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Kind    error  `json:"-"`
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func (e ValidationError) Unwrap() error {
	return e.Kind
}

// ValidationErrors is returned by Validate when one or more fields are rejected.
// errors.Is matches any of the contained kinds.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "; ")
}

func (v ValidationErrors) Unwrap() []error {
	errs := make([]error, len(v))
	for i, e := range v {
		errs[i] = e
	}
	return errs
}

// FieldErrors extracts the field errors from err, or nil if err carries none.
func FieldErrors(err error) ValidationErrors {
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return verrs
	}
	return nil
}
