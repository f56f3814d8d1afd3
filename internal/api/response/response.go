package response

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/edvin/snowguard/internal/model"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error  string                  `json:"error"`
	Fields []model.ValidationError `json:"fields,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Error: message})
}

// StatusFor maps a generation error to an HTTP status: invalid values are 422,
// input that is only missing is 400, anything else is 500.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrInvalidIdentifier), errors.Is(err, model.ErrInvalidValue):
		return http.StatusUnprocessableEntity
	case errors.Is(err, model.ErrMissingInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// WriteGenerationError writes err with its field errors, if any.
func WriteGenerationError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	body := ErrorResponse{Error: err.Error(), Fields: model.FieldErrors(err)}
	if status == http.StatusInternalServerError {
		body = ErrorResponse{Error: "internal error"}
	}
	WriteJSON(w, status, body)
}

// WriteDownload sends content as a plain text attachment named filename.
func WriteDownload(w http.ResponseWriter, filename, content string) {
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	WriteText(w, http.StatusOK, "text/plain; charset=utf-8", content)
}

// WriteText writes body verbatim with the given content type.
func WriteText(w http.ResponseWriter, status int, contentType, body string) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	w.Write([]byte(body))
}
