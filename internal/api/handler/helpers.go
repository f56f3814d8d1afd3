package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/edvin/snowguard/internal/api/request"
	"github.com/edvin/snowguard/internal/api/response"
)

// writeServiceError writes a generation or decoding error with the matching status.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, request.ErrInvalidBody) {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if response.StatusFor(err) == http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("generation failed")
	}
	response.WriteGenerationError(w, err)
}
