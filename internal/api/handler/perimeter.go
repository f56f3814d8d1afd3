package handler

import (
	"net/http"

	"github.com/edvin/snowguard/internal/api/request"
	"github.com/edvin/snowguard/internal/api/response"
	"github.com/edvin/snowguard/internal/core"
	"github.com/edvin/snowguard/internal/model"
)

type Perimeter struct {
	svc *core.PerimeterService
}

func NewPerimeter(svc *core.PerimeterService) *Perimeter {
	return &Perimeter{svc: svc}
}

// Defaults godoc
//
//	@Summary		Get perimeter form defaults
//	@Tags			Perimeter
//	@Success		200	{object}	model.PerimeterConfig
//	@Router			/perimeter/defaults [get]
func (h *Perimeter) Defaults(w http.ResponseWriter, r *http.Request) {
	response.WriteJSON(w, http.StatusOK, h.svc.Defaults())
}

// Preview godoc
//
//	@Summary		Preview the perimeter script
//	@Description	Returns ready=false and a prompt until a company name is given.
//	@Tags			Perimeter
//	@Param			body	body		model.PerimeterConfig	true	"Perimeter config"
//	@Success		200		{object}	core.PerimeterPreview
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		422		{object}	response.ErrorResponse
//	@Router			/perimeter/preview [post]
func (h *Perimeter) Preview(w http.ResponseWriter, r *http.Request) {
	cfg, err := request.DecodePerimeter(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	preview, err := h.svc.Preview(r.Context(), cfg)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, preview)
}

// Script godoc
//
//	@Summary		Download the perimeter script
//	@Tags			Perimeter
//	@Param			body	body		model.PerimeterConfig	true	"Perimeter config"
//	@Produce		plain
//	@Success		200		{string}	string
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		422		{object}	response.ErrorResponse
//	@Router			/perimeter/script [post]
func (h *Perimeter) Script(w http.ResponseWriter, r *http.Request) {
	cfg, err := request.DecodePerimeter(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.download(w, r, cfg)
}

// Download serves the perimeter script for the query-string config used by the form pages.
func (h *Perimeter) Download(w http.ResponseWriter, r *http.Request) {
	cfg, err := request.PerimeterFromQuery(r.URL.Query())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.download(w, r, cfg)
}

func (h *Perimeter) download(w http.ResponseWriter, r *http.Request, cfg model.PerimeterConfig) {
	dl, err := h.svc.Script(r.Context(), cfg)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.WriteDownload(w, dl.Filename, dl.Content)
}
