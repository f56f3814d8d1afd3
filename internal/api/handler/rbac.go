package handler

import (
	"net/http"

	"github.com/edvin/snowguard/internal/api/request"
	"github.com/edvin/snowguard/internal/api/response"
	"github.com/edvin/snowguard/internal/core"
	"github.com/edvin/snowguard/internal/model"
)

type RBAC struct {
	svc *core.RBACService
}

func NewRBAC(svc *core.RBACService) *RBAC {
	return &RBAC{svc: svc}
}

// Preview godoc
//
//	@Summary		Preview the RBAC script and diagram
//	@Description	Returns ready=false and a prompt until both names are given.
//	@Tags			RBAC
//	@Param			body	body		model.RBACConfig	true	"RBAC config"
//	@Success		200		{object}	core.RBACPreview
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		422		{object}	response.ErrorResponse
//	@Router			/rbac/preview [post]
func (h *RBAC) Preview(w http.ResponseWriter, r *http.Request) {
	cfg, err := request.DecodeRBAC(r)
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
//	@Summary		Download the RBAC script
//	@Tags			RBAC
//	@Param			body	body		model.RBACConfig	true	"RBAC config"
//	@Produce		plain
//	@Success		200		{string}	string
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		422		{object}	response.ErrorResponse
//	@Router			/rbac/script [post]
func (h *RBAC) Script(w http.ResponseWriter, r *http.Request) {
	cfg, err := request.DecodeRBAC(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.download(w, r, cfg)
}

// Download serves the RBAC script for the query-string config used by the form pages.
func (h *RBAC) Download(w http.ResponseWriter, r *http.Request) {
	h.download(w, r, request.RBACFromQuery(r.URL.Query()))
}

func (h *RBAC) download(w http.ResponseWriter, r *http.Request, cfg model.RBACConfig) {
	dl, err := h.svc.Script(r.Context(), cfg)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.WriteDownload(w, dl.Filename, dl.Content)
}

// Diagram godoc
//
//	@Summary		Describe the RBAC role hierarchy
//	@Description	format=json (default) returns the graph; dot and mermaid return renderer input as text.
//	@Tags			RBAC
//	@Param			body	body		model.RBACConfig	true	"RBAC config"
//	@Param			format	query		string				false	"json, dot or mermaid"
//	@Success		200		{object}	diagram.Graph
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		422		{object}	response.ErrorResponse
//	@Router			/rbac/diagram [post]
func (h *RBAC) Diagram(w http.ResponseWriter, r *http.Request) {
	cfg, err := request.DecodeRBAC(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" || format == core.FormatJSON {
		g, err := h.svc.Diagram(r.Context(), cfg)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		response.WriteJSON(w, http.StatusOK, g)
		return
	}

	dl, err := h.svc.DiagramText(r.Context(), cfg, format)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.WriteText(w, http.StatusOK, "text/plain; charset=utf-8", dl.Content)
}

// DiagramDownload serves the diagram as a .dot or .mmd attachment for the
// query-string config used by the form pages. format defaults to dot.
func (h *RBAC) DiagramDownload(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = core.FormatDOT
	}

	dl, err := h.svc.DiagramText(r.Context(), request.RBACFromQuery(q), format)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.WriteDownload(w, dl.Filename, dl.Content)
}
