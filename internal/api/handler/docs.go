package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edvin/snowguard/internal/api/response"
	"github.com/edvin/snowguard/internal/docs"
)

type Docs struct{}

func NewDocs() *Docs {
	return &Docs{}
}

// List godoc
//
//	@Summary		List documentation pages
//	@Tags			Docs
//	@Success		200	{array}	string
//	@Router			/docs [get]
func (h *Docs) List(w http.ResponseWriter, r *http.Request) {
	response.WriteJSON(w, http.StatusOK, docs.StaticPages())
}

// Get godoc
//
//	@Summary		Get a documentation page
//	@Tags			Docs
//	@Param			page	path		string	true	"Page name"
//	@Success		200		{object}	docs.Page
//	@Failure		404		{object}	response.ErrorResponse
//	@Router			/docs/{page} [get]
func (h *Docs) Get(w http.ResponseWriter, r *http.Request) {
	page := chi.URLParam(r, "page")
	if !docs.Static(page) {
		response.WriteError(w, http.StatusNotFound, "unknown documentation page: "+page)
		return
	}

	p, err := docs.Render(page, nil)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, p)
}
