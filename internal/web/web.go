// Package web serves the server-rendered configuration pages.
package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/edvin/snowguard/internal/api/request"
	"github.com/edvin/snowguard/internal/core"
	"github.com/edvin/snowguard/internal/docs"
	"github.com/edvin/snowguard/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = map[string]*template.Template{
	"home":      parsePage("home.html"),
	"perimeter": parsePage("perimeter.html"),
	"rbac":      parsePage("rbac.html"),
}

func parsePage(name string) *template.Template {
	return template.Must(template.New(name).ParseFS(templateFS, "templates/layout.html", "templates/"+name))
}

type tab struct {
	ID    string
	Label string
}

var (
	perimeterTabs = []tab{{"overview", "Policy Overview"}, {"sql", "Generated SQL"}, {"docs", "Documentation"}}
	rbacTabs      = []tab{{"overview", "Overview"}, {"diagram", "Diagram"}, {"sql", "Generated SQL"}, {"docs", "Documentation"}}
)

// page is the data shared by every template.
type page struct {
	Title  string
	Active string
	Tabs   []tab
	Errors model.ValidationErrors
	Prompt string
	Docs   template.HTML
}

// FieldError returns the message for field, or "".
func (p page) FieldError(field string) string {
	for _, e := range p.Errors {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

type perimeterPage struct {
	page
	Config      model.PerimeterConfig
	MinTimeout  int
	MaxTimeout  int
	Overview    template.HTML
	SQL         string
	DownloadURL string
}

type rbacPage struct {
	page
	Config      model.RBACConfig
	Overview    template.HTML
	Mermaid     string
	SQL         string
	DownloadURL string
	DiagramURL  string
}

type Handler struct {
	services *core.Services
}

func NewHandler(services *core.Services) *Handler {
	return &Handler{services: services}
}

// Routes mounts the pages on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.Home)
	r.Get("/perimeter", h.Perimeter)
	r.Get("/rbac", h.RBAC)
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	d, err := docs.Render(docs.Home, nil)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, "home", http.StatusOK, page{Title: "Home", Docs: template.HTML(d.HTML)})
}

func (h *Handler) Perimeter(w http.ResponseWriter, r *http.Request) {
	d, err := docs.Render(docs.Perimeter, nil)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	data := perimeterPage{
		page:       page{Title: "Perimeter setup", Active: "perimeter", Tabs: perimeterTabs, Docs: template.HTML(d.HTML)},
		MinTimeout: model.MinSessionTimeout,
		MaxTimeout: model.MaxSessionTimeout,
	}

	cfg, err := request.PerimeterFromQuery(r.URL.Query())
	data.Config = cfg
	if err == nil {
		var preview *core.PerimeterPreview
		preview, err = h.services.Perimeter.Preview(r.Context(), cfg)
		if err == nil {
			data.Prompt = preview.Prompt
			data.Overview = template.HTML(preview.OverviewHTML)
			data.SQL = preview.SQL
			data.DownloadURL = "/perimeter/download?" + perimeterQuery(cfg).Encode()
		}
	}

	h.renderResult(w, r, "perimeter", &data.page, &data, err)
}

func (h *Handler) RBAC(w http.ResponseWriter, r *http.Request) {
	d, err := docs.Render(docs.RBAC, nil)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	cfg := request.RBACFromQuery(r.URL.Query())
	data := rbacPage{
		page:   page{Title: "RBAC setup", Active: "rbac", Tabs: rbacTabs, Docs: template.HTML(d.HTML)},
		Config: cfg,
	}

	preview, err := h.services.RBAC.Preview(r.Context(), cfg)
	if err == nil {
		q := rbacQuery(cfg)
		data.Prompt = preview.Prompt
		data.Overview = template.HTML(preview.OverviewHTML)
		data.Mermaid = preview.Mermaid
		data.SQL = preview.SQL
		data.DownloadURL = "/rbac/download?" + q.Encode()
		q.Set("format", core.FormatDOT)
		data.DiagramURL = "/rbac/diagram?" + q.Encode()
	}

	h.renderResult(w, r, "rbac", &data.page, &data, err)
}

// renderResult renders data, switching to 422 with field errors when err is a
// validation error. p must point into data.
func (h *Handler) renderResult(w http.ResponseWriter, r *http.Request, name string, p *page, data any, err error) {
	if err == nil {
		h.render(w, r, name, http.StatusOK, data)
		return
	}
	fields := model.FieldErrors(err)
	if fields == nil {
		h.fail(w, r, err)
		return
	}
	p.Errors = fields
	h.render(w, r, name, http.StatusUnprocessableEntity, data)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, status int, data any) {
	var buf bytes.Buffer
	if err := pages[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	zerolog.Ctx(r.Context()).Error().Err(err).Msg("render page")
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func perimeterQuery(cfg model.PerimeterConfig) url.Values {
	return url.Values{
		"company_name":    {cfg.CompanyName},
		"allowed_ips":     {cfg.AllowedIPs},
		"blocked_ip":      {cfg.BlockedIP},
		"session_timeout": {strconv.Itoa(cfg.SessionTimeout)},
	}
}

func rbacQuery(cfg model.RBACConfig) url.Values {
	return url.Values{
		"database_name": {cfg.DatabaseName},
		"schema_name":   {cfg.SchemaName},
	}
}
