package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"

	"github.com/edvin/snowguard/internal/api/response"
	"github.com/edvin/snowguard/internal/core"
)

// newRequest creates a new HTTP request with an optional JSON body.
func newRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	r := httptest.NewRequest(method, target, &buf)
	r.Header.Set("Content-Type", "application/json")
	return r
}

// newRequestRaw creates a new HTTP request with a raw string body.
func newRequestRaw(method, target, body string) *http.Request {
	r := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// withChiURLParam adds a chi URL parameter to the request context.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// decodeErrorResponse parses the JSON error response body.
func decodeErrorResponse(rec *httptest.ResponseRecorder) response.ErrorResponse {
	var body response.ErrorResponse
	json.Unmarshal(rec.Body.Bytes(), &body)
	return body
}

// nopRecorder discards generation outcomes.
type nopRecorder struct{}

func (nopRecorder) Generated(string)       {}
func (nopRecorder) Rejected(string, error) {}

func testServices() *core.Services {
	return core.NewServices(nopRecorder{})
}
