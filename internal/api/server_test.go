package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edvin/snowguard/internal/config"
	"github.com/edvin/snowguard/internal/core"
)

type nopRecorder struct{}

func (nopRecorder) Generated(string)       {}
func (nopRecorder) Rejected(string, error) {}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := NewServer(zerolog.Nop(), core.NewServices(nopRecorder{}), &config.Config{HTTPListenAddr: ":0"})
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts
}

func TestServer_Healthz(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestServer_Metrics(t *testing.T) {
	ts := newTestServer(t)

	_, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "http_requests_total")
}

func TestServer_OpenAPI(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/openapi.json")
	require.NoError(t, err)
	defer resp.Body.Close()

	var doc map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Equal(t, "3.0.3", doc["openapi"])
	assert.Contains(t, doc["paths"], "/rbac/diagram")
}

func TestServer_PerimeterScriptRoundTrip(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/v1/perimeter/script", "application/json",
		bytes.NewBufferString(`{"company_name":"acme","allowed_ips":"10.0.0.0/8","blocked_ip":"1.2.3.4","session_timeout":45}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "attachment; filename=security_perimeter_setup_acme.sql", resp.Header.Get("Content-Disposition"))
	assert.Contains(t, string(raw), "ALLOWED_NETWORK_RULE_LIST = (acme_allowed_ips)")
}

func TestServer_RBACDownloadMatchesAPI(t *testing.T) {
	ts := newTestServer(t)

	get, err := http.Get(ts.URL + "/rbac/download?database_name=MKT_DB&schema_name=CRM")
	require.NoError(t, err)
	defer get.Body.Close()
	fromPage, _ := io.ReadAll(get.Body)

	post, err := http.Post(ts.URL+"/api/v1/rbac/script", "application/json",
		strings.NewReader(`{"database_name":"MKT_DB","schema_name":"CRM"}`))
	require.NoError(t, err)
	defer post.Body.Close()
	fromAPI, _ := io.ReadAll(post.Body)

	assert.Equal(t, http.StatusOK, get.StatusCode)
	assert.Equal(t, http.StatusOK, post.StatusCode)
	assert.Equal(t, string(fromAPI), string(fromPage))
}

func TestServer_Pages(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/", "/perimeter", "/rbac"} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"), path)
	}
}

func TestServer_DocsPage(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/docs/rbac")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp2, err := http.Get(ts.URL + "/api/v1/docs/missing")
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)
}

func TestServer_Mount(t *testing.T) {
	srv := NewServer(zerolog.Nop(), core.NewServices(nopRecorder{}), &config.Config{})
	srv.Mount("/mcp", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/mcp", nil))
	assert.Equal(t, http.StatusAccepted, rec.Code)
}
