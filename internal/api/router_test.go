package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() http.Handler {
	return NewRouter(RouterConfig{
		Analyzer:       &mockAnalyzer{},
		MaxBodySize:    1024,
		RequestTimeout: 60 * time.Second,
	})
}

func TestPingEndpoint(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()

	newTestRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, ".", w.Body.String())
}

func TestCORSHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/health", nil)
	w := httptest.NewRecorder()

	newTestRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
}

func TestRoutes(t *testing.T) {
	testCases := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
	}{
		{"health", http.MethodGet, "/api/health", "", http.StatusOK},
		{"analyze", http.MethodPost, "/api/analyze", `{"domain":"example.com"}`, http.StatusOK},
		{"analyze batch", http.MethodPost, "/api/analyze/batch", `{"domains":["example.com"]}`, http.StatusOK},
		{"extract", http.MethodPost, "/api/extract", `{"text":"see example.com"}`, http.StatusOK},
		{"intel hydrate unconfigured", http.MethodPost, "/api/intel/hydrate", "", http.StatusServiceUnavailable},
		{"intel status unconfigured", http.MethodGet, "/api/intel/status", "", http.StatusServiceUnavailable},
		{"analyze wrong method", http.MethodGet, "/api/analyze", "", http.StatusMethodNotAllowed},
		{"unknown route", http.MethodGet, "/api/unknown", "", http.StatusNotFound},
	}

	router := newTestRouter()

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, bytes.NewBufferString(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tc.expectedStatus, w.Code, w.Body.String())
		})
	}
}

func TestRouterAppliesBodyLimit(t *testing.T) {
	body := `{"domain":"` + string(bytes.Repeat([]byte("a"), 2048)) + `.com"}`

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	newTestRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, errCodeInvalidRequest, resp.Error.Code)
}

func TestRouterDefaults(t *testing.T) {
	router := NewRouter(RouterConfig{Analyzer: &mockAnalyzer{}})
	require.NotNil(t, router)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
