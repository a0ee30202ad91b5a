package slogx_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aussiebroadwan/saasadmin/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestHTTPMiddleware_LogsRequest(t *testing.T) {
	var buf bytes.Buffer
	logger := slogx.New(slogx.Config{Service: "test", Env: "test", Level: "debug", Format: "json", Output: &buf})

	h := slogx.HTTPMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slogx.FromContext(r.Context()).Debug("inside handler")
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/brew", nil)
	req.Header.Set(slogx.RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusTeapot, rec.Code)
	require.Equal(t, "req-123", rec.Header().Get(slogx.RequestIDHeader))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var inner, access map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &inner))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &access))

	require.Equal(t, "req-123", inner["req_id"])
	require.Equal(t, "http_request", access["msg"])
	require.EqualValues(t, http.StatusTeapot, access["status"])
	require.Equal(t, "/brew", access["path"])
}

func TestHTTPMiddleware_LogsMatchedPattern(t *testing.T) {
	var buf bytes.Buffer
	logger := slogx.New(slogx.Config{Service: "test", Env: "test", Level: "info", Format: "json", Output: &buf})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/{id}", func(w http.ResponseWriter, r *http.Request) {})
	h := slogx.HTTPMiddleware(logger)(mux)

	for _, path := range []string{"/users/01JAAA", "/nowhere"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var matched, unmatched map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &matched))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &unmatched))

	require.Equal(t, "GET /users/{id}", matched["pattern"])
	require.Equal(t, "/users/01JAAA", matched["path"])
	require.Equal(t, "unmatched", unmatched["pattern"])
	require.EqualValues(t, http.StatusNotFound, unmatched["status"])
}

func TestHTTPMiddleware_GeneratesRequestID(t *testing.T) {
	h := slogx.HTTPMiddleware(slogx.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Len(t, rec.Header().Get(slogx.RequestIDHeader), 26)
}

func TestFromContext_DefaultsToGlobal(t *testing.T) {
	require.NotNil(t, slogx.FromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context()))
}
