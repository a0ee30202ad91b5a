package adminsdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorResponse(t *testing.T) {
	t.Parallel()

	resp := &http.Response{StatusCode: http.StatusUnauthorized}

	err := parseErrorResponse(resp, []byte(`{"error":"Invalid email or password"}`))
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, "Invalid email or password", apiErr.Message)

	err = parseErrorResponse(resp, []byte("upstream exploded"))
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, "upstream exploded", apiErr.Message)

	err = parseErrorResponse(resp, nil)
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, "Unauthorized", apiErr.Message)
}

func TestAPIError_WriteError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	ErrRoleNotFound.WriteError(rec)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.JSONEq(t, `{"error":"Role not found"}`, rec.Body.String())
}

func TestSession_RefreshesOnUnauthorized(t *testing.T) {
	t.Parallel()

	var refreshes atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("POST /refresh-token", func(w http.ResponseWriter, r *http.Request) {
		var req RefreshTokenRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.RefreshToken != "refresh-1" {
			ErrInvalidRefreshToken.WriteError(w)
			return
		}
		refreshes.Add(1)
		_ = json.NewEncoder(w).Encode(RefreshTokenResponse{AccessToken: "fresh"})
	})
	mux.HandleFunc("GET /users", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer fresh" {
			ErrInvalidToken.WriteError(w)
			return
		}
		_ = json.NewEncoder(w).Encode([]User{{ID: "u1", Username: "ana"}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	s := NewSDKClient(srv.URL).NewSessionFromTokens("stale", "refresh-1")
	users, err := s.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, "fresh", s.AccessToken())
	require.EqualValues(t, 1, refreshes.Load())
}

func TestSession_NoRetryWithoutRefreshToken(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		ErrInvalidToken.WriteError(w)
	}))
	t.Cleanup(srv.Close)

	s := NewSDKClient(srv.URL).NewSessionFromTokens("stale", "")
	_, err := s.ListUsers(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, "Invalid or expired token", apiErr.Message)
	require.EqualValues(t, 1, calls.Load())
}
