package adminsdk

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
)

// Session represents an authenticated session. On a 401 it refreshes the
// access token once and retries the request.
type Session struct {
	client *SDKClient

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

// AccessToken returns the current access token.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken returns the current refresh token.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// Refresh replaces the access token using the refresh token.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.refreshToken == "" {
		return fmt.Errorf("no refresh token available")
	}
	tok, err := s.client.RefreshAccessToken(ctx, s.refreshToken)
	if err != nil {
		return err
	}
	s.accessToken = tok
	return nil
}

// Logout ends this session on the server and forgets the tokens.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.refreshToken == "" {
		return fmt.Errorf("no refresh token to revoke")
	}
	if err := s.client.Logout(ctx, s.refreshToken); err != nil {
		return err
	}
	s.accessToken, s.refreshToken = "", ""
	return nil
}

// doAuth performs an authenticated call, refreshing once on 401.
func (s *Session) doAuth(ctx context.Context, method, path string, in, out any, expectedStatus int) error {
	err := s.client.call(ctx, method, path, s.AccessToken(), in, out, expectedStatus)

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized || s.RefreshToken() == "" {
		return err
	}
	if rerr := s.Refresh(ctx); rerr != nil {
		return err
	}
	return s.client.call(ctx, method, path, s.AccessToken(), in, out, expectedStatus)
}
