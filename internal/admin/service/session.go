package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/saasadmin/internal/admin/store"
	"github.com/aussiebroadwan/saasadmin/pkg/cryptox"
	"github.com/aussiebroadwan/saasadmin/pkg/slogx"
)

// SessionService handles login, access token refresh and logout.
type SessionService struct {
	Store  store.Store
	Tokens *TokenService
}

type LoginInput struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
}

// Login checks credentials and opens a new session. Earlier sessions for the
// same user stay valid.
func (s *SessionService) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	log := slogx.FromContext(ctx)

	in.Email = strings.TrimSpace(in.Email)
	if err := check(in, messages{"required": "Email and password are required"}); err != nil {
		return LoginResult{}, err
	}

	// 1. Look the user up; an unknown email still pays for one verification
	user, err := s.Store.Users().GetUserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			cryptox.VerifyDummy(in.Password)
			log.Info("login failed", slog.String("reason", "unknown email"))
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	// 2. Verify the password
	if err := cryptox.VerifyPassword(in.Password, user.PasswordHash); err != nil {
		log.Info("login failed",
			slog.String("user_id", user.ID),
			slog.String("reason", "bad password"),
		)
		return LoginResult{}, ErrInvalidCredentials
	}

	// 3. Upgrade legacy hashes while we have the plaintext
	if cryptox.NeedsRehash(user.PasswordHash) {
		if hash, err := cryptox.HashPassword(in.Password); err == nil {
			if err := s.Store.Users().UpdatePasswordHash(ctx, user.ID, hash, time.Now().UTC()); err != nil {
				log.Warn("failed to upgrade password hash", slog.String("user_id", user.ID), slog.Any("error", err))
			}
		}
	}

	// 4. Issue and persist a new pair
	pair, err := s.Tokens.IssuePair(ctx, s.Store, user)
	if err != nil {
		log.Error("failed to issue tokens", slog.String("user_id", user.ID), slog.Any("error", err))
		return LoginResult{}, err
	}

	log.Info("login succeeded", slog.String("user_id", user.ID))
	return LoginResult{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
}

// Refresh exchanges a live refresh token for a new access token. The refresh
// token itself is not rotated.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	log := slogx.FromContext(ctx)

	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return "", &ValidationError{Field: "RefreshToken", Message: "Refresh token is required"}
	}

	claims, err := s.Tokens.VerifyRefreshToken(ctx, refreshToken)
	if err != nil {
		if isTokenError(err) {
			log.Info("refresh rejected", slog.Any("error", err))
			return "", ErrInvalidRefresh
		}
		return "", err
	}

	user, err := s.Store.Users().GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidRefresh
		}
		return "", err
	}

	// The role comes from the user row so role changes apply on refresh.
	return s.Tokens.IssueAccessToken(user.ID, user.Role)
}

// Logout revokes refreshToken. ErrNotFound means it was unknown or already
// revoked.
func (s *SessionService) Logout(ctx context.Context, refreshToken string) error {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return &ValidationError{Field: "RefreshToken", Message: "Refresh token is required"}
	}

	if err := s.Tokens.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("logged out")
	return nil
}

func isTokenError(err error) bool {
	return errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrExpiredToken) ||
		errors.Is(err, ErrMalformedToken)
}
