package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/saasadmin/internal/admin/domain"
	"github.com/aussiebroadwan/saasadmin/internal/admin/store"
	"github.com/aussiebroadwan/saasadmin/pkg/cryptox"
	"github.com/aussiebroadwan/saasadmin/pkg/idx"
	"github.com/aussiebroadwan/saasadmin/pkg/jwtx"
)

// TokenService mints and checks access/refresh JWTs. Refresh tokens are also
// tracked in the store by fingerprint so they can be revoked.
type TokenService struct {
	Store      store.Store
	AccessKey  *jwtx.HMACKey
	RefreshKey *jwtx.HMACKey
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func (s *TokenService) accessTTL() time.Duration {
	if s.AccessTTL <= 0 {
		return jwtx.DefaultAccessTokenTTL
	}
	return s.AccessTTL
}

func (s *TokenService) refreshTTL() time.Duration {
	if s.RefreshTTL <= 0 {
		return jwtx.DefaultRefreshTokenTTL
	}
	return s.RefreshTTL
}

// IssueAccessToken signs {user_id, role} with the access secret.
func (s *TokenService) IssueAccessToken(userID, role string) (string, error) {
	return s.AccessKey.Sign(jwtx.NewAccessClaims(userID, role, s.accessTTL(), time.Now().UTC()))
}

// IssueRefreshToken signs {user_id} with the refresh secret and returns when
// it stops being valid.
func (s *TokenService) IssueRefreshToken(userID string) (string, time.Time, error) {
	now := time.Now().UTC()
	claims := jwtx.NewRefreshClaims(userID, s.refreshTTL(), now)

	token, err := s.RefreshKey.Sign(claims)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, claims.ExpiresAt.Time, nil
}

// IssuePair mints both tokens for u and records the refresh token through st,
// which may be the root store or an open transaction.
func (s *TokenService) IssuePair(ctx context.Context, st store.Store, u domain.User) (domain.TokenPair, error) {
	access, err := s.IssueAccessToken(u.ID, u.Role)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}

	refresh, expiresAt, err := s.IssueRefreshToken(u.ID)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("sign refresh token: %w", err)
	}

	row := domain.RefreshToken{
		ID:        idx.New().String(),
		UserID:    u.ID,
		TokenHash: cryptox.FingerprintToken(refresh),
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	if err := st.RefreshTokens().CreateRefreshToken(ctx, row); err != nil {
		return domain.TokenPair{}, fmt.Errorf("store refresh token: %w", err)
	}

	return domain.TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		RefreshExpiresAt: expiresAt,
	}, nil
}

// VerifyAccessToken checks signature, expiry and required claims.
func (s *TokenService) VerifyAccessToken(raw string) (jwtx.AccessClaims, error) {
	claims, err := s.AccessKey.VerifyAccess(raw)
	if err != nil {
		return jwtx.AccessClaims{}, mapTokenError(err)
	}
	return claims, nil
}

// VerifyRefreshToken checks the JWT and that a live row for it still exists.
func (s *TokenService) VerifyRefreshToken(ctx context.Context, raw string) (jwtx.RefreshClaims, error) {
	claims, err := s.RefreshKey.VerifyRefresh(raw)
	if err != nil {
		return jwtx.RefreshClaims{}, mapTokenError(err)
	}

	row, err := s.Store.RefreshTokens().GetRefreshTokenByHash(ctx, cryptox.FingerprintToken(raw))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return jwtx.RefreshClaims{}, ErrInvalidToken
		}
		return jwtx.RefreshClaims{}, err
	}

	if row.UserID != claims.UserID {
		return jwtx.RefreshClaims{}, ErrInvalidToken
	}
	if row.Expired(time.Now().UTC()) {
		return jwtx.RefreshClaims{}, ErrExpiredToken
	}

	return claims, nil
}

// RevokeRefreshToken deletes the stored row for raw. It returns ErrNotFound
// when nothing matched.
func (s *TokenService) RevokeRefreshToken(ctx context.Context, raw string) error {
	return s.Store.RefreshTokens().DeleteRefreshTokenByHash(ctx, cryptox.FingerprintToken(raw))
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, jwtx.ErrExpired):
		return fmt.Errorf("%w: %w", ErrExpiredToken, err)
	case errors.Is(err, jwtx.ErrInvalidClaim):
		return fmt.Errorf("%w: %w", ErrInvalidToken, err)
	default:
		return fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}
}
