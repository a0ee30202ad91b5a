package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTL constants.
const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	DefaultAccessTokenTTL = 15 * time.Minute

	// DefaultRefreshTokenTTL is the default lifetime for refresh tokens.
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// AccessClaims is the payload of an access token: who the caller is and
// which role name they held when the token was minted.
type AccessClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`

	jwt.RegisteredClaims
}

// RefreshClaims is the payload of a refresh token. It carries no role so a
// role change takes effect on the next refresh.
type RefreshClaims struct {
	UserID string `json:"user_id"`

	jwt.RegisteredClaims
}

// NewAccessClaims builds access claims valid from now for ttl.
func NewAccessClaims(userID, role string, ttl time.Duration, now time.Time) AccessClaims {
	return AccessClaims{
		UserID:           userID,
		Role:             role,
		RegisteredClaims: registered(ttl, now),
	}
}

// NewRefreshClaims builds refresh claims valid from now for ttl.
func NewRefreshClaims(userID string, ttl time.Duration, now time.Time) RefreshClaims {
	return RefreshClaims{
		UserID:           userID,
		RegisteredClaims: registered(ttl, now),
	}
}

func registered(ttl time.Duration, now time.Time) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        NewJTI(),
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim. Two tokens
// minted for the same user in the same second still differ because of it.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// validate checks the fields every access token must carry.
func (c AccessClaims) validate() error {
	if c.UserID == "" || c.Role == "" {
		return ErrInvalidClaim
	}
	return nil
}

func (c RefreshClaims) validate() error {
	if c.UserID == "" {
		return ErrInvalidClaim
	}
	return nil
}
