package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the shortest HMAC secret NewHMACKey accepts.
const MinSecretLength = 16

// HMACKey signs and verifies HS256 tokens with a single shared secret.
// Access and refresh tokens each get their own key.
type HMACKey struct {
	secret []byte
	leeway time.Duration
}

// NewHMACKey wraps secret. Leeway is applied to exp/iat checks for clock skew.
func NewHMACKey(secret []byte, leeway time.Duration) (*HMACKey, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("%w: need at least %d bytes", ErrWeakSecret, MinSecretLength)
	}
	s := make([]byte, len(secret))
	copy(s, secret)
	return &HMACKey{secret: s, leeway: leeway}, nil
}

// Alg is always HS256.
func (k *HMACKey) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Sign turns claims into a compact HS256 JWT.
func (k *HMACKey) Sign(claims jwt.Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(k.secret)
}

// VerifyAccess validates an access token and returns its claims.
func (k *HMACKey) VerifyAccess(token string) (AccessClaims, error) {
	var c AccessClaims
	if err := k.parse(token, &c); err != nil {
		return AccessClaims{}, err
	}
	if err := c.validate(); err != nil {
		return AccessClaims{}, err
	}
	return c, nil
}

// VerifyRefresh validates a refresh token and returns its claims.
func (k *HMACKey) VerifyRefresh(token string) (RefreshClaims, error) {
	var c RefreshClaims
	if err := k.parse(token, &c); err != nil {
		return RefreshClaims{}, err
	}
	if err := c.validate(); err != nil {
		return RefreshClaims{}, err
	}
	return c, nil
}

func (k *HMACKey) parse(token string, claims jwt.Claims) error {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(k.leeway),
	)

	t, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return k.secret, nil
	})
	if err != nil {
		return mapParseError(err)
	}
	if !t.Valid {
		return ErrInvalidClaim
	}
	return nil
}

// mapParseError folds golang-jwt's error tree into our sentinels.
func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", ErrExpired, err)
	case errors.Is(err, jwt.ErrTokenNotValidYet), errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
		return fmt.Errorf("%w: %w", ErrNotYetValid, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %w", ErrInvalidSig, err)
	case errors.Is(err, jwt.ErrTokenInvalidClaims), errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return fmt.Errorf("%w: %w", ErrInvalidClaim, err)
	default:
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
}
