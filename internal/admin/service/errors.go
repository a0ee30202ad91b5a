package service

import (
	"errors"

	"github.com/aussiebroadwan/saasadmin/internal/admin/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidRefresh     = errors.New("invalid_refresh_token")
	ErrInvalidToken       = errors.New("invalid_token")
	ErrExpiredToken       = errors.New("expired_token")
	ErrMalformedToken     = errors.New("malformed_token")
	ErrRoleNotFound       = errors.New("role_not_found")
	ErrTenantNotFound     = errors.New("tenant_not_found")
	ErrTenantConstraint   = errors.New("tenant_constraint")
)

// Store sentinels re-exported so callers of this package can match them
// without importing the store.
var (
	ErrNotFound      = store.ErrNotFound
	ErrAlreadyExists = store.ErrAlreadyExists
)

// ValidationError reports input rejected before any store access. Message is
// safe to hand back to the client.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
