package adminsdk

import (
	"context"
	"net/http"
	"net/url"
)

// ============================================================================
// Users
// ============================================================================

// ListUsers returns every user.
func (s *Session) ListUsers(ctx context.Context) ([]User, error) {
	var out []User
	if err := s.doAuth(ctx, http.MethodGet, "/users", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// GetUser fetches a single user by id.
func (s *Session) GetUser(ctx context.Context, id string) (*User, error) {
	var out User
	if err := s.doAuth(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser applies a partial update.
func (s *Session) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*User, error) {
	var out UserResponse
	if err := s.doAuth(ctx, http.MethodPut, "/users/"+url.PathEscape(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// DeleteUser removes a user along with its sessions and role assignment.
func (s *Session) DeleteUser(ctx context.Context, id string) (*User, error) {
	var out UserResponse
	if err := s.doAuth(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// ============================================================================
// Tenants and organizations
// ============================================================================

func (s *Session) ListTenants(ctx context.Context) ([]Tenant, error) {
	var out []Tenant
	if err := s.doAuth(ctx, http.MethodGet, "/tenants", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) ListOrganizations(ctx context.Context) ([]Organization, error) {
	var out []Organization
	if err := s.doAuth(ctx, http.MethodGet, "/organizations", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}
