package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/saasadmin/internal/admin/domain"
	"github.com/aussiebroadwan/saasadmin/internal/admin/store"
	"github.com/aussiebroadwan/saasadmin/pkg/idx"
)

type RolesService struct {
	Store store.Store
}

// Resolve looks a role up by name on st. Roles are never created on demand.
func (s *RolesService) Resolve(ctx context.Context, st store.Store, name string) (domain.Role, error) {
	role, err := st.Roles().GetRoleByName(ctx, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Role{}, ErrRoleNotFound
		}
		return domain.Role{}, err
	}
	return role, nil
}

// List returns all roles in the system.
func (s *RolesService) List(ctx context.Context) ([]domain.Role, error) {
	return s.Store.Roles().ListRoles(ctx)
}

// Create adds a role for the operator CLI.
func (s *RolesService) Create(ctx context.Context, name, description string) (domain.Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Role{}, &ValidationError{Field: "Name", Message: "Role name is required"}
	}

	role := domain.Role{
		ID:          idx.New().String(),
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Store.Roles().CreateRole(ctx, role); err != nil {
		return domain.Role{}, err
	}
	return role, nil
}
