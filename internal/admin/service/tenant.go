package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/saasadmin/internal/admin/domain"
	"github.com/aussiebroadwan/saasadmin/internal/admin/store"
	"github.com/aussiebroadwan/saasadmin/pkg/idx"
	"github.com/aussiebroadwan/saasadmin/pkg/slogx"
)

type TenantService struct {
	Store store.Store
}

type CreateTenantInput struct {
	Name string `validate:"required"`
}

// Resolve returns the tenant called name, creating it if needed. It runs on
// st so it joins the caller's transaction. Concurrent first use of the same
// name converges on a single row.
func (s *TenantService) Resolve(ctx context.Context, st store.Store, name string) (domain.Tenant, error) {
	now := time.Now().UTC()
	return st.Tenants().EnsureTenant(ctx, domain.Tenant{
		ID:        idx.New().String(),
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// Create inserts a new tenant. A taken name yields ErrAlreadyExists.
func (s *TenantService) Create(ctx context.Context, in CreateTenantInput) (domain.Tenant, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := check(in, messages{"required": "Tenant name is required"}); err != nil {
		return domain.Tenant{}, err
	}

	now := time.Now().UTC()
	t := domain.Tenant{
		ID:        idx.New().String(),
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.Tenants().CreateTenant(ctx, t); err != nil {
		return domain.Tenant{}, err
	}

	slogx.FromContext(ctx).Info("tenant created",
		slog.String("tenant_id", t.ID),
		slog.String("name", t.Name),
	)
	return t, nil
}

func (s *TenantService) List(ctx context.Context) ([]domain.Tenant, error) {
	return s.Store.Tenants().ListTenants(ctx)
}
