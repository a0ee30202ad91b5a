package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/saasadmin/internal/admin/domain"
	"github.com/aussiebroadwan/saasadmin/internal/admin/store"
	"github.com/aussiebroadwan/saasadmin/pkg/idx"
	"github.com/aussiebroadwan/saasadmin/pkg/slogx"
)

type OrganizationService struct {
	Store store.Store
}

type CreateOrganizationInput struct {
	Name      string `validate:"required"`
	TenantID  string
	CreatedBy *string
}

// Create adds an organization under an existing tenant. A missing or unknown
// tenant yields ErrTenantConstraint.
func (s *OrganizationService) Create(ctx context.Context, in CreateOrganizationInput) (domain.Organization, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.TenantID = strings.TrimSpace(in.TenantID)
	if err := check(in, messages{"required": "Organization name is required"}); err != nil {
		return domain.Organization{}, err
	}
	if in.TenantID == "" {
		return domain.Organization{}, ErrTenantConstraint
	}
	if in.CreatedBy != nil && strings.TrimSpace(*in.CreatedBy) == "" {
		in.CreatedBy = nil
	}

	now := time.Now().UTC()
	org := domain.Organization{
		ID:        idx.New().String(),
		TenantID:  in.TenantID,
		Name:      in.Name,
		CreatedBy: in.CreatedBy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Tenants().GetTenantByID(ctx, org.TenantID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrTenantConstraint
			}
			return err
		}

		if err := tx.Organizations().CreateOrganization(ctx, org); err != nil {
			if errors.Is(err, store.ErrForeignKey) {
				return &ValidationError{Field: "CreatedBy", Message: "created_by must reference an existing user"}
			}
			return err
		}
		return nil
	})
	if err != nil {
		return domain.Organization{}, err
	}

	slogx.FromContext(ctx).Info("organization created",
		slog.String("organization_id", org.ID),
		slog.String("tenant_id", org.TenantID),
	)
	return org, nil
}

func (s *OrganizationService) List(ctx context.Context) ([]domain.Organization, error) {
	return s.Store.Organizations().ListOrganizations(ctx)
}
