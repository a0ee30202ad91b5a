package sqlstore

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/aussiebroadwan/saasadmin/internal/admin/domain"
)

type tenantsRepo struct{ repo }

var tenantColumns = []string{"id", "name", "created_at", "updated_at"}

func scanTenant(row sq.RowScanner) (domain.Tenant, error) {
	var t domain.Tenant
	if err := row.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return domain.Tenant{}, err
	}
	t.CreatedAt, t.UpdatedAt = t.CreatedAt.UTC(), t.UpdatedAt.UTC()
	return t, nil
}

func (r *tenantsRepo) CreateTenant(ctx context.Context, t domain.Tenant) error {
	_, err := r.sb.Insert("tenants").
		Columns(tenantColumns...).
		Values(t.ID, t.Name, t.CreatedAt, t.UpdatedAt).
		ExecContext(ctx)
	return r.mapWriteErr(err)
}

func (r *tenantsRepo) EnsureTenant(ctx context.Context, t domain.Tenant) (domain.Tenant, error) {
	_, err := r.sb.Insert("tenants").
		Columns(tenantColumns...).
		Values(t.ID, t.Name, t.CreatedAt, t.UpdatedAt).
		Suffix("ON CONFLICT (name) DO NOTHING").
		ExecContext(ctx)
	if err != nil {
		return domain.Tenant{}, r.mapWriteErr(err)
	}
	return r.GetTenantByName(ctx, t.Name)
}

func (r *tenantsRepo) GetTenantByID(ctx context.Context, id string) (domain.Tenant, error) {
	t, err := scanTenant(r.sb.Select(tenantColumns...).
		From("tenants").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx))
	return t, mapNotFound(err)
}

func (r *tenantsRepo) GetTenantByName(ctx context.Context, name string) (domain.Tenant, error) {
	t, err := scanTenant(r.sb.Select(tenantColumns...).
		From("tenants").
		Where(sq.Eq{"name": name}).
		QueryRowContext(ctx))
	return t, mapNotFound(err)
}

func (r *tenantsRepo) ListTenants(ctx context.Context) ([]domain.Tenant, error) {
	rows, err := r.sb.Select(tenantColumns...).
		From("tenants").
		OrderBy("created_at", "id").
		QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Tenant{}
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
