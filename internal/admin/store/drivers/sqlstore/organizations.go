package sqlstore

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/aussiebroadwan/saasadmin/internal/admin/domain"
)

type organizationsRepo struct{ repo }

var organizationColumns = []string{"id", "tenant_id", "name", "created_by", "created_at", "updated_at"}

func scanOrganization(row sq.RowScanner) (domain.Organization, error) {
	var (
		o         domain.Organization
		createdBy sql.NullString
	)
	if err := row.Scan(&o.ID, &o.TenantID, &o.Name, &createdBy, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return domain.Organization{}, err
	}
	o.CreatedBy = nullStringPtr(createdBy)
	o.CreatedAt, o.UpdatedAt = o.CreatedAt.UTC(), o.UpdatedAt.UTC()
	return o, nil
}

func (r *organizationsRepo) CreateOrganization(ctx context.Context, o domain.Organization) error {
	_, err := r.sb.Insert("organizations").
		Columns(organizationColumns...).
		Values(o.ID, o.TenantID, o.Name, nullString(o.CreatedBy), o.CreatedAt, o.UpdatedAt).
		ExecContext(ctx)
	return r.mapWriteErr(err)
}

func (r *organizationsRepo) ListOrganizations(ctx context.Context) ([]domain.Organization, error) {
	rows, err := r.sb.Select(organizationColumns...).
		From("organizations").
		OrderBy("created_at", "id").
		QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Organization{}
	for rows.Next() {
		o, err := scanOrganization(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
