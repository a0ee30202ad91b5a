package sqlstore

import (
	"context"
	"encoding/json"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/aussiebroadwan/saasadmin/internal/admin/domain"
)

type sidebarConfigsRepo struct{ repo }

var sidebarConfigColumns = []string{"id", "tenant_id", "user_id", "config_json", "created_at", "updated_at"}

func scanSidebarConfig(row sq.RowScanner) (domain.SidebarConfig, error) {
	var (
		c   domain.SidebarConfig
		raw []byte
	)
	if err := row.Scan(&c.ID, &c.TenantID, &c.UserID, &raw, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return domain.SidebarConfig{}, err
	}
	c.ConfigJSON = json.RawMessage(raw)
	c.CreatedAt, c.UpdatedAt = c.CreatedAt.UTC(), c.UpdatedAt.UTC()
	return c, nil
}

func (r *sidebarConfigsRepo) CreateSidebarConfig(ctx context.Context, c domain.SidebarConfig) error {
	_, err := r.sb.Insert("sidebar_configs").
		Columns(sidebarConfigColumns...).
		Values(c.ID, c.TenantID, c.UserID, string(c.ConfigJSON), c.CreatedAt, c.UpdatedAt).
		ExecContext(ctx)
	return r.mapWriteErr(err)
}

func (r *sidebarConfigsRepo) ListSidebarConfigs(ctx context.Context, userID string) ([]domain.SidebarConfig, error) {
	rows, err := r.sb.Select(sidebarConfigColumns...).
		From("sidebar_configs").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at", "id").
		QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.SidebarConfig{}
	for rows.Next() {
		c, err := scanSidebarConfig(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *sidebarConfigsRepo) GetSidebarConfig(ctx context.Context, id, userID string) (domain.SidebarConfig, error) {
	c, err := scanSidebarConfig(r.sb.Select(sidebarConfigColumns...).
		From("sidebar_configs").
		Where(sq.Eq{"id": id, "user_id": userID}).
		QueryRowContext(ctx))
	return c, mapNotFound(err)
}

func (r *sidebarConfigsRepo) UpdateSidebarConfig(
	ctx context.Context,
	id, userID string,
	config json.RawMessage,
	at time.Time,
) error {
	res, err := r.sb.Update("sidebar_configs").
		Set("config_json", string(config)).
		Set("updated_at", at).
		Where(sq.Eq{"id": id, "user_id": userID}).
		ExecContext(ctx)
	return expectAffected(res, err)
}

func (r *sidebarConfigsRepo) DeleteSidebarConfig(ctx context.Context, id, userID string) error {
	res, err := r.sb.Delete("sidebar_configs").
		Where(sq.Eq{"id": id, "user_id": userID}).
		ExecContext(ctx)
	return expectAffected(res, err)
}
