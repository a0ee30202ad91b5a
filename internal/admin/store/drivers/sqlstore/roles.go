package sqlstore

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/aussiebroadwan/saasadmin/internal/admin/domain"
)

type rolesRepo struct{ repo }

var roleColumns = []string{"id", "name", "description", "created_at"}

func scanRole(row sq.RowScanner) (domain.Role, error) {
	var r domain.Role
	if err := row.Scan(&r.ID, &r.Name, &r.Description, &r.CreatedAt); err != nil {
		return domain.Role{}, err
	}
	r.CreatedAt = r.CreatedAt.UTC()
	return r, nil
}

func (r *rolesRepo) GetRoleByName(ctx context.Context, name string) (domain.Role, error) {
	role, err := scanRole(r.sb.Select(roleColumns...).
		From("roles").
		Where(sq.Eq{"name": name}).
		QueryRowContext(ctx))
	return role, mapNotFound(err)
}

func (r *rolesRepo) ListRoles(ctx context.Context) ([]domain.Role, error) {
	rows, err := r.sb.Select(roleColumns...).
		From("roles").
		OrderBy("name").
		QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Role{}
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, role)
	}
	return out, rows.Err()
}

func (r *rolesRepo) CreateRole(ctx context.Context, role domain.Role) error {
	_, err := r.sb.Insert("roles").
		Columns(roleColumns...).
		Values(role.ID, role.Name, role.Description, role.CreatedAt).
		ExecContext(ctx)
	return r.mapWriteErr(err)
}

type userRolesRepo struct{ repo }

func (r *userRolesRepo) AssignRole(ctx context.Context, ur domain.UserRole) error {
	_, err := r.sb.Insert("user_roles").
		Columns("user_id", "role_id").
		Values(ur.UserID, ur.RoleID).
		ExecContext(ctx)
	return r.mapWriteErr(err)
}

func (r *userRolesRepo) ListRoleIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.sb.Select("role_id").
		From("user_roles").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("role_id").
		QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *userRolesRepo) DeleteUserRoles(ctx context.Context, userID string) error {
	_, err := r.sb.Delete("user_roles").
		Where(sq.Eq{"user_id": userID}).
		ExecContext(ctx)
	return err
}
