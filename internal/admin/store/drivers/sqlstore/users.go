package sqlstore

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/aussiebroadwan/saasadmin/internal/admin/domain"
)

type usersRepo struct{ repo }

var userColumns = []string{
	"id", "tenant_id", "username", "email", "password_hash", "role", "created_at", "updated_at",
}

func scanUser(row sq.RowScanner) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.TenantID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, err
	}
	u.CreatedAt, u.UpdatedAt = u.CreatedAt.UTC(), u.UpdatedAt.UTC()
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.sb.Insert("users").
		Columns(userColumns...).
		Values(u.ID, u.TenantID, u.Username, u.Email, u.PasswordHash, u.Role, u.CreatedAt, u.UpdatedAt).
		ExecContext(ctx)
	return r.mapWriteErr(err)
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	u, err := scanUser(r.sb.Select(userColumns...).
		From("users").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx))
	return u, mapNotFound(err)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	u, err := scanUser(r.sb.Select(userColumns...).
		From("users").
		Where(sq.Eq{"email": email}).
		QueryRowContext(ctx))
	return u, mapNotFound(err)
}

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.sb.Select(userColumns...).
		From("users").
		OrderBy("created_at", "id").
		QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *usersRepo) UpdateUser(ctx context.Context, u domain.User) error {
	res, err := r.sb.Update("users").
		Set("tenant_id", u.TenantID).
		Set("username", u.Username).
		Set("email", u.Email).
		Set("role", u.Role).
		Set("updated_at", u.UpdatedAt).
		Where(sq.Eq{"id": u.ID}).
		ExecContext(ctx)
	return expectAffected(res, r.mapWriteErr(err))
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID, hash string, at time.Time) error {
	res, err := r.sb.Update("users").
		Set("password_hash", hash).
		Set("updated_at", at).
		Where(sq.Eq{"id": userID}).
		ExecContext(ctx)
	return expectAffected(res, err)
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) error {
	res, err := r.sb.Delete("users").
		Where(sq.Eq{"id": userID}).
		ExecContext(ctx)
	return expectAffected(res, r.mapWriteErr(err))
}
