package sqlstore

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/aussiebroadwan/saasadmin/internal/admin/domain"
)

type refreshTokensRepo struct{ repo }

var refreshTokenColumns = []string{"id", "user_id", "token_hash", "expires_at", "created_at"}

func scanRefreshToken(row sq.RowScanner) (domain.RefreshToken, error) {
	var t domain.RefreshToken
	if err := row.Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.CreatedAt); err != nil {
		return domain.RefreshToken{}, err
	}
	t.ExpiresAt, t.CreatedAt = t.ExpiresAt.UTC(), t.CreatedAt.UTC()
	return t, nil
}

func (r *refreshTokensRepo) CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error {
	_, err := r.sb.Insert("refresh_tokens").
		Columns(refreshTokenColumns...).
		Values(t.ID, t.UserID, t.TokenHash, t.ExpiresAt, t.CreatedAt).
		ExecContext(ctx)
	return r.mapWriteErr(err)
}

func (r *refreshTokensRepo) GetRefreshTokenByHash(ctx context.Context, hash string) (domain.RefreshToken, error) {
	t, err := scanRefreshToken(r.sb.Select(refreshTokenColumns...).
		From("refresh_tokens").
		Where(sq.Eq{"token_hash": hash}).
		QueryRowContext(ctx))
	return t, mapNotFound(err)
}

func (r *refreshTokensRepo) DeleteRefreshTokenByHash(ctx context.Context, hash string) error {
	res, err := r.sb.Delete("refresh_tokens").
		Where(sq.Eq{"token_hash": hash}).
		ExecContext(ctx)
	return expectAffected(res, err)
}

func (r *refreshTokensRepo) ListUserRefreshTokens(ctx context.Context, userID string) ([]domain.RefreshToken, error) {
	rows, err := r.sb.Select(refreshTokenColumns...).
		From("refresh_tokens").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at", "id").
		QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.RefreshToken{}
	for rows.Next() {
		t, err := scanRefreshToken(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *refreshTokensRepo) DeleteUserRefreshTokens(ctx context.Context, userID string) error {
	_, err := r.sb.Delete("refresh_tokens").
		Where(sq.Eq{"user_id": userID}).
		ExecContext(ctx)
	return err
}

func (r *refreshTokensRepo) DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.sb.Delete("refresh_tokens").
		Where(sq.LtOrEq{"expires_at": now}).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
