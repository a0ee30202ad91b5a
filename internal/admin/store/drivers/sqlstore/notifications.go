package sqlstore

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/aussiebroadwan/saasadmin/internal/admin/domain"
)

type notificationsRepo struct{ repo }

var notificationColumns = []string{"id", "user_id", "message", "is_read", "created_at", "updated_at"}

func scanNotification(row sq.RowScanner) (domain.Notification, error) {
	var n domain.Notification
	if err := row.Scan(&n.ID, &n.UserID, &n.Message, &n.IsRead, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return domain.Notification{}, err
	}
	n.CreatedAt, n.UpdatedAt = n.CreatedAt.UTC(), n.UpdatedAt.UTC()
	return n, nil
}

func (r *notificationsRepo) CreateNotification(ctx context.Context, n domain.Notification) error {
	_, err := r.sb.Insert("notifications").
		Columns(notificationColumns...).
		Values(n.ID, n.UserID, n.Message, n.IsRead, n.CreatedAt, n.UpdatedAt).
		ExecContext(ctx)
	return r.mapWriteErr(err)
}

func (r *notificationsRepo) ListNotifications(ctx context.Context, userID string) ([]domain.Notification, error) {
	rows, err := r.sb.Select(notificationColumns...).
		From("notifications").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *notificationsRepo) GetNotification(ctx context.Context, id, userID string) (domain.Notification, error) {
	n, err := scanNotification(r.sb.Select(notificationColumns...).
		From("notifications").
		Where(sq.Eq{"id": id, "user_id": userID}).
		QueryRowContext(ctx))
	return n, mapNotFound(err)
}

func (r *notificationsRepo) MarkNotificationRead(ctx context.Context, id, userID string, at time.Time) error {
	res, err := r.sb.Update("notifications").
		Set("is_read", true).
		Set("updated_at", at).
		Where(sq.Eq{"id": id, "user_id": userID}).
		ExecContext(ctx)
	return expectAffected(res, err)
}

func (r *notificationsRepo) DeleteNotification(ctx context.Context, id, userID string) error {
	res, err := r.sb.Delete("notifications").
		Where(sq.Eq{"id": id, "user_id": userID}).
		ExecContext(ctx)
	return expectAffected(res, err)
}
