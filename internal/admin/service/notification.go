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

// NotificationSink receives events for committed notifications. Publish must
// not block.
type NotificationSink interface {
	Publish(ev domain.NotificationEvent)
}

// NotificationService manages a user's notifications. Sink may be nil.
type NotificationService struct {
	Store store.Store
	Sink  NotificationSink
}

type CreateNotificationInput struct {
	UserID  string `validate:"required"`
	Message string `validate:"required"`
	IsRead  bool
}

// Create stores a notification for the caller and, once committed, pushes a
// notification.created event to the sink.
func (s *NotificationService) Create(ctx context.Context, in CreateNotificationInput) (domain.Notification, error) {
	in.Message = strings.TrimSpace(in.Message)
	if err := check(in, messages{"required": "Message is required"}); err != nil {
		return domain.Notification{}, err
	}

	now := time.Now().UTC()
	n := domain.Notification{
		ID:        idx.New().String(),
		UserID:    in.UserID,
		Message:   in.Message,
		IsRead:    in.IsRead,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Notifications().CreateNotification(ctx, n)
	}); err != nil {
		return domain.Notification{}, err
	}

	if s.Sink != nil {
		s.Sink.Publish(domain.NotificationEvent{Type: domain.EventNotificationCreated, Notification: n})
	}

	slogx.FromContext(ctx).Info("notification created",
		slog.String("notification_id", n.ID),
		slog.String("user_id", n.UserID),
	)
	return n, nil
}

// List returns the caller's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID string) ([]domain.Notification, error) {
	return s.Store.Notifications().ListNotifications(ctx, userID)
}

// MarkRead flags one of the caller's notifications as read. ErrNotFound
// covers both a missing id and one owned by someone else.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID string) (domain.Notification, error) {
	var n domain.Notification
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Notifications().MarkNotificationRead(ctx, id, userID, time.Now().UTC()); err != nil {
			return err
		}
		got, err := tx.Notifications().GetNotification(ctx, id, userID)
		if err != nil {
			return err
		}
		n = got
		return nil
	})
	if err != nil {
		return domain.Notification{}, err
	}
	return n, nil
}

// Delete removes one of the caller's notifications and returns it.
func (s *NotificationService) Delete(ctx context.Context, id, userID string) (domain.Notification, error) {
	var deleted domain.Notification
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		n, err := tx.Notifications().GetNotification(ctx, id, userID)
		if err != nil {
			return err
		}
		if err := tx.Notifications().DeleteNotification(ctx, id, userID); err != nil {
			return err
		}
		deleted = n
		return nil
	})
	if err != nil {
		return domain.Notification{}, err
	}
	return deleted, nil
}
