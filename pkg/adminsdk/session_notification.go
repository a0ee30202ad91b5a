package adminsdk

import (
	"context"
	"net/http"
	"net/url"
)

// CreateNotification adds a notification for the session's user.
func (s *Session) CreateNotification(ctx context.Context, req CreateNotificationRequest) (*Notification, error) {
	var out NotificationResponse
	if err := s.doAuth(ctx, http.MethodPost, "/notifications", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out.Notification, nil
}

// ListNotifications returns the session user's notifications, newest first.
func (s *Session) ListNotifications(ctx context.Context) ([]Notification, error) {
	var out []Notification
	if err := s.doAuth(ctx, http.MethodGet, "/notifications", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) MarkNotificationRead(ctx context.Context, id string) (*Notification, error) {
	var out NotificationResponse
	if err := s.doAuth(ctx, http.MethodPut, "/notifications/"+url.PathEscape(id)+"/read", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.Notification, nil
}

func (s *Session) DeleteNotification(ctx context.Context, id string) (*Notification, error) {
	var out NotificationResponse
	if err := s.doAuth(ctx, http.MethodDelete, "/notifications/"+url.PathEscape(id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.Notification, nil
}
