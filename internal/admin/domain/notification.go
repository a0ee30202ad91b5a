package domain

import "time"

type Notification struct {
	ID        string
	UserID    string
	Message   string
	IsRead    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EventNotificationCreated is published after a notification commits.
const EventNotificationCreated = "notification.created"

// NotificationEvent is what the realtime sink receives.
type NotificationEvent struct {
	Type         string
	Notification Notification
}
