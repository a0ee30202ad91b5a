package domain

import "time"

type Organization struct {
	ID        string
	TenantID  string
	Name      string
	CreatedBy *string // user id; cleared when that user is deleted
	CreatedAt time.Time
	UpdatedAt time.Time
}
