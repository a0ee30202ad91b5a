package domain

import "time"

type Role struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}

// Seeded role names.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)
