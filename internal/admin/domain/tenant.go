package domain

import "time"

// Tenant is the top-level boundary that owns users and configuration.
type Tenant struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
