package domain

import (
	"encoding/json"
	"time"
)

// SidebarConfig is an opaque per-user UI document scoped to a tenant.
type SidebarConfig struct {
	ID         string
	TenantID   string
	UserID     string
	ConfigJSON json.RawMessage
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
