package http

import (
	"github.com/aussiebroadwan/saasadmin/internal/admin/domain"
	"github.com/aussiebroadwan/saasadmin/pkg/adminsdk"
)

func toUser(u domain.User) adminsdk.User {
	return adminsdk.User{
		ID:        u.ID,
		TenantID:  u.TenantID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toTenant(t domain.Tenant) adminsdk.Tenant {
	return adminsdk.Tenant{ID: t.ID, Name: t.Name, CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt}
}

func toOrganization(o domain.Organization) adminsdk.Organization {
	return adminsdk.Organization{
		ID:        o.ID,
		TenantID:  o.TenantID,
		Name:      o.Name,
		CreatedBy: o.CreatedBy,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func toSidebarConfig(c domain.SidebarConfig) adminsdk.SidebarConfig {
	return adminsdk.SidebarConfig{
		ID:         c.ID,
		TenantID:   c.TenantID,
		UserID:     c.UserID,
		ConfigJSON: c.ConfigJSON,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func toNotification(n domain.Notification) adminsdk.Notification {
	return adminsdk.Notification{
		ID:        n.ID,
		UserID:    n.UserID,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// mapSlice converts a list, never returning nil so empty lists encode as [].
func mapSlice[T, U any](in []T, fn func(T) U) []U {
	out := make([]U, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}
	return out
}
