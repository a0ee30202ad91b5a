package domain

import "time"

type User struct {
	ID           string
	TenantID     string // Foreign key to tenants table
	Username     string
	Email        string
	PasswordHash string // argon2 encoded (bcrypt for imported accounts)
	Role         string // denormalized role name, mirrors user_roles
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserRole is the RBAC membership row kept in step with User.Role.
type UserRole struct {
	UserID string
	RoleID string
}
