package adminsdk

import (
	"encoding/json"
	"time"
)

// ============================================================================
// Entities
// ============================================================================

// User is the public view of an account. The password hash never leaves the
// server.
type User struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Tenant is a top-level boundary owning users and configuration.
type Tenant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Organization belongs to a tenant.
type Organization struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Name      string    `json:"name"`
	CreatedBy *string   `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SidebarConfig is a per-user UI document. ConfigJSON is returned exactly as
// it was stored.
type SidebarConfig struct {
	ID         string          `json:"id"`
	TenantID   string          `json:"tenant_id"`
	UserID     string          `json:"user_id"`
	ConfigJSON json.RawMessage `json:"config_json"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Notification is a message addressed to one user.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NotificationEvent is pushed over /ws.
type NotificationEvent struct {
	Type         string       `json:"type"`
	Notification Notification `json:"notification"`
}

// EventNotificationCreated is the Type of a NotificationEvent for new rows.
const EventNotificationCreated = "notification.created"

// ============================================================================
// Requests
// ============================================================================

type CreateUserRequest struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	TenantName string `json:"tenant_name"`
}

// UpdateUserRequest fields left nil keep their stored value.
type UpdateUserRequest struct {
	Username   *string `json:"username,omitempty"`
	Email      *string `json:"email,omitempty"`
	Role       *string `json:"role,omitempty"`
	TenantName *string `json:"tenant_name,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshTokenRequest is the body of /refresh-token and /logout.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type CreateTenantRequest struct {
	Name string `json:"name"`
}

type CreateOrganizationRequest struct {
	Name      string  `json:"name"`
	TenantID  string  `json:"tenant_id"`
	CreatedBy *string `json:"created_by,omitempty"`
}

type CreateSidebarConfigRequest struct {
	TenantID   string          `json:"tenant_id"`
	ConfigJSON json.RawMessage `json:"config_json"`
}

type UpdateSidebarConfigRequest struct {
	ConfigJSON json.RawMessage `json:"config_json"`
}

type CreateNotificationRequest struct {
	Message string `json:"message"`
	IsRead  bool   `json:"is_read"`
}

// ============================================================================
// Responses
// ============================================================================

type CreateUserResponse struct {
	Message      string `json:"message"`
	User         User   `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type LoginResponse struct {
	Message      string `json:"message"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type RefreshTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type UserResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

type TenantResponse struct {
	Message string `json:"message"`
	Tenant  Tenant `json:"tenant"`
}

type OrganizationResponse struct {
	Message      string       `json:"message"`
	Organization Organization `json:"organization"`
}

type SidebarConfigResponse struct {
	Message string        `json:"message"`
	Sidebar SidebarConfig `json:"sidebar"`
}

type NotificationResponse struct {
	Message      string       `json:"message"`
	Notification Notification `json:"notification"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports dependency status on /readyz.
type HealthChecks struct {
	Database string `json:"database"`
}

type TestDBResponse struct {
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}
