package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/aussiebroadwan/saasadmin/internal/admin/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
	ErrForeignKey    = errors.New("store: foreign key violation")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. It exposes sub-repositories so the same calls work on the
// root handle and inside a transaction, and so a Tx cannot open another Tx.
type Store interface {
	Tenants() Tenants
	Users() Users
	Roles() Roles
	UserRoles() UserRoles
	RefreshTokens() RefreshTokens
	Organizations() Organizations
	SidebarConfigs() SidebarConfigs
	Notifications() Notifications

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error

	// Now asks the database for its current time.
	Now(ctx context.Context) (time.Time, error)
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Tenants interface {
	// CreateTenant inserts a tenant; ErrAlreadyExists when the name is taken.
	CreateTenant(ctx context.Context, t domain.Tenant) error

	// EnsureTenant inserts t unless a tenant with the same name exists, then
	// returns whichever row is stored under that name.
	EnsureTenant(ctx context.Context, t domain.Tenant) (domain.Tenant, error)

	GetTenantByID(ctx context.Context, id string) (domain.Tenant, error)
	GetTenantByName(ctx context.Context, name string) (domain.Tenant, error)
	ListTenants(ctx context.Context) ([]domain.Tenant, error)
}

type Users interface {
	// CreateUser inserts a new user (id is provided by app via ULID).
	// ErrAlreadyExists on a duplicate username or email.
	CreateUser(ctx context.Context, u domain.User) error

	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	ListUsers(ctx context.Context) ([]domain.User, error)

	// UpdateUser overwrites username, email, role, tenant_id and updated_at.
	UpdateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash sets the password_hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID, hash string, at time.Time) error

	// DeleteUser removes the row only. user_roles and refresh_tokens must be
	// cleared first; the schema does not cascade them.
	DeleteUser(ctx context.Context, userID string) error
}

type Roles interface {
	GetRoleByName(ctx context.Context, name string) (domain.Role, error)
	ListRoles(ctx context.Context) ([]domain.Role, error)
	CreateRole(ctx context.Context, r domain.Role) error
}

type UserRoles interface {
	AssignRole(ctx context.Context, ur domain.UserRole) error
	ListRoleIDs(ctx context.Context, userID string) ([]string, error)
	DeleteUserRoles(ctx context.Context, userID string) error
}

type RefreshTokens interface {
	CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error

	// GetRefreshTokenByHash returns the token by its fingerprint.
	GetRefreshTokenByHash(ctx context.Context, hash string) (domain.RefreshToken, error)

	// DeleteRefreshTokenByHash returns ErrNotFound when nothing was deleted.
	DeleteRefreshTokenByHash(ctx context.Context, hash string) error

	ListUserRefreshTokens(ctx context.Context, userID string) ([]domain.RefreshToken, error)
	DeleteUserRefreshTokens(ctx context.Context, userID string) error

	// DeleteExpiredRefreshTokens is housekeeping; it returns the rows removed.
	DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error)
}

type Organizations interface {
	// CreateOrganization returns ErrForeignKey when the tenant (or creator)
	// does not exist.
	CreateOrganization(ctx context.Context, o domain.Organization) error
	ListOrganizations(ctx context.Context) ([]domain.Organization, error)
}

// SidebarConfigs and Notifications scope every lookup by owner, so another
// user's id reads as ErrNotFound.
type SidebarConfigs interface {
	CreateSidebarConfig(ctx context.Context, c domain.SidebarConfig) error
	ListSidebarConfigs(ctx context.Context, userID string) ([]domain.SidebarConfig, error)
	GetSidebarConfig(ctx context.Context, id, userID string) (domain.SidebarConfig, error)
	UpdateSidebarConfig(ctx context.Context, id, userID string, config json.RawMessage, at time.Time) error
	DeleteSidebarConfig(ctx context.Context, id, userID string) error
}

type Notifications interface {
	CreateNotification(ctx context.Context, n domain.Notification) error

	// ListNotifications is newest first.
	ListNotifications(ctx context.Context, userID string) ([]domain.Notification, error)
	GetNotification(ctx context.Context, id, userID string) (domain.Notification, error)
	MarkNotificationRead(ctx context.Context, id, userID string, at time.Time) error
	DeleteNotification(ctx context.Context, id, userID string) error
}
