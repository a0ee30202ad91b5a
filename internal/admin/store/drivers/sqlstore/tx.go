package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/saasadmin/internal/admin/store"
)

type txStore struct {
	tx *sql.Tx
	d  Dialect
}

func newTx(tx *sql.Tx, d Dialect) *txStore {
	return &txStore{tx: tx, d: d}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // caller will commit/rollback and outer DB stays open

// Ping is a no-op for transactions; the connection is already held.
func (t *txStore) Ping(ctx context.Context) error {
	return nil
}

func (t *txStore) Now(ctx context.Context) (time.Time, error) {
	return queryNow(ctx, t.tx)
}

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) ApplyMigrations() error { return nil } // migrations run before any tx

func (t *txStore) base() repo { return newRepo(t.tx, t.d) }

func (t *txStore) Tenants() store.Tenants               { return &tenantsRepo{t.base()} }
func (t *txStore) Users() store.Users                   { return &usersRepo{t.base()} }
func (t *txStore) Roles() store.Roles                   { return &rolesRepo{t.base()} }
func (t *txStore) UserRoles() store.UserRoles           { return &userRolesRepo{t.base()} }
func (t *txStore) RefreshTokens() store.RefreshTokens   { return &refreshTokensRepo{t.base()} }
func (t *txStore) Organizations() store.Organizations   { return &organizationsRepo{t.base()} }
func (t *txStore) SidebarConfigs() store.SidebarConfigs { return &sidebarConfigsRepo{t.base()} }
func (t *txStore) Notifications() store.Notifications   { return &notificationsRepo{t.base()} }
