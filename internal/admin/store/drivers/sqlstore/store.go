// Package sqlstore implements store.Store on database/sql with squirrel. The
// sqlite and postgres drivers supply a Dialect and share every query.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/aussiebroadwan/saasadmin/internal/admin/store"
)

// Dialect captures what differs between database engines.
type Dialect interface {
	Name() string
	Placeholder() sq.PlaceholderFormat
	IsUniqueViolation(err error) bool
	IsForeignKeyViolation(err error) bool
	Migrate(db *sql.DB) error
}

var (
	_ store.Store = (*Store)(nil)
	_ store.Tx    = (*txStore)(nil)
)

type Store struct {
	db      *sql.DB
	dialect Dialect
	closer  func()
}

// New wraps db. closer, when set, runs after db is closed (e.g. to close a
// pgx pool the *sql.DB was opened from).
func New(db *sql.DB, d Dialect, closer func()) *Store {
	return &Store{db: db, dialect: d, closer: closer}
}

// DB exposes the handle for drivers and tests.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error {
	err := s.db.Close()
	if s.closer != nil {
		s.closer()
	}
	return err
}

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Now(ctx context.Context) (time.Time, error) {
	return queryNow(ctx, s.db)
}

func (s *Store) ApplyMigrations() error {
	return s.dialect.Migrate(s.db)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx, s.dialect), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	// Ensure rollback is called if we panic or return early with error
	defer func() {
		_ = tx.Rollback() // safe to call even after commit
	}()

	if err := fn(tx); err != nil {
		return err // rollback happens in defer
	}

	return tx.Commit()
}

func (s *Store) base() repo { return newRepo(s.db, s.dialect) }

func (s *Store) Tenants() store.Tenants               { return &tenantsRepo{s.base()} }
func (s *Store) Users() store.Users                   { return &usersRepo{s.base()} }
func (s *Store) Roles() store.Roles                   { return &rolesRepo{s.base()} }
func (s *Store) UserRoles() store.UserRoles           { return &userRolesRepo{s.base()} }
func (s *Store) RefreshTokens() store.RefreshTokens   { return &refreshTokensRepo{s.base()} }
func (s *Store) Organizations() store.Organizations   { return &organizationsRepo{s.base()} }
func (s *Store) SidebarConfigs() store.SidebarConfigs { return &sidebarConfigsRepo{s.base()} }
func (s *Store) Notifications() store.Notifications   { return &notificationsRepo{s.base()} }

// repo is the shared state of every sub-repository: a statement builder bound
// to either the pool or an open transaction.
type repo struct {
	sb sq.StatementBuilderType
	d  Dialect
}

func newRepo(runner sq.BaseRunner, d Dialect) repo {
	return repo{
		sb: sq.StatementBuilder.PlaceholderFormat(d.Placeholder()).RunWith(runner),
		d:  d,
	}
}

// queryNow works for both engines: postgres hands back a time.Time, sqlite a
// "YYYY-MM-DD HH:MM:SS" string.
func queryNow(ctx context.Context, q interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}) (time.Time, error) {
	var v any
	if err := q.QueryRowContext(ctx, "SELECT CURRENT_TIMESTAMP").Scan(&v); err != nil {
		return time.Time{}, err
	}

	switch t := v.(type) {
	case time.Time:
		return t.UTC(), nil
	case string:
		return time.ParseInLocation(time.DateTime, t, time.UTC)
	case []byte:
		return time.ParseInLocation(time.DateTime, string(t), time.UTC)
	default:
		return time.Time{}, fmt.Errorf("sqlstore: unexpected CURRENT_TIMESTAMP type %T", v)
	}
}
