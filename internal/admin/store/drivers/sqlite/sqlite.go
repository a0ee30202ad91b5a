// Package sqlite is the default store driver, backed by modernc.org/sqlite.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"

	sq "github.com/Masterminds/squirrel"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/aussiebroadwan/saasadmin/internal/admin/store/drivers/sqlstore"
)

// DSN builds a modernc connection string for path with foreign keys on, a
// busy timeout, WAL journaling and write-locking transactions.
func DSN(path string) string {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Set("_time_format", "sqlite")
	q.Set("_txlock", "immediate")
	return "file:" + path + "?" + q.Encode()
}

// NewStore opens (creating if needed) the database file at path.
func NewStore(path string) (*sqlstore.Store, error) {
	db, err := sql.Open("sqlite", DSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	return sqlstore.New(db, Dialect{}, nil), nil
}

// Dialect is the sqlite flavour of sqlstore.Dialect.
type Dialect struct{}

func (Dialect) Name() string                      { return "sqlite" }
func (Dialect) Placeholder() sq.PlaceholderFormat { return sq.Question }

func (Dialect) IsUniqueViolation(err error) bool {
	code := errorCode(err)
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

func (Dialect) IsForeignKeyViolation(err error) bool {
	return errorCode(err) == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
}

func errorCode(err error) int {
	var se *msqlite.Error
	if errors.As(err, &se) {
		return se.Code()
	}
	return 0
}
