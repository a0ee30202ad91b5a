package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/saasadmin/internal/admin/store"
)

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapWriteErr translates constraint violations into store sentinels and
// keeps the driver error for logs.
func (r repo) mapWriteErr(err error) error {
	switch {
	case err == nil:
		return nil
	case r.d.IsUniqueViolation(err):
		return fmt.Errorf("%w: %v", store.ErrAlreadyExists, err)
	case r.d.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: %v", store.ErrForeignKey, err)
	default:
		return err
	}
}

// expectAffected turns a zero-row UPDATE/DELETE into ErrNotFound.
func expectAffected(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullStringPtr(ns sql.NullString) *string {
	if ns.Valid {
		v := ns.String
		return &v
	}
	return nil
}
