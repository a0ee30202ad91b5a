// Package postgres is the store driver for PostgreSQL, built on a pgx pool
// exposed through database/sql.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/aussiebroadwan/saasadmin/internal/admin/store/drivers/sqlstore"
)

const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
)

type Config struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// NewStore opens a pool for cfg.DSN and checks it answers.
func NewStore(ctx context.Context, cfg Config) (*sqlstore.Store, error) {
	config, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("invalid postgres dsn: %w", err)
	}

	if cfg.MaxConns > 0 {
		config.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		config.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		config.MaxConnLifetime = cfg.MaxConnLifetime
		config.MaxConnLifetimeJitter = cfg.MaxConnLifetime / 10
	}
	if cfg.MaxConnIdleTime > 0 {
		config.MaxConnIdleTime = cfg.MaxConnIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create db pool: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		pool.Close()
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	return sqlstore.New(db, Dialect{}, pool.Close), nil
}

// Dialect is the postgres flavour of sqlstore.Dialect.
type Dialect struct{}

func (Dialect) Name() string                      { return "postgres" }
func (Dialect) Placeholder() sq.PlaceholderFormat { return sq.Dollar }

func (Dialect) IsUniqueViolation(err error) bool {
	return pgCode(err) == pgErrCodeUniqueViolation
}

func (Dialect) IsForeignKeyViolation(err error) bool {
	return pgCode(err) == pgErrCodeForeignKeyViolation
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
