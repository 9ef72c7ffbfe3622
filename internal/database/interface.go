package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGXDB is satisfied by both *pgxpool.Pool and pgx.Tx, so repositories can
// run against the pool in production and a rolled-back transaction in tests.
type PGXDB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Pinger reports whether the database is reachable. Used by health checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

var (
	_ PGXDB  = (*pgxpool.Pool)(nil)
	_ PGXDB  = (pgx.Tx)(nil)
	_ Pinger = (*pgxpool.Pool)(nil)
)
