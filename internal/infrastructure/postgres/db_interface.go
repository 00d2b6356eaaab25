package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DatabaseIface is satisfied by *pgxpool.Pool and by pgxmock pools in tests.
type DatabaseIface interface {
	querier
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// querier is the subset shared by pools and transactions.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
