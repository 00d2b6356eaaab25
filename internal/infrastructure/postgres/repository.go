package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes mapped to domain errors.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// Repository implements the domain repositories on PostgreSQL. Calls made
// with a context produced by TxManager.WithinTx run in that transaction.
type Repository struct {
	db DatabaseIface
}

func NewRepository(db DatabaseIface) *Repository {
	return &Repository{db: db}
}

func hasPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
