// Package dbx provides tiny DB abstractions shared by repositories:
// a minimal interface (DBTX) implemented by both *sql.DB and *sql.Tx,
// and classification of driver errors into store-level conditions.
package dbx

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of database/sql used by our repos.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLSTATE codes we react to.
const (
	UniqueViolationCode     = "23505"
	ForeignKeyViolationCode = "23503"
)

// IsUniqueViolation reports whether err carries a Postgres unique-constraint
// violation anywhere in its chain.
func IsUniqueViolation(err error) bool {
	return sqlState(err) == UniqueViolationCode
}

// IsForeignKeyViolation reports whether err carries a Postgres foreign-key
// violation anywhere in its chain.
func IsForeignKeyViolation(err error) bool {
	return sqlState(err) == ForeignKeyViolationCode
}

func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
