// Package dbx provides the minimal database interface shared by
// repositories. Both *sql.DB and *sql.Tx satisfy DBTX, so repositories can
// run against the pool or inside a transaction without knowing which.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by our repositories.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
