// Package db is the relational persistence layer: explicit record structs
// and small hand-written SQL statements behind a Querier interface, bound to
// either a *sqlx.DB or an open transaction.
package db

import (
	"context"
	"database/sql"
)

// DBTX is the subset of sqlx shared by *sqlx.DB and *sqlx.Tx. Queries are
// written with `?` placeholders and rebound per driver.
type DBTX interface {
	Rebind(query string) string
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Queries implements Querier against a DBTX.
type Queries struct {
	db DBTX
}

// New binds the query set to a database handle or transaction.
func New(dbtx DBTX) *Queries {
	return &Queries{db: dbtx}
}
