package database

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by both *sqlx.DB and *sqlx.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	DriverName() string
}

func New(db DBTX) *Queries {
	return &Queries{db: db, dialect: DialectFor(db.DriverName())}
}

type Queries struct {
	db      DBTX
	dialect Dialect
}
