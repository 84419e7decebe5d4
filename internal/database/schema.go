package database

import (
	"context"
	"fmt"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS reflections (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	date TEXT NOT NULL,
	language TEXT NOT NULL,
	title TEXT NOT NULL,
	quote TEXT NOT NULL,
	text TEXT NOT NULL,
	content TEXT NOT NULL,
	UNIQUE(date, language)
)`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS reflections (
	id BIGSERIAL PRIMARY KEY,
	date TEXT NOT NULL,
	language TEXT NOT NULL,
	title TEXT NOT NULL,
	quote TEXT NOT NULL,
	text TEXT NOT NULL,
	content TEXT NOT NULL,
	UNIQUE(date, language)
)`

// CreateSchema creates the reflections table if it does not exist.
func (q *Queries) CreateSchema(ctx context.Context) error {
	schema := sqliteSchema
	if q.dialect == Postgres {
		schema = postgresSchema
	}
	if _, err := q.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create reflections table: %w", err)
	}
	return nil
}

// Savepoint names are generated internally, never from input.

func (q *Queries) Savepoint(ctx context.Context, name string) error {
	_, err := q.db.ExecContext(ctx, "SAVEPOINT "+name)
	return err
}

func (q *Queries) RollbackToSavepoint(ctx context.Context, name string) error {
	_, err := q.db.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+name)
	return err
}

func (q *Queries) ReleaseSavepoint(ctx context.Context, name string) error {
	_, err := q.db.ExecContext(ctx, "RELEASE SAVEPOINT "+name)
	return err
}
