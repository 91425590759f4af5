// Package postgres provides the optional SQL-backed playlist storage.
package postgres

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

func Connect(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return db, nil
}

// EnsureSchema creates the playlists table when it does not exist. The
// deployment has no migration tooling; the single table is bootstrapped here.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	const q = `
		CREATE TABLE IF NOT EXISTS playlists (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			songs       JSONB NOT NULL DEFAULT '[]'
		)
	`
	if _, err := db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("ensure playlists schema: %w", err)
	}
	return nil
}
