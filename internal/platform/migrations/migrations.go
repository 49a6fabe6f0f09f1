// Package migrations applies the database schema at startup.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
)

// statements are executed in order. Each must be idempotent so restarts are
// safe without a schema version table.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS account (
		account_id SERIAL PRIMARY KEY,
		username VARCHAR(255) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS message (
		message_id SERIAL PRIMARY KEY,
		posted_by INTEGER NOT NULL REFERENCES account(account_id),
		message_text VARCHAR(255) NOT NULL,
		time_posted_epoch BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_message_posted_by ON message (posted_by)`,
}

// Apply executes every migration statement in order.
func Apply(ctx context.Context, db *sql.DB) error {
	for i, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	return nil
}
