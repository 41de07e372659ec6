package db

import (
	"database/sql"
	"fmt"
)

// migrations is an ordered list of SQL migration statements.
// Each entry is applied once in order. New migrations are appended at the end.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS files (
		id                TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(16)))),
		path              TEXT NOT NULL UNIQUE,
		content_hash      TEXT NOT NULL,
		instruction_count INTEGER NOT NULL DEFAULT 0,
		indexed_at        DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS instructions (
		file_id  TEXT NOT NULL REFERENCES files(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		command  TEXT NOT NULL,
		args     TEXT NOT NULL DEFAULT '[]',
		PRIMARY KEY (file_id, position)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_instructions_command ON instructions(command)`,
	`CREATE INDEX IF NOT EXISTS idx_files_path           ON files(path)`,
}

// applyMigrations runs any migrations that have not yet been applied.
func applyMigrations(conn *sql.DB) error {
	if _, err := conn.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	for i, stmt := range migrations {
		var count int
		row := conn.QueryRow(`SELECT COUNT(*) FROM schema_migrations WHERE version = ?`, i)
		if err := row.Scan(&count); err != nil {
			return fmt.Errorf("check migration %d: %w", i, err)
		}
		if count > 0 {
			continue
		}

		if _, err := conn.Exec(stmt); err != nil {
			return fmt.Errorf("apply migration %d: %w", i, err)
		}

		if _, err := conn.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, i); err != nil {
			return fmt.Errorf("record migration %d: %w", i, err)
		}
	}

	return nil
}
