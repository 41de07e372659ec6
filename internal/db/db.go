// Package db opens the SQLite catalog database and keeps its schema current.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/boxcode/boxutil/internal/config"
)

// DB is the open catalog of one project root.
type DB struct {
	conn *sql.DB
	path string
}

// Open opens (or creates) the catalog under root/.boxutil and applies
// migrations.
func Open(root string) (*DB, error) {
	path, err := filepath.Abs(config.CatalogPath(root))
	if err != nil {
		return nil, fmt.Errorf("resolve catalog path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create catalog directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000", path)
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}

	// index and find may run concurrently with mcp; one writer at a time.
	conn.SetMaxOpenConns(1)

	if err := applyMigrations(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate catalog %s: %w", path, err)
	}

	return &DB{conn: conn, path: path}, nil
}

// Conn returns the underlying *sql.DB for use by the catalog store.
func (d *DB) Conn() *sql.DB {
	return d.conn
}

// Path is the absolute location of the catalog file.
func (d *DB) Path() string {
	return d.path
}

func (d *DB) Close() error {
	return d.conn.Close()
}
