// Package db opens the SQLite store that holds analysis reports.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultPath returns the default database path: ~/.config/cmt/comments.db
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "cmt", "comments.db"), nil
}

// dsnParams are applied by the driver to every pooled connection, so
// foreign keys stay enforced whichever connection serves a query.
const dsnParams = "?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000"

// Open opens (or creates) the database at path and brings its schema up to date.
func Open(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
	}

	d, err := sql.Open("sqlite3", "file:"+path+dsnParams)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := d.Ping(); err != nil {
		return nil, closeWith(d, fmt.Errorf("connecting to database: %w", err))
	}

	if err := migrate(d); err != nil {
		return nil, closeWith(d, fmt.Errorf("running migrations: %w", err))
	}

	return d, nil
}

// closeWith closes d after a failed setup step and returns err, noting any
// close failure alongside it.
func closeWith(d *sql.DB, err error) error {
	if closeErr := d.Close(); closeErr != nil {
		return fmt.Errorf("%w (also failed to close: %v)", err, closeErr)
	}
	return err
}
