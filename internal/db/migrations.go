package db

import (
	"database/sql"
	"fmt"
)

// migrations is an ordered list of idempotent schema statements.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS analyses (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id         TEXT    NOT NULL UNIQUE,
		name           TEXT    NOT NULL,
		language       TEXT    NOT NULL,
		total_comments INTEGER NOT NULL DEFAULT 0,
		coverage       REAL    NOT NULL DEFAULT 0,
		counters_json  TEXT    NOT NULL,
		summary_json   TEXT    NOT NULL,
		created_at     DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		analysis_id INTEGER NOT NULL REFERENCES analyses(id) ON DELETE CASCADE,
		start_line  INTEGER NOT NULL,
		end_line    INTEGER NOT NULL,
		kind        TEXT    NOT NULL CHECK (kind IN ('single_line', 'multi_line')),
		text        TEXT    NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_analysis ON comments(analysis_id, start_line)`,
	`CREATE TABLE IF NOT EXISTS words (
		analysis_id INTEGER NOT NULL REFERENCES analyses(id) ON DELETE CASCADE,
		word        TEXT    NOT NULL,
		count       INTEGER NOT NULL,
		PRIMARY KEY (analysis_id, word)
	)`,
}

// columnMigrations add columns introduced after the first schema.
var columnMigrations = []struct {
	table, column, definition string
}{
	{"analyses", "flush_unterminated", "INTEGER NOT NULL DEFAULT 0"},
	{"analyses", "count_open_lines", "INTEGER NOT NULL DEFAULT 0"},
}

// migrate runs all migrations in order.
func migrate(db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}

	for _, cm := range columnMigrations {
		if err := addColumnIfNotExists(db, cm.table, cm.column, cm.definition); err != nil {
			return fmt.Errorf("adding %s.%s: %w", cm.table, cm.column, err)
		}
	}

	return nil
}

// addColumnIfNotExists adds a column to a table if it doesn't already exist.
func addColumnIfNotExists(db *sql.DB, table, column, definition string) error {
	exists, err := hasColumn(db, table, column)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	_, err = db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, definition))
	return err
}

func hasColumn(db *sql.DB, table, column string) (found bool, err error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("checking table info: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", cerr)
		}
	}()

	for rows.Next() {
		var cid, notNull, pk int
		var name, colType string
		var dflt interface{}
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return false, fmt.Errorf("scanning column info: %w", err)
		}
		if name == column {
			return true, nil
		}
	}
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("iterating columns: %w", err)
	}
	return false, nil
}
