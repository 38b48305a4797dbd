package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
)

// columnExists reports whether table has a column with the given name
func (db *DB) columnExists(table, column string) (bool, error) {
	var n int
	err := db.conn.QueryRow(
		`SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`, table, column,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("table info %s: %w", table, err)
	}
	return n > 0, nil
}

// GetSchemaVersion returns the recorded schema version, 0 when none is stored
func (db *DB) GetSchemaVersion() (int, error) {
	var raw string
	err := db.conn.QueryRow(`SELECT value FROM schema_info WHERE key = 'version'`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		// schema_info missing means a pre-migration database
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse schema version %q: %w", raw, err)
	}
	return v, nil
}

func (db *DB) setSchemaVersion(version int) error {
	_, err := db.conn.Exec(`INSERT OR REPLACE INTO schema_info (key, value) VALUES ('version', ?)`,
		strconv.Itoa(version))
	if err != nil {
		return fmt.Errorf("set version %d: %w", version, err)
	}
	return nil
}

// RunMigrations applies pending migrations under the write lock and returns
// how many ran
func (db *DB) RunMigrations() (int, error) {
	if current, _ := db.GetSchemaVersion(); current >= SchemaVersion {
		return 0, nil
	}

	var n int
	err := db.withWriteLock(func() error {
		var err error
		n, err = db.runMigrationsInternal()
		return err
	})
	return n, err
}

// applied reports whether a migration's effect is already in the schema.
// Fresh databases are created from the current schema and only need the
// version bump.
func (db *DB) applied(m Migration) (bool, error) {
	switch m.Version {
	case 2:
		return db.columnExists("workspace_state", "updated_at")
	}
	return false, nil
}

// runMigrationsInternal applies migrations; the caller holds the write lock
func (db *DB) runMigrationsInternal() (int, error) {
	if _, err := db.conn.Exec(`CREATE TABLE IF NOT EXISTS schema_info (key TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		return 0, fmt.Errorf("create schema_info: %w", err)
	}

	current, err := db.GetSchemaVersion()
	if err != nil {
		return 0, fmt.Errorf("get schema version: %w", err)
	}

	run := 0
	for _, m := range Migrations {
		if m.Version <= current {
			continue
		}
		done, err := db.applied(m)
		if err != nil {
			return run, err
		}
		if !done {
			if _, err := db.conn.Exec(m.SQL); err != nil {
				return run, fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
			}
			slog.Debug("db: migrated", "version", m.Version, "desc", m.Description)
		}
		if err := db.setSchemaVersion(m.Version); err != nil {
			return run, err
		}
		run++
	}

	if current == 0 && run == 0 {
		if err := db.setSchemaVersion(SchemaVersion); err != nil {
			return run, err
		}
	}
	return run, nil
}
