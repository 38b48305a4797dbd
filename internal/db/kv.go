package db

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// KeyInfo describes one stored key
type KeyInfo struct {
	Key       string
	Size      int
	UpdatedAt time.Time
}

// Get returns the value stored under key, or def when the key is absent
func (db *DB) Get(key, def string) (string, error) {
	var value string
	err := db.conn.QueryRow(`SELECT value FROM workspace_state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return def, nil
	}
	if err != nil {
		return def, fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

// Update stores value under key, replacing any previous value
func (db *DB) Update(key, value string) error {
	return db.withWriteLock(func() error {
		_, err := db.conn.Exec(`
			INSERT INTO workspace_state (key, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`, key, value, time.Now().UTC().Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("update %s: %w", key, err)
		}
		slog.Debug("db: update", "key", key, "bytes", len(value))
		return nil
	})
}

// Delete removes key. Deleting a missing key is not an error.
func (db *DB) Delete(key string) error {
	return db.withWriteLock(func() error {
		if _, err := db.conn.Exec(`DELETE FROM workspace_state WHERE key = ?`, key); err != nil {
			return fmt.Errorf("delete %s: %w", key, err)
		}
		return nil
	})
}

// Keys lists stored keys in name order
func (db *DB) Keys() ([]KeyInfo, error) {
	rows, err := db.conn.Query(`SELECT key, length(value), updated_at FROM workspace_state ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []KeyInfo
	for rows.Next() {
		var info KeyInfo
		var updatedAt string
		if err := rows.Scan(&info.Key, &info.Size, &updatedAt); err != nil {
			return nil, err
		}
		info.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		keys = append(keys, info)
	}
	return keys, rows.Err()
}
