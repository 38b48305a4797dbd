package db

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const (
	// DirName is the per-workspace data directory
	DirName = ".wsmark"
	dbFile  = DirName + "/state.db"
)

// ErrNotInitialized is returned by Open when the workspace has no state.db
var ErrNotInitialized = errors.New("database not found: run 'wsmark init' first")

// pragmas applied to every connection, in order. WAL lets readers proceed
// while a writer holds the file lock; busy_timeout matches the lock timeout.
var pragmas = []struct {
	stmt     string
	required bool
}{
	{"PRAGMA journal_mode=WAL", true},
	{"PRAGMA busy_timeout=500", true},
	{"PRAGMA synchronous=NORMAL", false},
}

// DB is the workspace key/value store
type DB struct {
	conn    *sql.DB
	baseDir string
}

// Path returns the state.db location for a workspace
func Path(baseDir string) string {
	return filepath.Join(baseDir, dbFile)
}

// Open opens an existing workspace store and brings its schema up to date
func Open(baseDir string) (*DB, error) {
	if _, err := os.Stat(Path(baseDir)); errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotInitialized
	}
	return open(baseDir, false)
}

// Initialize creates .wsmark/state.db if needed and migrates it
func Initialize(baseDir string) (*DB, error) {
	if err := os.MkdirAll(filepath.Join(baseDir, DirName), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	return open(baseDir, true)
}

func open(baseDir string, create bool) (*DB, error) {
	conn, err := sql.Open("sqlite", Path(baseDir))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	for _, p := range pragmas {
		if _, err := conn.Exec(p.stmt); err != nil && p.required {
			conn.Close()
			return nil, fmt.Errorf("%s: %w", p.stmt, err)
		}
	}
	if create {
		if _, err := conn.Exec(schema); err != nil {
			conn.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}

	db := &DB{conn: conn, baseDir: baseDir}
	if _, err := db.RunMigrations(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return db, nil
}

// Close closes the database
func (db *DB) Close() error {
	return db.conn.Close()
}

// BaseDir returns the workspace root the store belongs to
func (db *DB) BaseDir() string {
	return db.baseDir
}

// withWriteLock runs fn holding the cross-process write lock
func (db *DB) withWriteLock(fn func() error) error {
	locker := newWriteLocker(db.baseDir)
	if err := locker.acquire(defaultTimeout); err != nil {
		return err
	}
	defer locker.release()
	return fn()
}
