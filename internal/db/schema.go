package db

// SchemaVersion is the current database schema version
const SchemaVersion = 2

const schema = `
-- Workspace key/value state (status, flow, reminder, hotpoints)
CREATE TABLE IF NOT EXISTS workspace_state (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL DEFAULT '',
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Schema info
CREATE TABLE IF NOT EXISTS schema_info (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// Migration defines a database migration
type Migration struct {
	Version     int
	Description string
	SQL         string
}

// Migrations is the list of all database migrations in order
var Migrations = []Migration{
	// Version 1 is the initial schema - no migration needed
	{
		Version:     2,
		Description: "Add updated_at to workspace_state",
		SQL:         `ALTER TABLE workspace_state ADD COLUMN updated_at DATETIME NOT NULL DEFAULT '1970-01-01T00:00:00Z';`,
	},
}
