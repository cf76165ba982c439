package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    username TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    is_admin INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS login_attempts (
    username TEXT PRIMARY KEY,
    failure_count INTEGER NOT NULL DEFAULT 0,
    locked_until INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS divisions (
    name TEXT PRIMARY KEY,
    revenue REAL NOT NULL,
    fixed_cost REAL NOT NULL,
    variable_cost REAL NOT NULL,
    position INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS allocation_settings (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    total_hq_cost REAL NOT NULL,
    fixed_ratio REAL NOT NULL,
    variable_ratio REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS allocation_shares (
    division TEXT PRIMARY KEY,
    fixed_share REAL NOT NULL,
    variable_share REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS cost_transfers (
    division TEXT PRIMARY KEY,
    fixed REAL NOT NULL DEFAULT 0,
    variable REAL NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_divisions_position ON divisions(position);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
