// Package sqlstore implements the domain repositories on database/sql. The
// same repository code serves both backends: statements use $1-style
// placeholders, which SQLite and PostgreSQL both accept, and timestamps are
// stored as fixed-width RFC3339 text so lexicographic order is
// chronological order.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// timeLayout pads fractional seconds to nanosecond width so stored strings
// compare like the instants they encode.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// DB wraps a *sql.DB and carries the repository implementations.
type DB struct {
	sql *sql.DB
}

// OpenSQLite opens (creating if needed) a file-backed SQLite store at path
// and runs the idempotent schema setup. Foreign keys are enabled per
// connection via the DSN pragma.
func OpenSQLite(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	s, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// SQLite allows one writer; a single pooled connection avoids
	// SQLITE_BUSY churn under concurrent requests.
	s.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx, sqliteSchema); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// OpenPostgres connects to PostgreSQL, pings, and runs the idempotent
// schema setup.
func OpenPostgres(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx, postgresSchema); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context, stmts []string) error {
	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		initial_weight REAL,
		goal_weight REAL
	);`,
	`CREATE TABLE IF NOT EXISTS groups (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS user_group_relations (
		user_id INTEGER NOT NULL,
		group_id INTEGER NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE,
		FOREIGN KEY (group_id) REFERENCES groups (id) ON DELETE CASCADE,
		PRIMARY KEY (user_id, group_id)
	);`,
	`CREATE TABLE IF NOT EXISTS weight_records (
		user_id INTEGER NOT NULL,
		weight REAL NOT NULL,
		created_at TEXT NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users (id),
		PRIMARY KEY (user_id, created_at)
	);`,
	`CREATE TABLE IF NOT EXISTS reports (
		created_at TEXT NOT NULL,
		user_id INTEGER NOT NULL,
		group_id INTEGER NOT NULL,
		weight REAL NOT NULL,
		comment TEXT,
		FOREIGN KEY (user_id) REFERENCES users (id),
		FOREIGN KEY (group_id) REFERENCES groups (id),
		PRIMARY KEY (created_at, user_id, group_id)
	);`,
	`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		created_at TEXT NOT NULL
	);`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		initial_weight DOUBLE PRECISION,
		goal_weight DOUBLE PRECISION
	);`,
	`CREATE TABLE IF NOT EXISTS groups (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS user_group_relations (
		user_id BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		group_id BIGINT NOT NULL REFERENCES groups (id) ON DELETE CASCADE,
		PRIMARY KEY (user_id, group_id)
	);`,
	`CREATE TABLE IF NOT EXISTS weight_records (
		user_id BIGINT NOT NULL REFERENCES users (id),
		weight DOUBLE PRECISION NOT NULL,
		created_at TEXT NOT NULL,
		PRIMARY KEY (user_id, created_at)
	);`,
	`CREATE TABLE IF NOT EXISTS reports (
		created_at TEXT NOT NULL,
		user_id BIGINT NOT NULL REFERENCES users (id),
		group_id BIGINT NOT NULL REFERENCES groups (id),
		weight DOUBLE PRECISION NOT NULL,
		comment TEXT,
		PRIMARY KEY (created_at, user_id, group_id)
	);`,
	`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		created_at TEXT NOT NULL
	);`,
}

func formatTime(t time.Time) string {
	return t.Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
