// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo, which means a C compiler is needed and
// cross-compilation becomes painful. modernc.org/sqlite is a pure Go
// translation of the SQLite C code — works everywhere Go works.
//
// The DB type wraps a sql.DB connection pool and implements every
// repository interface (users, contributions, resumes, resources), so the
// server wires one value into all the services.
package sqlite

import (
	"database/sql"
	"fmt"

	// Blank import registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and provides repository methods.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
//
// dbPath examples:
//   - "data/forgemycode.db"  → file-based database (persistent)
//   - ":memory:"             → in-memory database (tests, lost on close)
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Force an immediate connection so a bad path or permissions problem
	// surfaces here instead of on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL mode allows concurrent reads while a write is in flight, which a
	// web server needs. Foreign keys are off by default in SQLite.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool. Defer this wherever New is
// called so the WAL is flushed and the file lock released on shutdown.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps it
// idempotent — safe to run on every start.
func (db *DB) migrate() error {
	// Users. github_id is UNIQUE but nullable: password users have no
	// GitHub identity, and SQLite UNIQUE indexes ignore NULLs.
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id              TEXT PRIMARY KEY,
			username        TEXT NOT NULL UNIQUE,
			password_hash   TEXT NOT NULL DEFAULT '',
			display_name    TEXT NOT NULL DEFAULT '',
			role            TEXT NOT NULL DEFAULT '',
			avatar_initials TEXT NOT NULL DEFAULT '',
			avatar_url      TEXT NOT NULL DEFAULT '',
			level           TEXT NOT NULL DEFAULT 'beginner',
			level_progress  INTEGER NOT NULL DEFAULT 0,
			github_id       INTEGER UNIQUE,
			created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	// Contributions. The UNIQUE(user_id, issue_id) constraint enforces
	// at-most-one record per (user, issue) pair at the storage layer, so
	// find-then-create races cannot produce duplicates.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS contributions (
			id           TEXT PRIMARY KEY,
			user_id      TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			issue_id     TEXT NOT NULL,
			repository   TEXT NOT NULL DEFAULT '',
			title        TEXT NOT NULL DEFAULT '',
			description  TEXT NOT NULL DEFAULT '',
			url          TEXT NOT NULL DEFAULT '',
			labels       TEXT NOT NULL DEFAULT '[]',
			saved        INTEGER NOT NULL DEFAULT 0,
			completed    INTEGER NOT NULL DEFAULT 0,
			pr_url       TEXT NOT NULL DEFAULT '',
			summary      TEXT NOT NULL DEFAULT '',
			created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			completed_at DATETIME,
			UNIQUE (user_id, issue_id)
		);
		CREATE INDEX IF NOT EXISTS idx_contributions_user_id ON contributions(user_id);
	`)
	if err != nil {
		return fmt.Errorf("creating contributions table: %w", err)
	}

	// Resumes. One per user — user_id is UNIQUE so upserts can key on it.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS resumes (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
			title      TEXT NOT NULL DEFAULT '',
			summary    TEXT NOT NULL DEFAULT '',
			skills     TEXT NOT NULL DEFAULT '',
			experience TEXT NOT NULL DEFAULT '',
			education  TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating resumes table: %w", err)
	}

	// Learning resources.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS resources (
			id          TEXT PRIMARY KEY,
			title       TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			image_url   TEXT NOT NULL DEFAULT '',
			link        TEXT NOT NULL,
			category    TEXT NOT NULL DEFAULT '',
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_resources_category ON resources(category);
	`)
	if err != nil {
		return fmt.Errorf("creating resources table: %w", err)
	}

	return nil
}
