// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/lib/pq"          // postgres driver
	_ "modernc.org/sqlite"         // pure Go sqlite driver (no CGO)
)

// Open connects to the configured database. dbType is "sqlite" or "postgres";
// url is a file path for sqlite or a connection string for postgres.
func Open(dbType, url string) (*sql.DB, error) {
	switch dbType {
	case "sqlite":
		if dir := filepath.Dir(url); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		conn, err := sql.Open("sqlite", url)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		// sqlite allows a single writer; serializing connections avoids
		// SQLITE_BUSY under concurrent handlers.
		conn.SetMaxOpenConns(1)
		if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
		return conn, nil
	case "postgres":
		conn, err := sql.Open("postgres", url)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres database: %w", err)
		}
		return conn, nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", dbType)
	}
}

// Rebind converts ? placeholders to $1..$N for postgres. Queries are written
// in the ? style; sqlite takes them as-is.
func Rebind(dbType, query string) string {
	if dbType != "postgres" {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Timestamps are unix seconds (INTEGER) and booleans are 0/1 (INTEGER) so the
// same statements run on both sqlite and postgres.
const schema = `
-- Accounts, keyed by lowercase username
CREATE TABLE IF NOT EXISTS users (
    username TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

-- Membership lists. No foreign key on room_code: a joined code may refer to
-- a room deleted by its admin, and room resolution drops such codes at read
-- time instead of cascading into every member's list.
CREATE TABLE IF NOT EXISTS user_joined_rooms (
    username TEXT NOT NULL REFERENCES users(username) ON DELETE CASCADE,
    room_code TEXT NOT NULL,
    PRIMARY KEY (username, room_code)
);

CREATE TABLE IF NOT EXISTS user_created_rooms (
    username TEXT NOT NULL REFERENCES users(username) ON DELETE CASCADE,
    room_code TEXT NOT NULL,
    PRIMARY KEY (username, room_code)
);

-- Rooms, keyed by their case-sensitive code. The primary key makes room
-- creation first-write-wins: a duplicate create fails instead of overwriting.
CREATE TABLE IF NOT EXISTS rooms (
    code TEXT PRIMARY KEY,
    admin TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

-- Questions. seq is a per-room insertion counter assigned in the insert
-- transaction; ranking orders by vote_count DESC, seq ASC.
CREATE TABLE IF NOT EXISTS questions (
    id TEXT PRIMARY KEY,
    room_code TEXT NOT NULL REFERENCES rooms(code) ON DELETE CASCADE,
    content TEXT NOT NULL,
    vote_count INTEGER NOT NULL DEFAULT 0,
    is_answered INTEGER NOT NULL DEFAULT 0,
    sender_name TEXT NOT NULL,
    answer TEXT,
    seq INTEGER NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_questions_room ON questions(room_code);

-- Voter sets. vote_count on questions is kept equal to the row count here
-- inside the vote-toggle transaction.
CREATE TABLE IF NOT EXISTS question_voters (
    question_id TEXT NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
    username TEXT NOT NULL,
    PRIMARY KEY (question_id, username)
);
`
