// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/danielhkuo/askup/db"
)

// Error taxonomy. Callers match with errors.Is; the wrapped message carries
// the user-facing detail.
var (
	ErrValidation     = errors.New("validation failed")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("already exists")
	ErrPermission     = errors.New("permission denied")
	ErrPartialFailure = errors.New("partial failure")
)

// Store implements the room registry and question board on top of a SQL
// database, and fans out question snapshots to stream subscribers.
type Store struct {
	db     *sql.DB
	dbType string
	hub    *hub
}

// New wraps an opened database connection. dbType selects placeholder
// rebinding ("sqlite" or "postgres").
func New(conn *sql.DB, dbType string) *Store {
	return &Store{
		db:     conn,
		dbType: dbType,
		hub:    newHub(),
	}
}

// Close releases the underlying database connection and closes all
// active subscriptions.
func (s *Store) Close() error {
	s.hub.closeAll()
	return s.db.Close()
}

// q rebinds ? placeholders for the active backend.
func (s *Store) q(query string) string {
	return db.Rebind(s.dbType, query)
}

// isUniqueViolation reports whether err is a primary-key or unique-constraint
// failure from either backend.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
