// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Backends

Two backends are supported through database/sql:

  - sqlite (modernc.org/sqlite, pure Go): the default, used by the test suite
  - postgres (github.com/lib/pq): selected with DATABASE_TYPE=postgres

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

Queries throughout the codebase use ? placeholders; db.Rebind converts them
to $N when the backend is postgres.

# Schema

	err := db.CreateSchema(conn)

Tables:

  - users: accounts keyed by lowercase username
  - user_joined_rooms / user_created_rooms: membership code lists
  - rooms: Q&A rooms keyed by code, admin fixed at creation
  - questions: per-room questions with vote_count and insertion seq
  - question_voters: the voter set backing each vote_count

Timestamps are unix seconds and booleans are stored as 0/1 integers so the
same DDL and DML run on both backends.
*/
package db
