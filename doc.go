// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the askup API server.

Askup is a live Q&A service: an admin opens a room under a short code,
participants join by code, submit questions, and upvote the ones they want
answered. Questions rank by votes, the admin answers the top one, and every
connected client sees the board update live.

# Starting the Server

The server requires a JWT secret; everything else has defaults:

	JWT_SECRET=... go run main.go

Or with flags:

	go run main.go -p 3319 -t sqlite -d ./data/askup.db -jwt-secret ...

A .env file in the working directory is loaded if present.

# Configuration

Required settings:

  - JWT_SECRET (-jwt-secret): Secret for session token signing

Optional settings:

  - PORT (-p): Server port (default: 3319)
  - DATABASE_TYPE (-t): "sqlite" or "postgres" (default: sqlite)
  - DATABASE_URL (-d): sqlite file path or postgres connection string
  - TOKEN_TTL_HOURS (-token-ttl): Session token lifetime (default: 24)
  - LOG_LEVEL: debug, info, warn, or error (default: info)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (accounts, rooms, questions, stream)
  - router: Route definitions using Go 1.22+ routing
  - middleware: auth, CORS, logging, metrics, JSON helpers
  - store: domain logic over SQL plus the in-process snapshot hub
  - models: Request/response and domain types
  - auth: password hashing and JWT sessions
  - db: connection setup and schema creation
  - cliparse: Configuration parsing
  - logging: slog handler setup
  - metrics: Prometheus collectors

See package documentation for each component.
*/
package main
