// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3319)
  - DatabaseURL: sqlite file path or PostgreSQL connection string
  - DatabaseType: "sqlite" (default) or "postgres"
  - JWTSecret: Secret for session token signing (required)
  - TokenTTLHours: Session token lifetime (default: 24)

# CLI Flags

	-p           Server port
	-d           Database URL / sqlite path
	-t           Database type
	-token-ttl   Token lifetime in hours
	-jwt-secret  Token signing secret

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	TOKEN_TTL_HOURS → -token-ttl
	JWT_SECRET      → -jwt-secret

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - JWT_SECRET must be provided
  - DATABASE_URL must be provided when DATABASE_TYPE is postgres
    (sqlite defaults to ./data/askup.db)
*/
package cliparse
