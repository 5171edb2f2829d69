// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing and session token utilities.

# Passwords

Passwords are hashed with bcrypt at the default cost:

	hash, err := auth.HashPassword(password)
	err = auth.CheckPassword(hash, candidate)

# Session Tokens

Sessions are stateless JWTs signed with HMAC-SHA256. The manager is
constructed once with the server secret and issued-token lifetime:

	mgr := auth.NewJWTManager(cfg.JWTSecret, 24*time.Hour)
	token, err := mgr.Generate(username, email)
	claims, err := mgr.Validate(token)

Claims carry the username and email; the username is the account key and
is what handlers use for permission checks. Logout is a client-side token
discard; no server state is kept per session.

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(16)  // 32 hex characters
*/
package auth
