// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP API.

Handlers are thin: they parse and validate the request shape, call into the
store, and translate store errors onto HTTP status codes. Domain rules
(vote toggling, admin checks, ranking) live in the store package.

# Handler Groups

  - UserHandler: register, login, current account, logout
  - RoomHandler: create, existence probe, detail, join, leave, delete,
    per-user room lists
  - QuestionHandler: list, submit, vote toggle, delete, answer
  - StreamHandler: WebSocket snapshot stream for a room

# Error Mapping

Store sentinel errors map to HTTP statuses:

	ErrValidation     400 Bad Request
	ErrNotFound       404 Not Found
	ErrConflict       409 Conflict
	ErrPermission     403 Forbidden
	ErrPartialFailure 500 with code "partial_failure"

Anything else is a generic 500; the underlying error is logged, not leaked.
*/
package handlers
