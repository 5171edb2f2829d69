// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the askup API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(store, cfg)

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

Accounts:

	POST /auth/register - Create account, returns session token
	POST /auth/login    - Exchange credentials for a token
	GET  /auth/me       - Current account (authenticated)
	POST /auth/logout   - Discard session (authenticated)

Rooms:

	GET    /rooms/{code}/exists - Existence probe (public)
	POST   /rooms               - Create room, creator becomes admin
	GET    /rooms/mine          - Joined and created room lists
	GET    /rooms/{code}        - Room detail with sender names
	DELETE /rooms/{code}        - Delete room (admin only)
	POST   /rooms/{code}/join   - Add to joined list (idempotent)
	POST   /rooms/{code}/leave  - Remove from joined list

Question board:

	GET    /rooms/{code}/questions             - Ranked question list
	POST   /rooms/{code}/questions             - Submit question
	POST   /rooms/{code}/questions/{id}/vote   - Toggle vote
	DELETE /rooms/{code}/questions/{id}        - Delete (admin or sender)
	POST   /rooms/{code}/questions/{id}/answer - Answer (admin only)

Live updates:

	GET /rooms/{code}/stream - WebSocket snapshot stream

All routes except /health, /metrics, /, and the existence probe require a
session token: Authorization: Bearer or ?token= for WebSocket clients.

# Handler Initialization

The router creates handler instances with dependency injection:

	userHandler := handlers.NewUserHandler(store, jwt)
	roomHandler := handlers.NewRoomHandler(store)
	questionHandler := handlers.NewQuestionHandler(store)
	streamHandler := handlers.NewStreamHandler(store)
*/
package router
