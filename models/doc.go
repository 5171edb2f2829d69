// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the Askup API.

# Domain Types

  - Account: registered user {username, email, password hash, created_at}
  - Room: admin-owned Q&A session keyed by a short code
  - Question: one audience question with its voters and vote count
  - Snapshot: full sorted question set for a room, one per stream delivery

# Keys and Identity

Usernames are lowercase, trimmed, and at most MaxUsernameLen characters;
they are the account's primary key. Room codes are case-sensitive and at
most MaxRoomCodeLen characters; they are the room's primary key and never
change. Question IDs are server-assigned UUIDs.

# Invariants

A question's VoteCount always equals the size of its Voters set; the store
maintains this inside the vote-toggle transaction. A room's Admin is fixed
at creation.

# JSON Hygiene

PasswordHash and the internal Seq tie-break counter are never serialized.
*/
package models
