// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store implements the room registry, question board, and snapshot
fan-out over a SQL database.

# Room Registry

Rooms are created create-if-absent (first write wins on a code collision),
looked up by code, and deleted only by their admin. Membership code lists
(joined/created) are idempotent set operations. FetchUserRooms resolves
code lists to room records with concurrent lookups, silently dropping codes
whose room is gone.

# Question Board

Questions are submitted with trimmed non-empty content, voted on with a
toggle, deleted by the admin or the sender, and answered by the admin.
The voter set is the source of truth for vote_count: the toggle recomputes
the count from the set inside one transaction, so

	vote_count == |voters|

holds after every operation and the count can never go negative. Rankings
order by vote_count descending with ties broken by insertion order (seq).

# Snapshots

Subscribe opens a push stream of full sorted question sets for one room:
an initial snapshot at subscribe time, then one delivery after every
committed mutation in that room. Each subscriber has a buffer of one, so a
slow consumer sees coalesced snapshots rather than backpressure on writers.
Close is idempotent and nothing is delivered after it returns.

# Errors

Operations return sentinel-wrapped errors (ErrValidation, ErrNotFound,
ErrConflict, ErrPermission, ErrPartialFailure) matched with errors.Is.
ErrPartialFailure is reserved for "primary write landed, bookkeeping write
did not", currently only room deletion.
*/
package store
