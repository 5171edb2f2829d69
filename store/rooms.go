// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/danielhkuo/askup/models"
)

// ValidateRoomCode checks the shape of a room code: non-empty, at most
// MaxRoomCodeLen characters, no whitespace. Codes are case-sensitive.
func ValidateRoomCode(code string) error {
	if code == "" {
		return fmt.Errorf("%w: room code is required", ErrValidation)
	}
	if len(code) > models.MaxRoomCodeLen {
		return fmt.Errorf("%w: room code must be at most %d characters", ErrValidation, models.MaxRoomCodeLen)
	}
	if strings.IndexFunc(code, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: room code must not contain whitespace", ErrValidation)
	}
	return nil
}

// CreateRoom creates a room with the given admin. The rooms primary key makes
// this create-if-absent: when two creators race, the first write wins and the
// loser gets a conflict.
func (s *Store) CreateRoom(ctx context.Context, code, admin string) (*models.Room, error) {
	if err := ValidateRoomCode(code); err != nil {
		return nil, err
	}

	room := &models.Room{
		Code:      code,
		Admin:     admin,
		CreatedAt: time.Now().Unix(),
	}

	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO rooms (code, admin, created_at) VALUES (?, ?, ?)
	`), room.Code, room.Admin, room.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: room code already taken", ErrConflict)
		}
		return nil, fmt.Errorf("failed to insert room: %w", err)
	}

	return room, nil
}

// RoomExists probes for a room. An empty code short-circuits to false
// without touching the database.
func (s *Store) RoomExists(ctx context.Context, code string) (bool, error) {
	if code == "" {
		return false, nil
	}
	var exists bool
	err := s.db.QueryRowContext(ctx, s.q(`
		SELECT EXISTS(SELECT 1 FROM rooms WHERE code = ?)
	`), code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check room: %w", err)
	}
	return exists, nil
}

// GetRoom retrieves a room by code.
func (s *Store) GetRoom(ctx context.Context, code string) (*models.Room, error) {
	room := &models.Room{}
	err := s.db.QueryRowContext(ctx, s.q(`
		SELECT code, admin, created_at FROM rooms WHERE code = ?
	`), code).Scan(&room.Code, &room.Admin, &room.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: room not found", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return room, nil
}

// GetRoomInfo returns the room record plus the distinct sender names that
// have submitted questions to it.
func (s *Store) GetRoomInfo(ctx context.Context, code string) (*models.RoomInfo, error) {
	room, err := s.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT DISTINCT sender_name FROM questions WHERE room_code = ? ORDER BY sender_name
	`), code)
	if err != nil {
		return nil, fmt.Errorf("failed to get question senders: %w", err)
	}
	defer rows.Close()

	senders := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan sender: %w", err)
		}
		senders = append(senders, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate senders: %w", err)
	}

	return &models.RoomInfo{Room: *room, Senders: senders}, nil
}

// AddJoinedRoom adds a code to the user's joined list. Idempotent: adding a
// code already present is a no-op.
func (s *Store) AddJoinedRoom(ctx context.Context, code, username string) error {
	return s.addMembership(ctx, "user_joined_rooms", code, username)
}

// AddCreatedRoom adds a code to the user's created list. Idempotent.
func (s *Store) AddCreatedRoom(ctx context.Context, code, username string) error {
	return s.addMembership(ctx, "user_created_rooms", code, username)
}

// RemoveJoinedRoom removes a code from the user's joined list. Removing an
// absent code is a no-op.
func (s *Store) RemoveJoinedRoom(ctx context.Context, code, username string) error {
	_, err := s.db.ExecContext(ctx, s.q(`
		DELETE FROM user_joined_rooms WHERE username = ? AND room_code = ?
	`), username, code)
	if err != nil {
		return fmt.Errorf("failed to remove joined room: %w", err)
	}
	return nil
}

func (s *Store) addMembership(ctx context.Context, table, code, username string) error {
	_, err := s.db.ExecContext(ctx, s.q(fmt.Sprintf(`
		INSERT INTO %s (username, room_code) VALUES (?, ?) ON CONFLICT DO NOTHING
	`, table)), username, code)
	if err != nil {
		return fmt.Errorf("failed to add room to %s: %w", table, err)
	}
	return nil
}

// DeleteCreatedRoom deletes a room owned by username. The room delete and the
// created-list cleanup are separate writes; if the room is gone but the list
// update fails, the error wraps ErrPartialFailure so callers can tell the
// bookkeeping is stale rather than the whole operation having failed.
func (s *Store) DeleteCreatedRoom(ctx context.Context, code, username string) error {
	room, err := s.GetRoom(ctx, code)
	if err != nil {
		return err
	}
	if room.Admin != username {
		return fmt.Errorf("%w: only the room admin can delete it", ErrPermission)
	}

	if _, err := s.db.ExecContext(ctx, s.q(`DELETE FROM rooms WHERE code = ?`), code); err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}

	// The room is gone; drop its subscribers before the bookkeeping write so
	// they never observe a deleted room's snapshot.
	s.hub.dropRoom(code)

	_, err = s.db.ExecContext(ctx, s.q(`
		DELETE FROM user_created_rooms WHERE username = ? AND room_code = ?
	`), username, code)
	if err != nil {
		return fmt.Errorf("%w: room deleted but created-room list not updated: %v", ErrPartialFailure, err)
	}

	return nil
}

// FetchUserRooms reads the user's joined and created code lists and resolves
// each code to a full room record with concurrent lookups. Codes whose room
// has been deleted are silently dropped.
func (s *Store) FetchUserRooms(ctx context.Context, username string) (*models.UserRoomsResponse, error) {
	joinedCodes, err := s.membershipCodes(ctx, "user_joined_rooms", username)
	if err != nil {
		return nil, err
	}
	createdCodes, err := s.membershipCodes(ctx, "user_created_rooms", username)
	if err != nil {
		return nil, err
	}

	return &models.UserRoomsResponse{
		Joined:  s.resolveRooms(ctx, joinedCodes),
		Created: s.resolveRooms(ctx, createdCodes),
	}, nil
}

func (s *Store) membershipCodes(ctx context.Context, table, username string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, s.q(fmt.Sprintf(`
		SELECT room_code FROM %s WHERE username = ?
	`, table)), username)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", table, err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("failed to scan room code: %w", err)
		}
		codes = append(codes, code)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate room codes: %w", err)
	}
	return codes, nil
}

// resolveRooms fans out one lookup per code. A failed lookup drops the code
// instead of failing the fetch.
func (s *Store) resolveRooms(ctx context.Context, codes []string) []models.Room {
	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		rooms = []models.Room{}
	)

	for _, code := range codes {
		wg.Add(1)
		go func(code string) {
			defer wg.Done()
			room, err := s.GetRoom(ctx, code)
			if err != nil {
				return
			}
			mu.Lock()
			rooms = append(rooms, *room)
			mu.Unlock()
		}(code)
	}
	wg.Wait()

	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Code < rooms[j].Code })
	return rooms
}
