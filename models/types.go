// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Validation limits
const (
	MaxUsernameLen = 15
	MaxRoomCodeLen = 10
	MinPasswordLen = 8
)

// AnonymousSender is the fixed placeholder stored as sender_name when the
// client chose to hide the submitter's username. The server treats it as an
// ordinary sender string; anonymity is decided entirely client-side.
const AnonymousSender = "Anonymous"

// Request types

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateRoomRequest struct {
	Code string `json:"code"`
}

type SubmitQuestionRequest struct {
	Content string `json:"content"`
	// Anonymous replaces the sender's username with AnonymousSender.
	Anonymous bool `json:"anonymous"`
}

type AnswerQuestionRequest struct {
	Answer string `json:"answer"`
}

// Response types

type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

type AccountResponse struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt int64  `json:"created_at"`
}

type RoomExistsResponse struct {
	// Code echoes the probed code so callers with overlapping in-flight
	// probes can discard responses for stale input.
	Code   string `json:"code"`
	Exists bool   `json:"exists"`
}

type UserRoomsResponse struct {
	Joined  []Room `json:"joined"`
	Created []Room `json:"created"`
}

type SubmitQuestionResponse struct {
	QuestionID string `json:"question_id"`
}

type VoteResponse struct {
	QuestionID string `json:"question_id"`
	VoteCount  int    `json:"vote_count"`
	Voted      bool   `json:"voted"`
}

// Domain types

type Room struct {
	Code      string `json:"code"`
	Admin     string `json:"admin"`
	CreatedAt int64  `json:"created_at"`
}

// RoomInfo is the detail view of a room: the room record plus the distinct
// sender names that have submitted questions to it.
type RoomInfo struct {
	Room    Room     `json:"room"`
	Senders []string `json:"senders"`
}

type Question struct {
	ID         string   `json:"id"`
	RoomCode   string   `json:"room_code"`
	Content    string   `json:"content"`
	VoteCount  int      `json:"vote_count"`
	IsAnswered bool     `json:"is_answered"`
	SenderName string   `json:"sender_name"`
	Answer     string   `json:"answer,omitempty"`
	Voters     []string `json:"voters"`
	CreatedAt  int64    `json:"created_at"`

	// Seq is the per-room insertion counter used to break vote-count ties.
	Seq int64 `json:"-"`
}

type Account struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Never expose in JSON
	CreatedAt    int64  `json:"created_at"`
}

// Snapshot is one delivery on a room's question stream: the full current
// question set, already sorted by vote count (ties by insertion order).
type Snapshot struct {
	RoomCode  string     `json:"room_code"`
	Questions []Question `json:"questions"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}
