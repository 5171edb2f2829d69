// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/askup/models"
)

// SubmitQuestion adds a question to a room. Content is trimmed; empty or
// whitespace-only content is rejected before any write. senderName is
// whatever the caller resolved: the real username or the anonymization
// placeholder.
func (s *Store) SubmitQuestion(ctx context.Context, roomCode, content, senderName string) (*models.Question, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: question content is required", ErrValidation)
	}

	exists, err := s.RoomExists(ctx, roomCode)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: room not found", ErrNotFound)
	}

	question := &models.Question{
		ID:         uuid.New().String(),
		RoomCode:   roomCode,
		Content:    content,
		SenderName: senderName,
		Voters:     []string{},
		CreatedAt:  time.Now().Unix(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// seq is assigned inside the transaction so insertion order is total
	// per room even under concurrent submissions.
	err = tx.QueryRowContext(ctx, s.q(`
		SELECT COALESCE(MAX(seq), 0) + 1 FROM questions WHERE room_code = ?
	`), roomCode).Scan(&question.Seq)
	if err != nil {
		return nil, fmt.Errorf("failed to assign question seq: %w", err)
	}

	_, err = tx.ExecContext(ctx, s.q(`
		INSERT INTO questions (id, room_code, content, vote_count, is_answered, sender_name, answer, seq, created_at)
		VALUES (?, ?, ?, 0, 0, ?, NULL, ?, ?)
	`), question.ID, question.RoomCode, question.Content, question.SenderName, question.Seq, question.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert question: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.notify(roomCode)
	return question, nil
}

// ToggleVote flips username's membership in the question's voter set and
// recomputes the vote count from the set inside the same transaction, so
// vote_count == |voters| holds regardless of interleaving. Returns the new
// count and whether the user is now a voter.
func (s *Store) ToggleVote(ctx context.Context, roomCode, questionID, username string) (int, bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx, s.q(`
		SELECT EXISTS(SELECT 1 FROM questions WHERE id = ? AND room_code = ?)
	`), questionID, roomCode).Scan(&exists)
	if err != nil {
		return 0, false, fmt.Errorf("failed to check question: %w", err)
	}
	if !exists {
		return 0, false, fmt.Errorf("%w: question not found", ErrNotFound)
	}

	var voted bool
	err = tx.QueryRowContext(ctx, s.q(`
		SELECT EXISTS(SELECT 1 FROM question_voters WHERE question_id = ? AND username = ?)
	`), questionID, username).Scan(&voted)
	if err != nil {
		return 0, false, fmt.Errorf("failed to check voter: %w", err)
	}

	if voted {
		_, err = tx.ExecContext(ctx, s.q(`
			DELETE FROM question_voters WHERE question_id = ? AND username = ?
		`), questionID, username)
	} else {
		_, err = tx.ExecContext(ctx, s.q(`
			INSERT INTO question_voters (question_id, username) VALUES (?, ?)
		`), questionID, username)
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to toggle voter: %w", err)
	}

	_, err = tx.ExecContext(ctx, s.q(`
		UPDATE questions
		SET vote_count = (SELECT COUNT(*) FROM question_voters WHERE question_id = ?)
		WHERE id = ?
	`), questionID, questionID)
	if err != nil {
		return 0, false, fmt.Errorf("failed to update vote count: %w", err)
	}

	var count int
	err = tx.QueryRowContext(ctx, s.q(`
		SELECT vote_count FROM questions WHERE id = ?
	`), questionID).Scan(&count)
	if err != nil {
		return 0, false, fmt.Errorf("failed to read vote count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.notify(roomCode)
	return count, !voted, nil
}

// DeleteQuestion permanently removes a question. Permitted for the room
// admin or the question's original sender.
func (s *Store) DeleteQuestion(ctx context.Context, roomCode, questionID, requester string) error {
	room, err := s.GetRoom(ctx, roomCode)
	if err != nil {
		return err
	}

	var sender string
	err = s.db.QueryRowContext(ctx, s.q(`
		SELECT sender_name FROM questions WHERE id = ? AND room_code = ?
	`), questionID, roomCode).Scan(&sender)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: question not found", ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to get question: %w", err)
	}

	if requester != room.Admin && requester != sender {
		return fmt.Errorf("%w: only the room admin or the sender can delete a question", ErrPermission)
	}

	if _, err := s.db.ExecContext(ctx, s.q(`DELETE FROM questions WHERE id = ?`), questionID); err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}

	s.notify(roomCode)
	return nil
}

// AnswerQuestion records the admin's answer and marks the question answered.
// Only the room admin may answer, and an answered question stays answered.
// Which question is "top-ranked" is a client-side presentation rule and is
// deliberately not checked here.
func (s *Store) AnswerQuestion(ctx context.Context, roomCode, questionID, requester, answer string) error {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return fmt.Errorf("%w: answer text is required", ErrValidation)
	}

	room, err := s.GetRoom(ctx, roomCode)
	if err != nil {
		return err
	}
	if requester != room.Admin {
		return fmt.Errorf("%w: only the room admin can answer questions", ErrPermission)
	}

	var answered int
	err = s.db.QueryRowContext(ctx, s.q(`
		SELECT is_answered FROM questions WHERE id = ? AND room_code = ?
	`), questionID, roomCode).Scan(&answered)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: question not found", ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to get question: %w", err)
	}
	if answered != 0 {
		return fmt.Errorf("%w: question is already answered", ErrConflict)
	}

	_, err = s.db.ExecContext(ctx, s.q(`
		UPDATE questions SET answer = ?, is_answered = 1 WHERE id = ?
	`), answer, questionID)
	if err != nil {
		return fmt.Errorf("failed to answer question: %w", err)
	}

	s.notify(roomCode)
	return nil
}

// ListQuestions returns the room's questions ordered by vote count
// descending, ties broken by insertion order.
func (s *Store) ListQuestions(ctx context.Context, roomCode string) ([]models.Question, error) {
	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT id, room_code, content, vote_count, is_answered, sender_name, answer, seq, created_at
		FROM questions
		WHERE room_code = ?
		ORDER BY vote_count DESC, seq ASC
	`), roomCode)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		var (
			q        models.Question
			answered int
			answer   sql.NullString
		)
		err := rows.Scan(&q.ID, &q.RoomCode, &q.Content, &q.VoteCount, &answered,
			&q.SenderName, &answer, &q.Seq, &q.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		q.IsAnswered = answered != 0
		q.Answer = answer.String
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate questions: %w", err)
	}

	for i := range questions {
		voters, err := s.questionVoters(ctx, questions[i].ID)
		if err != nil {
			return nil, err
		}
		questions[i].Voters = voters
	}

	return questions, nil
}

func (s *Store) questionVoters(ctx context.Context, questionID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT username FROM question_voters WHERE question_id = ? ORDER BY username
	`), questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query voters: %w", err)
	}
	defer rows.Close()

	voters := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan voter: %w", err)
		}
		voters = append(voters, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate voters: %w", err)
	}
	return voters, nil
}
