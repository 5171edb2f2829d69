// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/askup/metrics"
	"github.com/danielhkuo/askup/middleware"
	"github.com/danielhkuo/askup/models"
	"github.com/danielhkuo/askup/store"
)

type QuestionHandler struct {
	store *store.Store
}

func NewQuestionHandler(s *store.Store) *QuestionHandler {
	return &QuestionHandler{store: s}
}

// ListQuestions handles GET /rooms/{code}/questions. Questions come back
// ranked: most votes first, insertion order breaking ties.
func (h *QuestionHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	exists, err := h.store.RoomExists(r.Context(), code)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Room not found")
		return
	}

	questions, err := h.store.ListQuestions(r.Context(), code)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, questions)
}

// SubmitQuestion handles POST /rooms/{code}/questions
func (h *QuestionHandler) SubmitQuestion(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r)
	code := r.PathValue("code")

	var req models.SubmitQuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	sender := username
	if req.Anonymous {
		sender = models.AnonymousSender
	}

	question, err := h.store.SubmitQuestion(r.Context(), code, req.Content, sender)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	metrics.QuestionsSubmitted.Inc()
	slog.Info("question submitted", "room", code, "question_id", question.ID, "sender", sender)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitQuestionResponse{
		QuestionID: question.ID,
	})
}

// Vote handles POST /rooms/{code}/questions/{id}/vote. One call toggles: a
// user not on the voter list is added, a user already on it is removed.
func (h *QuestionHandler) Vote(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r)
	code := r.PathValue("code")
	questionID := r.PathValue("id")

	count, voted, err := h.store.ToggleVote(r.Context(), code, questionID, username)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	metrics.VotesToggled.Inc()

	middleware.JSONResponse(w, http.StatusOK, models.VoteResponse{
		QuestionID: questionID,
		VoteCount:  count,
		Voted:      voted,
	})
}

// DeleteQuestion handles DELETE /rooms/{code}/questions/{id}. Allowed for
// the room admin and the question's sender.
func (h *QuestionHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r)
	code := r.PathValue("code")
	questionID := r.PathValue("id")

	if err := h.store.DeleteQuestion(r.Context(), code, questionID, username); err != nil {
		writeStoreError(w, err)
		return
	}

	slog.Info("question deleted", "room", code, "question_id", questionID, "by", username)

	w.WriteHeader(http.StatusNoContent)
}

// AnswerQuestion handles POST /rooms/{code}/questions/{id}/answer. Admin
// only; a question can be answered once.
func (h *QuestionHandler) AnswerQuestion(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r)
	code := r.PathValue("code")
	questionID := r.PathValue("id")

	var req models.AnswerQuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.store.AnswerQuestion(r.Context(), code, questionID, username, req.Answer); err != nil {
		writeStoreError(w, err)
		return
	}

	slog.Info("question answered", "room", code, "question_id", questionID)

	w.WriteHeader(http.StatusNoContent)
}
