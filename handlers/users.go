// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/askup/auth"
	"github.com/danielhkuo/askup/middleware"
	"github.com/danielhkuo/askup/models"
	"github.com/danielhkuo/askup/store"
)

type UserHandler struct {
	store *store.Store
	jwt   *auth.JWTManager
}

func NewUserHandler(s *store.Store, jwt *auth.JWTManager) *UserHandler {
	return &UserHandler{store: s, jwt: jwt}
}

// Register handles POST /auth/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Usernames are stored lowercase so lookups are case-insensitive
	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.TrimSpace(req.Email)
	if username == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username is required")
		return
	}
	if len(username) > models.MaxUsernameLen {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username must be at most 15 characters")
		return
	}
	if email == "" || !strings.Contains(email, "@") {
		middleware.ErrorResponse(w, http.StatusBadRequest, "a valid email is required")
		return
	}
	if len(req.Password) < models.MinPasswordLen {
		middleware.ErrorResponse(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	account := &models.Account{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := h.store.CreateUser(r.Context(), account); err != nil {
		writeStoreError(w, err)
		return
	}

	token, err := h.jwt.Generate(username, email)
	if err != nil {
		slog.Error("failed to generate token", "error", err, "username", username)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	slog.Info("user registered", "username", username)

	middleware.JSONResponse(w, http.StatusCreated, models.AuthResponse{
		Token:    token,
		Username: username,
	})
}

// Login handles POST /auth/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))
	if username == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username and password are required")
		return
	}

	account, err := h.store.GetUser(r.Context(), username)
	if err != nil {
		// Same response for unknown user and wrong password
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := auth.CheckPassword(account.PasswordHash, req.Password); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.jwt.Generate(account.Username, account.Email)
	if err != nil {
		slog.Error("failed to generate token", "error", err, "username", username)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	slog.Info("user logged in", "username", username)

	middleware.JSONResponse(w, http.StatusOK, models.AuthResponse{
		Token:    token,
		Username: account.Username,
	})
}

// Me handles GET /auth/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r)

	account, err := h.store.GetUser(r.Context(), username)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AccountResponse{
		Username:  account.Username,
		Email:     account.Email,
		CreatedAt: account.CreatedAt,
	})
}

// Logout handles POST /auth/logout. Sessions are stateless tokens, so the
// server has nothing to revoke; the client discards its copy.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	slog.Info("user logged out", "username", middleware.GetUsername(r))
	w.WriteHeader(http.StatusNoContent)
}
