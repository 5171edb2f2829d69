// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/askup/middleware"
	"github.com/danielhkuo/askup/models"
	"github.com/danielhkuo/askup/store"
)

type RoomHandler struct {
	store *store.Store
}

func NewRoomHandler(s *store.Store) *RoomHandler {
	return &RoomHandler{store: s}
}

// CreateRoom handles POST /rooms. The creator becomes the room's admin and
// the code lands on their created list. If the bookkeeping write fails after
// the room exists, the room stands and the response says so.
func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r)

	var req models.CreateRoomRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	code := strings.TrimSpace(req.Code)
	room, err := h.store.CreateRoom(r.Context(), code, username)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	if err := h.store.AddCreatedRoom(r.Context(), room.Code, username); err != nil {
		slog.Error("room created but created-list update failed",
			"room", room.Code, "username", username, "error", err)
		middleware.ErrorResponseCode(w, http.StatusInternalServerError,
			"partial_failure", "room created but not recorded on your created list")
		return
	}

	slog.Info("room created", "room", room.Code, "admin", username)

	middleware.JSONResponse(w, http.StatusCreated, room)
}

// Exists handles GET /rooms/{code}/exists. Public: joining starts with an
// unauthenticated probe. The response echoes the code so the client can
// discard answers to stale probes.
func (h *RoomHandler) Exists(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	exists, err := h.store.RoomExists(r.Context(), code)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.RoomExistsResponse{
		Code:   code,
		Exists: exists,
	})
}

// GetRoom handles GET /rooms/{code}
func (h *RoomHandler) GetRoom(w http.ResponseWriter, r *http.Request) {
	info, err := h.store.GetRoomInfo(r.Context(), r.PathValue("code"))
	if err != nil {
		writeStoreError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, info)
}

// Join handles POST /rooms/{code}/join
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r)
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

	if err := h.store.AddJoinedRoom(r.Context(), code, username); err != nil {
		writeStoreError(w, err)
		return
	}

	slog.Info("room joined", "room", code, "username", username)

	w.WriteHeader(http.StatusNoContent)
}

// Leave handles POST /rooms/{code}/leave. Leaving a room not on the list is
// a no-op, same as removing it twice.
func (h *RoomHandler) Leave(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r)
	code := r.PathValue("code")

	if err := h.store.RemoveJoinedRoom(r.Context(), code, username); err != nil {
		writeStoreError(w, err)
		return
	}

	slog.Info("room left", "room", code, "username", username)

	w.WriteHeader(http.StatusNoContent)
}

// DeleteRoom handles DELETE /rooms/{code}. Admin only.
func (h *RoomHandler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r)
	code := r.PathValue("code")

	if err := h.store.DeleteCreatedRoom(r.Context(), code, username); err != nil {
		writeStoreError(w, err)
		return
	}

	slog.Info("room deleted", "room", code, "admin", username)

	w.WriteHeader(http.StatusNoContent)
}

// MyRooms handles GET /rooms/mine. Codes whose room has been deleted are
// silently dropped from both lists.
func (h *RoomHandler) MyRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.store.FetchUserRooms(r.Context(), middleware.GetUsername(r))
	if err != nil {
		writeStoreError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, rooms)
}
