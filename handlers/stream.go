// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/danielhkuo/askup/middleware"
	"github.com/danielhkuo/askup/store"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browsers enforce their own origin policy; the API is CORS-open
	CheckOrigin: func(r *http.Request) bool { return true },
}

type StreamHandler struct {
	store *store.Store
}

func NewStreamHandler(s *store.Store) *StreamHandler {
	return &StreamHandler{store: s}
}

// Stream handles GET /rooms/{code}/stream. It upgrades the connection to a
// WebSocket and pushes one JSON snapshot per delivery, starting with the
// room's current state. The connection closes when the client goes away or
// the room is deleted.
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	username := middleware.GetUsername(r)

	sub, err := h.store.Subscribe(r.Context(), code)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		sub.Close()
		slog.Error("websocket upgrade failed", "room", code, "error", err)
		return
	}

	slog.Info("stream opened", "room", code, "username", username)

	// Reader: the client sends nothing meaningful, but reading is how we
	// notice closes and answer pings
	go func() {
		defer sub.Close()
		conn.SetReadLimit(512)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		sub.Close()
		conn.Close()
		slog.Info("stream closed", "room", code, "username", username)
	}()

	for {
		select {
		case snap, ok := <-sub.C:
			if !ok {
				// Room deleted or store shutting down
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "room closed"))
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(snap); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
