// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/askup/auth"
	"github.com/danielhkuo/askup/cliparse"
	"github.com/danielhkuo/askup/handlers"
	"github.com/danielhkuo/askup/middleware"
	"github.com/danielhkuo/askup/store"
)

func NewRouter(s *store.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	jwt := auth.NewJWTManager(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(s, jwt)
	roomHandler := handlers.NewRoomHandler(s)
	questionHandler := handlers.NewQuestionHandler(s)
	streamHandler := handlers.NewStreamHandler(s)

	// route wires the standard middleware stack; authed adds the session check
	route := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, middleware.WithLogging(middleware.WithMetrics(pattern, h)))
	}
	authed := func(pattern string, h http.HandlerFunc) {
		route(pattern, middleware.RequireAuth(jwt, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus metrics
	mux.Handle("GET /metrics", promhttp.Handler())

	// Accounts
	route("POST /auth/register", userHandler.Register)
	route("POST /auth/login", userHandler.Login)
	authed("GET /auth/me", userHandler.Me)
	authed("POST /auth/logout", userHandler.Logout)

	// Rooms. The existence probe is public: joining starts unauthenticated
	route("GET /rooms/{code}/exists", roomHandler.Exists)
	authed("POST /rooms", roomHandler.CreateRoom)
	authed("GET /rooms/mine", roomHandler.MyRooms)
	authed("GET /rooms/{code}", roomHandler.GetRoom)
	authed("DELETE /rooms/{code}", roomHandler.DeleteRoom)
	authed("POST /rooms/{code}/join", roomHandler.Join)
	authed("POST /rooms/{code}/leave", roomHandler.Leave)

	// Question board
	authed("GET /rooms/{code}/questions", questionHandler.ListQuestions)
	authed("POST /rooms/{code}/questions", questionHandler.SubmitQuestion)
	authed("POST /rooms/{code}/questions/{id}/vote", questionHandler.Vote)
	authed("DELETE /rooms/{code}/questions/{id}", questionHandler.DeleteQuestion)
	authed("POST /rooms/{code}/questions/{id}/answer", questionHandler.AnswerQuestion)

	// Live snapshot stream. No metrics wrapper: the request never completes
	mux.HandleFunc("GET /rooms/{code}/stream", middleware.RequireAuth(jwt, streamHandler.Stream))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("askup API v1"))
	})

	return mux
}
