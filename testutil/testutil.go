// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/askup/auth"
	"github.com/danielhkuo/askup/cliparse"
	"github.com/danielhkuo/askup/db"
	"github.com/danielhkuo/askup/models"
	"github.com/danielhkuo/askup/store"
)

// TestJWTSecret signs session tokens in tests.
const TestJWTSecret = "test-jwt-secret"

// SetupTestStore creates a store over a fresh temp sqlite database.
func SetupTestStore(t *testing.T) *store.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	conn, err := db.Open("sqlite", path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	s := store.New(conn, "sqlite")
	t.Cleanup(func() { s.Close() })
	return s
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseType:  "sqlite",
		DatabaseURL:   ":memory:",
		JWTSecret:     TestJWTSecret,
		TokenTTLHours: 1,
	}
}

// NewTestJWT returns a JWT manager using the test secret.
func NewTestJWT() *auth.JWTManager {
	return auth.NewJWTManager(TestJWTSecret, time.Hour)
}

// CreateTestUser registers a user directly in the store and returns a valid
// session token for them. The password is "password123".
func CreateTestUser(t *testing.T, s *store.Store, username string) string {
	t.Helper()

	hash, err := auth.HashPassword("password123")
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}
	err = s.CreateUser(context.Background(), &models.Account{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
	})
	if err != nil {
		t.Fatalf("Failed to create test user %s: %v", username, err)
	}

	token, err := NewTestJWT().Generate(username, username+"@example.com")
	if err != nil {
		t.Fatalf("Failed to generate test token: %v", err)
	}
	return token
}

// CreateTestRoom creates a room with the given admin and records it on the
// admin's created list.
func CreateTestRoom(t *testing.T, s *store.Store, code, admin string) {
	t.Helper()

	if _, err := s.CreateRoom(context.Background(), code, admin); err != nil {
		t.Fatalf("Failed to create test room %s: %v", code, err)
	}
	if err := s.AddCreatedRoom(context.Background(), code, admin); err != nil {
		t.Fatalf("Failed to record created room %s: %v", code, err)
	}
}

// CreateTestQuestion submits a question and returns its ID.
func CreateTestQuestion(t *testing.T, s *store.Store, roomCode, content, sender string) string {
	t.Helper()

	q, err := s.SubmitQuestion(context.Background(), roomCode, content, sender)
	if err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}
	return q.ID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AuthHeader returns the header map for a Bearer token.
func AuthHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
