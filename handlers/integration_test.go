// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/askup/middleware"
	"github.com/danielhkuo/askup/models"
	"github.com/danielhkuo/askup/testutil"
)

// TestFullRoomWorkflow tests the complete end-to-end workflow:
// 1. Two users register
// 2. Alice creates a room
// 3. Bob probes the code and joins
// 4. Bob submits a question, Alice submits anonymously
// 5. Both vote; the ranking reorders
// 6. Alice answers the top question
// 7. Bob revokes a vote
// 8. Alice deletes the room; Bob's lists drop the code
func TestFullRoomWorkflow(t *testing.T) {
	s := testutil.SetupTestStore(t)
	jwt := testutil.NewTestJWT()

	userHandler := NewUserHandler(s, jwt)
	roomHandler := NewRoomHandler(s)
	questionHandler := NewQuestionHandler(s)

	register := func(username string) string {
		req := testutil.MakeRequest("POST", "/auth/register", models.RegisterRequest{
			Username: username,
			Email:    username + "@example.com",
			Password: "password123",
		}, nil)
		w := httptest.NewRecorder()
		userHandler.Register(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("Register %s failed: %d - %s", username, w.Code, w.Body.String())
		}
		var resp models.AuthResponse
		testutil.AssertJSON(t, w, &resp)
		return resp.Token
	}

	// Step 1: Register both users
	aliceToken := register("alice")
	bobToken := register("bob")
	t.Log("Step 1 - Registered alice and bob")

	// Step 2: Alice creates a room
	createRoom := middleware.RequireAuth(jwt, roomHandler.CreateRoom)
	req := testutil.MakeRequest("POST", "/rooms", models.CreateRoomRequest{Code: "TEAM42"}, testutil.AuthHeader(aliceToken))
	w := httptest.NewRecorder()
	createRoom(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 2 - Create room failed: %d - %s", w.Code, w.Body.String())
	}
	t.Log("Step 2 - Created room TEAM42")

	// Step 3: Bob probes the code, then joins
	req = httptest.NewRequest("GET", "/rooms/TEAM42/exists", nil)
	req.SetPathValue("code", "TEAM42")
	w = httptest.NewRecorder()
	roomHandler.Exists(w, req)
	var probe models.RoomExistsResponse
	testutil.AssertJSON(t, w, &probe)
	if !probe.Exists {
		t.Fatal("Step 3 - Probe reported the room missing")
	}

	join := middleware.RequireAuth(jwt, roomHandler.Join)
	req = testutil.MakeRequest("POST", "/rooms/TEAM42/join", nil, testutil.AuthHeader(bobToken))
	req.SetPathValue("code", "TEAM42")
	w = httptest.NewRecorder()
	join(w, req)
	testutil.AssertStatus(t, w, http.StatusNoContent)
	t.Log("Step 3 - Bob joined")

	// Step 4: Bob submits openly, Alice anonymously
	submit := middleware.RequireAuth(jwt, questionHandler.SubmitQuestion)
	submitQuestion := func(token, content string, anonymous bool) string {
		req := testutil.MakeRequest("POST", "/rooms/TEAM42/questions",
			models.SubmitQuestionRequest{Content: content, Anonymous: anonymous}, testutil.AuthHeader(token))
		req.SetPathValue("code", "TEAM42")
		w := httptest.NewRecorder()
		submit(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("Step 4 - Submit failed: %d - %s", w.Code, w.Body.String())
		}
		var resp models.SubmitQuestionResponse
		testutil.AssertJSON(t, w, &resp)
		return resp.QuestionID
	}

	bobQuestion := submitQuestion(bobToken, "When is the next release?", false)
	anonQuestion := submitQuestion(aliceToken, "Why was the standup moved?", true)
	t.Log("Step 4 - Submitted two questions")

	// Step 5: Both users vote for the anonymous question
	vote := middleware.RequireAuth(jwt, questionHandler.Vote)
	castVote := func(token, questionID string) models.VoteResponse {
		req := testutil.MakeRequest("POST", "/rooms/TEAM42/questions/"+questionID+"/vote", nil, testutil.AuthHeader(token))
		req.SetPathValue("code", "TEAM42")
		req.SetPathValue("id", questionID)
		w := httptest.NewRecorder()
		vote(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.VoteResponse
		testutil.AssertJSON(t, w, &resp)
		return resp
	}

	castVote(aliceToken, anonQuestion)
	castVote(bobToken, anonQuestion)

	list := middleware.RequireAuth(jwt, questionHandler.ListQuestions)
	listQuestions := func() []models.Question {
		req := testutil.MakeRequest("GET", "/rooms/TEAM42/questions", nil, testutil.AuthHeader(aliceToken))
		req.SetPathValue("code", "TEAM42")
		w := httptest.NewRecorder()
		list(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)
		var questions []models.Question
		testutil.AssertJSON(t, w, &questions)
		return questions
	}

	questions := listQuestions()
	if questions[0].ID != anonQuestion {
		t.Fatal("Step 5 - Voted question should rank first")
	}
	if questions[0].SenderName != models.AnonymousSender {
		t.Errorf("Step 5 - Expected anonymous sender, got %s", questions[0].SenderName)
	}
	if questions[1].ID != bobQuestion {
		t.Fatal("Step 5 - Unvoted question should rank second")
	}
	t.Log("Step 5 - Ranking reordered after votes")

	// Step 6: Alice answers the top question
	answer := middleware.RequireAuth(jwt, questionHandler.AnswerQuestion)
	req = testutil.MakeRequest("POST", "/rooms/TEAM42/questions/"+anonQuestion+"/answer",
		models.AnswerQuestionRequest{Answer: "Room conflict with all-hands"}, testutil.AuthHeader(aliceToken))
	req.SetPathValue("code", "TEAM42")
	req.SetPathValue("id", anonQuestion)
	w = httptest.NewRecorder()
	answer(w, req)
	testutil.AssertStatus(t, w, http.StatusNoContent)

	questions = listQuestions()
	if !questions[0].IsAnswered {
		t.Fatal("Step 6 - Expected top question answered")
	}
	t.Log("Step 6 - Answered top question")

	// Step 7: Bob revokes his vote
	resp := castVote(bobToken, anonQuestion)
	if resp.VoteCount != 1 || resp.Voted {
		t.Fatalf("Step 7 - Expected (1, not voted), got (%d, %v)", resp.VoteCount, resp.Voted)
	}
	t.Log("Step 7 - Vote revoked")

	// Step 8: Alice deletes the room; Bob's joined list drops the stale code
	deleteRoom := middleware.RequireAuth(jwt, roomHandler.DeleteRoom)
	req = testutil.MakeRequest("DELETE", "/rooms/TEAM42", nil, testutil.AuthHeader(aliceToken))
	req.SetPathValue("code", "TEAM42")
	w = httptest.NewRecorder()
	deleteRoom(w, req)
	testutil.AssertStatus(t, w, http.StatusNoContent)

	myRooms := middleware.RequireAuth(jwt, roomHandler.MyRooms)
	req = testutil.MakeRequest("GET", "/rooms/mine", nil, testutil.AuthHeader(bobToken))
	w = httptest.NewRecorder()
	myRooms(w, req)
	var lists models.UserRoomsResponse
	testutil.AssertJSON(t, w, &lists)
	if len(lists.Joined) != 0 {
		t.Fatalf("Step 8 - Expected empty joined list, got %d rooms", len(lists.Joined))
	}
	t.Log("Step 8 - Room deleted, lists clean")
}
