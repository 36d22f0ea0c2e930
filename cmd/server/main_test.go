package main

import (
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/studyhub-app/studyhub-backend/internal/content"
	"github.com/studyhub-app/studyhub-backend/internal/quiz"
	"github.com/studyhub-app/studyhub-backend/internal/review"
)

func testApp() *app {
	pool := make([]content.QuizQuestion, 0, 8)
	for _, d := range []content.Difficulty{content.DifficultyEasy, content.DifficultyMedium, content.DifficultyHard} {
		for i := 0; i < 3; i++ {
			pool = append(pool, content.QuizQuestion{
				ID:         string(d) + "-q",
				TopicID:    "t1",
				Difficulty: d,
			})
		}
	}

	return &app{
		graph: &content.Graph{
			Subjects: []content.Subject{{Key: "physics", Name: "Physics"}},
			Topics:   map[string]content.Topic{"t1": {ID: "t1", Name: "Forces"}},
			Questions: map[string][]content.QuizQuestion{
				"t1": pool,
			},
		},
		scheduler:   review.NewScheduler(nil),
		selector:    quiz.NewSelector(rand.New(rand.NewPCG(1, 2))),
		targetCount: 5,
	}
}

func TestHealthEndpoints(t *testing.T) {
	mux := testApp().routes()

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "healthz returns 200",
			path:       "/healthz",
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"ok"}`,
		},
		{
			name:       "readyz returns 200",
			path:       "/readyz",
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"ready"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()

			mux.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if strings.TrimSpace(rec.Body.String()) != tt.wantBody {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestReadyz_NoGraph(t *testing.T) {
	a := testApp()
	a.graph = nil

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	a.routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}

func TestSubjects(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/subjects", nil)
	rec := httptest.NewRecorder()
	testApp().routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var subjects []content.Subject
	if err := json.NewDecoder(rec.Body).Decode(&subjects); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(subjects) != 1 || subjects[0].Key != "physics" {
		t.Errorf("subjects = %+v, want [physics]", subjects)
	}
}

func TestTopicQuiz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/topics/t1/quiz?mastery=85&count=4", nil)
	rec := httptest.NewRecorder()
	testApp().routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var questions []content.QuizQuestion
	if err := json.NewDecoder(rec.Body).Decode(&questions); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(questions) != 4 {
		t.Errorf("questions = %d, want 4", len(questions))
	}
}

func TestTopicQuiz_UnknownTopic(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/topics/nope/quiz", nil)
	rec := httptest.NewRecorder()
	testApp().routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestRecordAndDueReviews(t *testing.T) {
	a := testApp()
	mux := a.routes()

	// Nothing reviewed yet: due list is present but empty.
	req := httptest.NewRequest(http.MethodGet, "/api/reviews/due", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var due struct {
		Due []string `json:"due"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&due); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if due.Due == nil || len(due.Due) != 0 {
		t.Errorf("due = %v, want empty non-nil list", due.Due)
	}

	// An incorrect answer makes the question due immediately.
	req = httptest.NewRequest(http.MethodPost, "/api/reviews/q1", strings.NewReader(`{"correct":false}`))
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("record status = %d, want 200", rec.Code)
	}
	var entry review.Entry
	if err := json.NewDecoder(rec.Body).Decode(&entry); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if entry.IntervalDays != 0 {
		t.Errorf("IntervalDays = %d, want 0", entry.IntervalDays)
	}
	if entry.NextReview.After(time.Now().Add(time.Minute)) {
		t.Errorf("NextReview = %v, want due now", entry.NextReview)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/reviews/due", nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if err := json.NewDecoder(rec.Body).Decode(&due); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(due.Due) != 1 || due.Due[0] != "q1" {
		t.Errorf("due = %v, want [q1]", due.Due)
	}
}

func TestRecordReview_BadBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/reviews/q1", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	testApp().routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
