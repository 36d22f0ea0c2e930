package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/studyhub-app/studyhub-backend/internal/content"
	"github.com/studyhub-app/studyhub-backend/internal/platform/cache"
	"github.com/studyhub-app/studyhub-backend/internal/platform/database"
	"github.com/studyhub-app/studyhub-backend/internal/quiz"
	"github.com/studyhub-app/studyhub-backend/internal/review"
)

// app holds the loaded curriculum model and the services the thin HTTP
// surface exposes to the presentation layer.
type app struct {
	graph       *content.Graph
	scheduler   *review.Scheduler
	selector    *quiz.Selector
	targetCount int
	db          *database.DB
	cache       *cache.Cache
}

func (a *app) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", a.handleHealthz)
	mux.HandleFunc("GET /readyz", a.handleReadyz)
	mux.HandleFunc("GET /api/subjects", a.handleSubjects)
	mux.HandleFunc("GET /api/topics/{id}/quiz", a.handleTopicQuiz)
	mux.HandleFunc("GET /api/reviews/due", a.handleDueReviews)
	mux.HandleFunc("POST /api/reviews/{questionID}", a.handleRecordReview)
	return mux
}

func (a *app) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *app) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if a.graph == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "loading"})
		return
	}
	if a.db != nil {
		if err := a.db.HealthCheck(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "database unavailable"})
			return
		}
	}
	if a.cache != nil {
		if err := a.cache.HealthCheck(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "cache unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (a *app) handleSubjects(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.graph.Subjects)
}

// handleTopicQuiz returns a difficulty-weighted question set for one topic.
// Query params: mastery (0-100, default 50) and count.
func (a *app) handleTopicQuiz(w http.ResponseWriter, r *http.Request) {
	topicID := r.PathValue("id")
	pool, ok := a.graph.Questions[topicID]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown topic"})
		return
	}

	mastery := 50.0
	if v := r.URL.Query().Get("mastery"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			mastery = f
		}
	}
	count := a.targetCount
	if v := r.URL.Query().Get("count"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			count = n
		}
	}

	writeJSON(w, http.StatusOK, a.selector.Select(pool, mastery, count))
}

func (a *app) handleDueReviews(w http.ResponseWriter, r *http.Request) {
	due, err := a.scheduler.DueNow(r.Context(), time.Now())
	if err != nil {
		slog.Error("failed to list due reviews", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "review store unavailable"})
		return
	}
	if due == nil {
		due = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"due": due})
}

func (a *app) handleRecordReview(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("questionID")

	var body struct {
		Correct bool `json:"correct"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}

	entry, err := a.scheduler.Record(r.Context(), questionID, body.Correct, time.Now())
	if err != nil {
		slog.Error("failed to record review", "question_id", questionID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "review store unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
