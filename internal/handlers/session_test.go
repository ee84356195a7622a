package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SaaiAravindhRaja/CodeCoach/internal/models"

	"github.com/gin-gonic/gin"
)

func newSessionTestRouter(sessions *fakeSessionRepo, problems *fakeProblemRepo) *gin.Engine {
	router := newTestRouter()
	NewSessionHandler(sessions, problems, nil, nil, nil, nil).RegisterRoutes(router)
	return router
}

func TestCreateSessionStatusCodes(t *testing.T) {
	sessions := &fakeSessionRepo{sessions: map[int]*models.Session{}}
	router := newSessionTestRouter(sessions, testProblemRepo())

	t.Run("created", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/sessions",
			strings.NewReader(`{"problem_id": 1, "language": "python"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var session models.Session
		if err := json.Unmarshal(w.Body.Bytes(), &session); err != nil {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
		if session.ID == 0 || session.Status != models.StatusInProgress {
			t.Errorf("unexpected session: %+v", session)
		}
	})

	t.Run("unknown problem", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/sessions",
			strings.NewReader(`{"problem_id": 99}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
		if detailOf(t, w.Body.Bytes()) != "Problem not found" {
			t.Errorf("unexpected detail: %s", w.Body.String())
		}
	})

	t.Run("missing problem id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/sessions",
			strings.NewReader(`{"language": "python"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if detailOf(t, w.Body.Bytes()) == "" {
			t.Errorf("expected a detail body, got %s", w.Body.String())
		}
	})
}

func TestGetSessionStatusCodes(t *testing.T) {
	sessions := &fakeSessionRepo{sessions: map[int]*models.Session{
		1: {
			ID:        1,
			ProblemID: 1,
			Language:  "python",
			Status:    models.StatusInProgress,
			StartedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		},
	}}
	router := newSessionTestRouter(sessions, testProblemRepo())

	t.Run("found", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/sessions/1", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var session models.Session
		if err := json.Unmarshal(w.Body.Bytes(), &session); err != nil || session.ID != 1 {
			t.Errorf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/sessions/99", nil))
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
		if detailOf(t, w.Body.Bytes()) != "Session not found" {
			t.Errorf("unexpected detail: %s", w.Body.String())
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/sessions/abc", nil))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if detailOf(t, w.Body.Bytes()) != "Invalid session ID" {
			t.Errorf("unexpected detail: %s", w.Body.String())
		}
	})
}
