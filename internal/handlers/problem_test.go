package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SaaiAravindhRaja/CodeCoach/internal/logger"
	"github.com/SaaiAravindhRaja/CodeCoach/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()
	return gin.New()
}

type fakeProblemRepo struct {
	problems map[int]*models.Problem
}

func (f *fakeProblemRepo) GetProblems(ctx context.Context) ([]models.ProblemListItem, error) {
	items := make([]models.ProblemListItem, 0, len(f.problems))
	for _, p := range f.problems {
		items = append(items, models.ProblemListItem{ID: p.ID, Title: p.Title, Slug: p.Slug, Difficulty: p.Difficulty})
	}
	return items, nil
}

func (f *fakeProblemRepo) GetProblemByID(ctx context.Context, problemID int) (*models.Problem, error) {
	if p, ok := f.problems[problemID]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("problem not found: %d", problemID)
}

func (f *fakeProblemRepo) GetProblemBySlug(ctx context.Context, slug string) (*models.Problem, error) {
	for _, p := range f.problems {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, fmt.Errorf("problem not found: %s", slug)
}

func (f *fakeProblemRepo) CountProblems(ctx context.Context) (int, error) {
	return len(f.problems), nil
}

func (f *fakeProblemRepo) InsertProblem(ctx context.Context, problem *models.Problem) error {
	f.problems[problem.ID] = problem
	return nil
}

type fakeSessionRepo struct {
	sessions map[int]*models.Session
}

func (f *fakeSessionRepo) CreateSession(ctx context.Context, session *models.Session) error {
	session.ID = len(f.sessions) + 1
	session.Status = models.StatusInProgress
	session.StartedAt = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionRepo) GetSessionByID(ctx context.Context, sessionID int) (*models.Session, error) {
	if s, ok := f.sessions[sessionID]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("session not found: %d", sessionID)
}

func (f *fakeSessionRepo) GetCompletedSessions(ctx context.Context, limit int) ([]models.Session, error) {
	return nil, nil
}

func (f *fakeSessionRepo) SaveTranscription(ctx context.Context, sessionID int, audioFilePath, transcription string) error {
	return nil
}

func (f *fakeSessionRepo) CompleteSession(ctx context.Context, session *models.Session, evaluation *models.Evaluation) error {
	session.Status = models.StatusCompleted
	session.Evaluation = evaluation
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionRepo) GetRecentEvaluations(ctx context.Context, limit int) ([]models.Evaluation, error) {
	return nil, nil
}

func (f *fakeSessionRepo) GetAverageOverallScore(ctx context.Context) (float64, error) {
	return 0, nil
}

func detailOf(t *testing.T, body []byte) string {
	t.Helper()
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("response is not a detail body: %s", body)
	}
	return payload.Detail
}

func testProblemRepo() *fakeProblemRepo {
	return &fakeProblemRepo{problems: map[int]*models.Problem{
		1: {
			ID:          1,
			Title:       "Two Sum",
			Slug:        "two-sum",
			Difficulty:  models.DifficultyEasy,
			Description: "Find two numbers that add up to target.",
			StarterCode: map[string]string{"python": "def two_sum(nums, target):\n    pass"},
		},
	}}
}

func TestGetProblems(t *testing.T) {
	router := newTestRouter()
	NewProblemHandler(testProblemRepo()).RegisterRoutes(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/problems", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var problems []models.ProblemListItem
	if err := json.Unmarshal(w.Body.Bytes(), &problems); err != nil {
		t.Fatalf("expected a problem array, got %s", w.Body.String())
	}
	if len(problems) != 1 || problems[0].Slug != "two-sum" {
		t.Errorf("unexpected problems: %+v", problems)
	}
}

func TestGetProblemByIDStatusCodes(t *testing.T) {
	router := newTestRouter()
	NewProblemHandler(testProblemRepo()).RegisterRoutes(router)

	t.Run("found", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/problems/1", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var problem models.Problem
		if err := json.Unmarshal(w.Body.Bytes(), &problem); err != nil || problem.ID != 1 {
			t.Errorf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/problems/99", nil))
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
		if detailOf(t, w.Body.Bytes()) != "Problem not found" {
			t.Errorf("unexpected detail: %s", w.Body.String())
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/problems/abc", nil))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if detailOf(t, w.Body.Bytes()) != "Invalid problem ID" {
			t.Errorf("unexpected detail: %s", w.Body.String())
		}
	})
}

func TestGetProblemBySlugStatusCodes(t *testing.T) {
	router := newTestRouter()
	NewProblemHandler(testProblemRepo()).RegisterRoutes(router)

	t.Run("found", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/problems/slug/two-sum", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/problems/slug/nope", nil))
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
		if detailOf(t, w.Body.Bytes()) != "Problem not found" {
			t.Errorf("unexpected detail: %s", w.Body.String())
		}
	})
}
