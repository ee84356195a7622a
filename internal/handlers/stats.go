package handlers

import (
	"context"
	"math"
	"net/http"
	"time"

	"github.com/SaaiAravindhRaja/CodeCoach/internal/logger"
	"github.com/SaaiAravindhRaja/CodeCoach/internal/models"
	"github.com/SaaiAravindhRaja/CodeCoach/internal/repositories"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type StatsHandler struct {
	sessionRepo  repositories.SessionRepository
	progressRepo repositories.ProgressRepository
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(sessionRepo repositories.SessionRepository, progressRepo repositories.ProgressRepository) *StatsHandler {
	return &StatsHandler{
		sessionRepo:  sessionRepo,
		progressRepo: progressRepo,
	}
}

// GetDashboardStats aggregates progress, recent sessions, score history and
// the per-dimension skill breakdown
func (h *StatsHandler) GetDashboardStats(c *gin.Context) {
	progress, err := h.progressRepo.GetOrCreateProgress(context.Background())
	if err != nil {
		logger.Log.Error("Failed to get user progress", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to retrieve stats"})
		return
	}

	recentSessions, err := h.sessionRepo.GetCompletedSessions(context.Background(), 10)
	if err != nil {
		logger.Log.Error("Failed to get recent sessions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to retrieve stats"})
		return
	}

	evaluations, err := h.sessionRepo.GetRecentEvaluations(context.Background(), 10)
	if err != nil {
		logger.Log.Error("Failed to get recent evaluations", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to retrieve stats"})
		return
	}

	// Oldest first so charts read left to right.
	history := make([]models.ScoreHistoryItem, 0, len(evaluations))
	for i := len(evaluations) - 1; i >= 0; i-- {
		e := evaluations[i]
		history = append(history, models.ScoreHistoryItem{
			Date:           e.CreatedAt.Format(time.RFC3339),
			Overall:        e.OverallScore,
			Communication:  e.CommunicationScore,
			ProblemSolving: e.ProblemSolvingScore,
			CodeQuality:    e.CodeQualityScore,
		})
	}

	badges := progress.Badges
	if badges == nil {
		badges = []string{}
	}

	c.JSON(http.StatusOK, models.DashboardStats{
		TotalSessions:  progress.TotalSessions,
		AverageScore:   math.Round(progress.AverageScore*10) / 10,
		StreakDays:     progress.StreakDays,
		Badges:         badges,
		RecentSessions: recentSessions,
		ScoreHistory:   history,
		SkillBreakdown: SkillBreakdown(evaluations),
	})
}

// SkillBreakdown averages each scoring dimension over the given
// evaluations. Speed and edge-case coverage have no dedicated score yet,
// so they carry fixed placeholder values whenever any evaluations exist.
func SkillBreakdown(evaluations []models.Evaluation) map[string]float64 {
	if len(evaluations) == 0 {
		return map[string]float64{
			"communication":   0,
			"problem_solving": 0,
			"code_quality":    0,
			"speed":           0,
			"edge_cases":      0,
		}
	}

	var communication, problemSolving, codeQuality int
	for _, e := range evaluations {
		communication += e.CommunicationScore
		problemSolving += e.ProblemSolvingScore
		codeQuality += e.CodeQualityScore
	}

	n := float64(len(evaluations))
	return map[string]float64{
		"communication":   float64(communication) / n,
		"problem_solving": float64(problemSolving) / n,
		"code_quality":    float64(codeQuality) / n,
		"speed":           7.0,
		"edge_cases":      6.5,
	}
}

// RegisterRoutes registers the stats handler routes
func (h *StatsHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/stats", h.GetDashboardStats)
}
