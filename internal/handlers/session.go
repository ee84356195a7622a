package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/SaaiAravindhRaja/CodeCoach/internal/logger"
	"github.com/SaaiAravindhRaja/CodeCoach/internal/middlewares"
	"github.com/SaaiAravindhRaja/CodeCoach/internal/models"
	"github.com/SaaiAravindhRaja/CodeCoach/internal/repositories"
	"github.com/SaaiAravindhRaja/CodeCoach/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CompletionStream is the redis stream the submit handler feeds and the
// stats worker pool consumes.
const CompletionStream = "session_completions"

type SessionHandler struct {
	sessionRepo   repositories.SessionRepository
	problemRepo   repositories.ProblemRepository
	transcription *services.TranscriptionService
	evaluation    *services.EvaluationService
	audioStorage  *services.AudioStorage
	redis         *redis.Client
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(
	sessionRepo repositories.SessionRepository,
	problemRepo repositories.ProblemRepository,
	transcription *services.TranscriptionService,
	evaluation *services.EvaluationService,
	audioStorage *services.AudioStorage,
	rdb *redis.Client,
) *SessionHandler {
	return &SessionHandler{
		sessionRepo:   sessionRepo,
		problemRepo:   problemRepo,
		transcription: transcription,
		evaluation:    evaluation,
		audioStorage:  audioStorage,
		redis:         rdb,
	}
}

// CreateSession starts a new practice session against an existing problem
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req models.SessionCreateRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	if err := req.ValidateRequest(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	if _, err := h.problemRepo.GetProblemByID(context.Background(), req.ProblemID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Problem not found"})
			return
		}
		logger.Log.Error("Failed to look up problem for session",
			zap.Int("problem_id", req.ProblemID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create session"})
		return
	}

	session := models.Session{
		ProblemID: req.ProblemID,
		Language:  req.Language,
	}

	if err := h.sessionRepo.CreateSession(context.Background(), &session); err != nil {
		logger.Log.Error("Failed to create session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create session"})
		return
	}

	c.JSON(http.StatusOK, session)
}

// GetSession returns a session with its evaluation if one exists
func (h *SessionHandler) GetSession(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	session, err := h.sessionRepo.GetSessionByID(context.Background(), id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Session not found"})
			return
		}
		logger.Log.Error("Failed to get session",
			zap.Int("session_id", id),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to retrieve session"})
		return
	}

	c.JSON(http.StatusOK, session)
}

// GetSessions returns recent completed sessions, newest first
func (h *SessionHandler) GetSessions(c *gin.Context) {
	limit := 10
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	sessions, err := h.sessionRepo.GetCompletedSessions(context.Background(), limit)
	if err != nil {
		logger.Log.Error("Failed to get sessions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to retrieve sessions"})
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// UploadAudio stores the recording and returns its transcription
func (h *SessionHandler) UploadAudio(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	if _, err := h.sessionRepo.GetSessionByID(context.Background(), id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Session not found"})
			return
		}
		logger.Log.Error("Failed to get session for audio upload",
			zap.Int("session_id", id),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to retrieve session"})
		return
	}

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Audio file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Log.Error("Failed to open uploaded audio", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to read audio upload"})
		return
	}
	defer file.Close()

	path, err := h.audioStorage.Save(id, fileHeader.Filename, file)
	if err != nil {
		logger.Log.Error("Failed to store audio",
			zap.Int("session_id", id),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to store audio"})
		return
	}

	result := h.transcription.Transcribe(context.Background(), path, middlewares.ElevenLabsKey(c))

	if err := h.sessionRepo.SaveTranscription(context.Background(), id, path, result.Text); err != nil {
		logger.Log.Error("Failed to save transcription",
			zap.Int("session_id", id),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to save transcription"})
		return
	}

	c.JSON(http.StatusOK, models.TranscriptionResponse{
		Transcription:   result.Text,
		DurationSeconds: result.Duration,
	})
}

// SubmitSession completes the session: evaluates the submitted code plus
// any stored transcription, persists the evaluation, and queues a stats
// recompute.
func (h *SessionHandler) SubmitSession(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req models.SessionSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	if err := req.ValidateRequest(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	session, err := h.sessionRepo.GetSessionByID(context.Background(), id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Session not found"})
			return
		}
		logger.Log.Error("Failed to get session for submit",
			zap.Int("session_id", id),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to retrieve session"})
		return
	}

	problem, err := h.problemRepo.GetProblemByID(context.Background(), session.ProblemID)
	if err != nil {
		logger.Log.Error("Failed to get problem for submit",
			zap.Int("session_id", id),
			zap.Int("problem_id", session.ProblemID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to retrieve problem"})
		return
	}

	now := time.Now().UTC()
	duration := int(now.Sub(session.StartedAt).Seconds())

	session.Code = &req.Code
	session.Language = req.Language
	session.HintsUsed = req.HintsUsed
	session.CompletedAt = &now
	session.DurationSeconds = &duration

	transcription := ""
	if session.Transcription != nil {
		transcription = *session.Transcription
	}

	result := h.evaluation.Evaluate(context.Background(), services.EvaluationInput{
		Problem:         problem,
		Code:            req.Code,
		Transcription:   transcription,
		Language:        req.Language,
		DurationSeconds: duration,
		HintsUsed:       req.HintsUsed,
	}, middlewares.AnthropicKey(c))

	evaluation := models.Evaluation{
		SessionID:           session.ID,
		CommunicationScore:  result.CommunicationScore,
		ProblemSolvingScore: result.ProblemSolvingScore,
		CodeQualityScore:    result.CodeQualityScore,
		OverallScore:        result.OverallScore,
		Feedback:            result.Feedback,
		Strengths:           result.Strengths,
		Improvements:        result.Improvements,
	}

	if err := h.sessionRepo.CompleteSession(context.Background(), session, &evaluation); err != nil {
		logger.Log.Error("Failed to complete session",
			zap.Int("session_id", id),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to save evaluation"})
		return
	}

	err = h.redis.XAdd(context.Background(), &redis.XAddArgs{
		Stream: CompletionStream,
		ID:     "*", // Auto-generate ID
		Values: map[string]interface{}{
			"session_id": session.ID,
		},
	}).Err()
	if err != nil {
		// The submission itself succeeded; the stats recompute is best
		// effort and the dashboard catches up on the next completion.
		logger.Log.Error("Failed to queue stats recompute",
			zap.Int("session_id", session.ID),
			zap.Error(err))
	}

	c.JSON(http.StatusOK, session)
}

func (h *SessionHandler) sessionID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid session ID"})
		return 0, false
	}
	return id, true
}

// RegisterRoutes registers the session handler routes
func (h *SessionHandler) RegisterRoutes(router *gin.Engine) {
	sessionGroup := router.Group("/api/sessions")
	{
		sessionGroup.POST("", h.CreateSession)
		sessionGroup.GET("", h.GetSessions)
		sessionGroup.GET("/:id", h.GetSession)
		sessionGroup.POST("/:id/audio", h.UploadAudio)
		sessionGroup.POST("/:id/submit", h.SubmitSession)
	}
}
