package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/SaaiAravindhRaja/CodeCoach/internal/logger"
	"github.com/SaaiAravindhRaja/CodeCoach/internal/repositories"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProblemHandler struct {
	problemRepo repositories.ProblemRepository
}

// NewProblemHandler creates a new problem handler
func NewProblemHandler(problemRepo repositories.ProblemRepository) *ProblemHandler {
	return &ProblemHandler{
		problemRepo: problemRepo,
	}
}

// GetProblems returns all problems with list-view fields only
func (h *ProblemHandler) GetProblems(c *gin.Context) {
	problems, err := h.problemRepo.GetProblems(context.Background())
	if err != nil {
		logger.Log.Error("Failed to get problems", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to retrieve problems"})
		return
	}

	c.JSON(http.StatusOK, problems)
}

// GetProblemByID returns the full problem, starter code and hints included
func (h *ProblemHandler) GetProblemByID(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid problem ID"})
		return
	}

	problem, err := h.problemRepo.GetProblemByID(context.Background(), id)
	if err != nil {
		logger.Log.Error("Failed to get problem",
			zap.Int("problem_id", id),
			zap.Error(err))

		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Problem not found"})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to retrieve problem details"})
		return
	}

	c.JSON(http.StatusOK, problem)
}

// GetProblemBySlug returns the full problem looked up by its slug
func (h *ProblemHandler) GetProblemBySlug(c *gin.Context) {
	slug := c.Param("slug")

	problem, err := h.problemRepo.GetProblemBySlug(context.Background(), slug)
	if err != nil {
		logger.Log.Error("Failed to get problem",
			zap.String("slug", slug),
			zap.Error(err))

		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Problem not found"})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to retrieve problem details"})
		return
	}

	c.JSON(http.StatusOK, problem)
}

// RegisterRoutes registers the problem handler routes
func (h *ProblemHandler) RegisterRoutes(router *gin.Engine) {
	problemGroup := router.Group("/api/problems")
	{
		problemGroup.GET("", h.GetProblems)
		problemGroup.GET("/:id", h.GetProblemByID)
		problemGroup.GET("/slug/:slug", h.GetProblemBySlug)
	}
}
