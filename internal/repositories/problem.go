package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/SaaiAravindhRaja/CodeCoach/internal/models"
	"github.com/SaaiAravindhRaja/CodeCoach/internal/services"

	"github.com/jmoiron/sqlx"
)

type ProblemRepository interface {
	GetProblems(ctx context.Context) ([]models.ProblemListItem, error)
	GetProblemByID(ctx context.Context, problemID int) (*models.Problem, error)
	GetProblemBySlug(ctx context.Context, slug string) (*models.Problem, error)
	CountProblems(ctx context.Context) (int, error)
	InsertProblem(ctx context.Context, problem *models.Problem) error
}

type problemRepository struct {
	db    *sqlx.DB
	cache services.Cache
}

func NewProblemRepository(db *sqlx.DB, cache services.Cache) ProblemRepository {
	return &problemRepository{db: db, cache: cache}
}

func (r *problemRepository) GetProblems(ctx context.Context) ([]models.ProblemListItem, error) {
	query := `SELECT id, title, slug, difficulty FROM problems ORDER BY id`

	var problems []models.ProblemListItem
	if err := r.db.SelectContext(ctx, &problems, query); err != nil {
		return nil, fmt.Errorf("failed to get problems: %w", err)
	}

	return problems, nil
}

func (r *problemRepository) GetProblemByID(ctx context.Context, problemID int) (*models.Problem, error) {
	cacheKey := fmt.Sprintf("problem:%d", problemID)

	var cached models.Problem
	if err := r.cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	query := `SELECT id, title, slug, difficulty, description, starter_code, test_cases, hints, created_at
              FROM problems WHERE id = ?`

	problem, err := r.getProblem(ctx, query, problemID)
	if err != nil {
		return nil, err
	}

	_ = r.cache.Set(ctx, cacheKey, problem, 1*time.Hour)

	return problem, nil
}

func (r *problemRepository) GetProblemBySlug(ctx context.Context, slug string) (*models.Problem, error) {
	cacheKey := fmt.Sprintf("problem:slug:%s", slug)

	var cached models.Problem
	if err := r.cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	query := `SELECT id, title, slug, difficulty, description, starter_code, test_cases, hints, created_at
              FROM problems WHERE slug = ?`

	problem, err := r.getProblem(ctx, query, slug)
	if err != nil {
		return nil, err
	}

	_ = r.cache.Set(ctx, cacheKey, problem, 1*time.Hour)

	return problem, nil
}

func (r *problemRepository) getProblem(ctx context.Context, query string, arg any) (*models.Problem, error) {
	var problem models.Problem
	if err := r.db.GetContext(ctx, &problem, query, arg); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("problem not found: %v", arg)
		}
		return nil, fmt.Errorf("failed to get problem: %w", err)
	}

	if err := problem.DecodeJSONColumns(); err != nil {
		return nil, fmt.Errorf("failed to decode problem columns: %w", err)
	}

	return &problem, nil
}

func (r *problemRepository) CountProblems(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM problems`); err != nil {
		return 0, fmt.Errorf("failed to count problems: %w", err)
	}
	return count, nil
}

func (r *problemRepository) InsertProblem(ctx context.Context, problem *models.Problem) error {
	query := `INSERT INTO problems (title, slug, difficulty, description, starter_code, test_cases, hints)
              VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		problem.Title,
		problem.Slug,
		problem.Difficulty,
		problem.Description,
		problem.StarterCodeRaw,
		problem.TestCasesRaw,
		problem.HintsRaw,
	)
	if err != nil {
		return fmt.Errorf("failed to insert problem: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}

	problem.ID = int(id)
	return nil
}
