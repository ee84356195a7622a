package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/SaaiAravindhRaja/CodeCoach/internal/models"

	"github.com/jmoiron/sqlx"
)

type ProgressRepository interface {
	GetOrCreateProgress(ctx context.Context) (*models.UserProgress, error)
	UpdateProgress(ctx context.Context, progress *models.UserProgress) error
}

type progressRepository struct {
	db *sqlx.DB
}

func NewProgressRepository(db *sqlx.DB) ProgressRepository {
	return &progressRepository{db: db}
}

// GetOrCreateProgress returns the single progress row, creating it on first
// use. The application tracks one practicing user.
func (r *progressRepository) GetOrCreateProgress(ctx context.Context) (*models.UserProgress, error) {
	query := `SELECT id, total_sessions, average_score, streak_days, last_practice_date, badges
              FROM user_progress LIMIT 1`

	var progress models.UserProgress
	err := r.db.GetContext(ctx, &progress, query)
	if err == nil {
		if err := progress.DecodeJSONColumns(); err != nil {
			return nil, fmt.Errorf("failed to decode progress columns: %w", err)
		}
		return &progress, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get user progress: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO user_progress (total_sessions, average_score, streak_days, badges)
         VALUES (0, 0, 0, ?)`, []byte("[]"))
	if err != nil {
		return nil, fmt.Errorf("failed to create user progress: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert ID: %w", err)
	}

	return &models.UserProgress{ID: int(id), Badges: []string{}}, nil
}

func (r *progressRepository) UpdateProgress(ctx context.Context, progress *models.UserProgress) error {
	badges, err := json.Marshal(progress.Badges)
	if err != nil {
		return fmt.Errorf("failed to marshal badges: %w", err)
	}

	query := `UPDATE user_progress
              SET total_sessions = ?, average_score = ?, streak_days = ?,
                  last_practice_date = ?, badges = ?
              WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query,
		progress.TotalSessions,
		progress.AverageScore,
		progress.StreakDays,
		progress.LastPracticeDate,
		badges,
		progress.ID,
	); err != nil {
		return fmt.Errorf("failed to update user progress: %w", err)
	}

	return nil
}
