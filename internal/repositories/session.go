package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/SaaiAravindhRaja/CodeCoach/internal/models"

	"github.com/jmoiron/sqlx"
)

type SessionRepository interface {
	CreateSession(ctx context.Context, session *models.Session) error
	GetSessionByID(ctx context.Context, sessionID int) (*models.Session, error)
	GetCompletedSessions(ctx context.Context, limit int) ([]models.Session, error)
	SaveTranscription(ctx context.Context, sessionID int, audioFilePath, transcription string) error
	CompleteSession(ctx context.Context, session *models.Session, evaluation *models.Evaluation) error
	GetRecentEvaluations(ctx context.Context, limit int) ([]models.Evaluation, error)
	GetAverageOverallScore(ctx context.Context) (float64, error)
}

type sessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) CreateSession(ctx context.Context, session *models.Session) error {
	query := `INSERT INTO sessions (problem_id, language, status) VALUES (?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		session.ProblemID,
		session.Language,
		models.StatusInProgress,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}

	session.ID = int(id)
	session.Status = models.StatusInProgress

	// Read back the database-assigned start timestamp so the elapsed
	// clock is anchored to a single instant.
	if err := r.db.GetContext(ctx, &session.StartedAt,
		`SELECT started_at FROM sessions WHERE id = ?`, session.ID); err != nil {
		return fmt.Errorf("failed to read session start time: %w", err)
	}

	return nil
}

func (r *sessionRepository) GetSessionByID(ctx context.Context, sessionID int) (*models.Session, error) {
	query := `SELECT id, problem_id, started_at, completed_at, duration_seconds, code,
                  language, audio_file_path, transcription, hints_used, status
              FROM sessions WHERE id = ?`

	var session models.Session
	if err := r.db.GetContext(ctx, &session, query, sessionID); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("session not found: %d", sessionID)
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if err := r.attachEvaluation(ctx, &session); err != nil {
		return nil, err
	}
	if err := r.attachProblem(ctx, &session); err != nil {
		return nil, err
	}

	return &session, nil
}

func (r *sessionRepository) GetCompletedSessions(ctx context.Context, limit int) ([]models.Session, error) {
	query := `SELECT id, problem_id, started_at, completed_at, duration_seconds, code,
                  language, audio_file_path, transcription, hints_used, status
              FROM sessions
              WHERE status = ?
              ORDER BY completed_at DESC
              LIMIT ?`

	var sessions []models.Session
	if err := r.db.SelectContext(ctx, &sessions, query, models.StatusCompleted, limit); err != nil {
		return nil, fmt.Errorf("failed to get completed sessions: %w", err)
	}

	for i := range sessions {
		if err := r.attachEvaluation(ctx, &sessions[i]); err != nil {
			return nil, err
		}
		if err := r.attachProblem(ctx, &sessions[i]); err != nil {
			return nil, err
		}
	}

	return sessions, nil
}

func (r *sessionRepository) SaveTranscription(ctx context.Context, sessionID int, audioFilePath, transcription string) error {
	query := `UPDATE sessions SET audio_file_path = ?, transcription = ? WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, audioFilePath, transcription, sessionID); err != nil {
		return fmt.Errorf("failed to save transcription: %w", err)
	}

	return nil
}

// CompleteSession marks the session completed and stores its evaluation in a
// single transaction. A session gets at most one evaluation.
func (r *sessionRepository) CompleteSession(ctx context.Context, session *models.Session, evaluation *models.Evaluation) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	updateQuery := `UPDATE sessions
                    SET code = ?, language = ?, hints_used = ?, completed_at = ?,
                        duration_seconds = ?, status = ?
                    WHERE id = ?`

	if _, err := tx.ExecContext(ctx, updateQuery,
		session.Code,
		session.Language,
		session.HintsUsed,
		session.CompletedAt,
		session.DurationSeconds,
		models.StatusCompleted,
		session.ID,
	); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	strengths, err := json.Marshal(evaluation.Strengths)
	if err != nil {
		return fmt.Errorf("failed to marshal strengths: %w", err)
	}
	improvements, err := json.Marshal(evaluation.Improvements)
	if err != nil {
		return fmt.Errorf("failed to marshal improvements: %w", err)
	}

	insertQuery := `INSERT INTO evaluations
                    (session_id, communication_score, problem_solving_score, code_quality_score,
                     overall_score, feedback, strengths, improvements)
                    VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := tx.ExecContext(ctx, insertQuery,
		session.ID,
		evaluation.CommunicationScore,
		evaluation.ProblemSolvingScore,
		evaluation.CodeQualityScore,
		evaluation.OverallScore,
		evaluation.Feedback,
		strengths,
		improvements,
	)
	if err != nil {
		return fmt.Errorf("failed to insert evaluation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	evaluation.ID = int(id)
	evaluation.SessionID = session.ID

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	session.Status = models.StatusCompleted
	session.Evaluation = evaluation
	return nil
}

func (r *sessionRepository) GetRecentEvaluations(ctx context.Context, limit int) ([]models.Evaluation, error) {
	query := `SELECT id, session_id, communication_score, problem_solving_score, code_quality_score,
                  overall_score, feedback, strengths, improvements, created_at
              FROM evaluations
              ORDER BY created_at DESC
              LIMIT ?`

	var evaluations []models.Evaluation
	if err := r.db.SelectContext(ctx, &evaluations, query, limit); err != nil {
		return nil, fmt.Errorf("failed to get evaluations: %w", err)
	}

	for i := range evaluations {
		if err := evaluations[i].DecodeJSONColumns(); err != nil {
			return nil, fmt.Errorf("failed to decode evaluation columns: %w", err)
		}
	}

	return evaluations, nil
}

func (r *sessionRepository) GetAverageOverallScore(ctx context.Context) (float64, error) {
	var avg sql.NullFloat64
	if err := r.db.GetContext(ctx, &avg, `SELECT AVG(overall_score) FROM evaluations`); err != nil {
		return 0, fmt.Errorf("failed to average overall scores: %w", err)
	}
	if !avg.Valid {
		return 0, nil
	}
	return avg.Float64, nil
}

func (r *sessionRepository) attachEvaluation(ctx context.Context, session *models.Session) error {
	query := `SELECT id, session_id, communication_score, problem_solving_score, code_quality_score,
                  overall_score, feedback, strengths, improvements, created_at
              FROM evaluations WHERE session_id = ?`

	var evaluation models.Evaluation
	err := r.db.GetContext(ctx, &evaluation, query, session.ID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil
		}
		return fmt.Errorf("failed to get evaluation: %w", err)
	}

	if err := evaluation.DecodeJSONColumns(); err != nil {
		return fmt.Errorf("failed to decode evaluation columns: %w", err)
	}

	session.Evaluation = &evaluation
	return nil
}

func (r *sessionRepository) attachProblem(ctx context.Context, session *models.Session) error {
	query := `SELECT id, title, slug, difficulty FROM problems WHERE id = ?`

	var problem models.ProblemListItem
	err := r.db.GetContext(ctx, &problem, query, session.ProblemID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil
		}
		return fmt.Errorf("failed to get session problem: %w", err)
	}

	session.Problem = &problem
	return nil
}
