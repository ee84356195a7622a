package dbs

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// CreateSchema sets up the CodeCoach tables. A migration tool would own
// this in a larger deployment.
func CreateSchema(db *sqlx.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS problems (
			id INT AUTO_INCREMENT PRIMARY KEY,
			title VARCHAR(200) NOT NULL,
			slug VARCHAR(100) NOT NULL UNIQUE,
			difficulty VARCHAR(20) NOT NULL,
			description TEXT NOT NULL,
			starter_code JSON NOT NULL,
			test_cases JSON,
			hints JSON,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id INT AUTO_INCREMENT PRIMARY KEY,
			problem_id INT NOT NULL,
			started_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			completed_at TIMESTAMP NULL,
			duration_seconds INT,
			code TEXT,
			language VARCHAR(50) NOT NULL DEFAULT 'python',
			audio_file_path VARCHAR(500),
			transcription TEXT,
			hints_used INT NOT NULL DEFAULT 0,
			status VARCHAR(20) NOT NULL DEFAULT 'in_progress',
			FOREIGN KEY (problem_id) REFERENCES problems(id)
		)`,
		`CREATE TABLE IF NOT EXISTS evaluations (
			id INT AUTO_INCREMENT PRIMARY KEY,
			session_id INT NOT NULL UNIQUE,
			communication_score INT NOT NULL,
			problem_solving_score INT NOT NULL,
			code_quality_score INT NOT NULL,
			overall_score INT NOT NULL,
			feedback TEXT NOT NULL,
			strengths JSON,
			improvements JSON,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (session_id) REFERENCES sessions(id)
		)`,
		`CREATE TABLE IF NOT EXISTS user_progress (
			id INT AUTO_INCREMENT PRIMARY KEY,
			total_sessions INT NOT NULL DEFAULT 0,
			average_score DOUBLE NOT NULL DEFAULT 0,
			streak_days INT NOT NULL DEFAULT 0,
			last_practice_date TIMESTAMP NULL,
			badges JSON
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}
