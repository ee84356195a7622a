package models

import (
	"errors"
	"strings"
	"time"
)

const (
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusAbandoned  = "abandoned"
)

type Session struct {
	ID              int         `db:"id" json:"id"`
	ProblemID       int         `db:"problem_id" json:"problem_id"`
	StartedAt       time.Time   `db:"started_at" json:"started_at"`
	CompletedAt     *time.Time  `db:"completed_at" json:"completed_at,omitempty"`
	DurationSeconds *int        `db:"duration_seconds" json:"duration_seconds,omitempty"`
	Code            *string     `db:"code" json:"code,omitempty"`
	Language        string      `db:"language" json:"language"`
	AudioFilePath   *string     `db:"audio_file_path" json:"-"`
	Transcription   *string     `db:"transcription" json:"transcription,omitempty"`
	HintsUsed       int         `db:"hints_used" json:"hints_used"`
	Status          string      `db:"status" json:"status"`
	Evaluation      *Evaluation `db:"-" json:"evaluation,omitempty"`
	Problem         *ProblemListItem `db:"-" json:"problem,omitempty"`
}

type SessionCreateRequest struct {
	ProblemID int    `json:"problem_id" binding:"required"`
	Language  string `json:"language"`
}

func (r *SessionCreateRequest) ValidateRequest() error {
	if r.ProblemID <= 0 {
		return errors.New("problem ID must be a positive integer")
	}
	if r.Language == "" {
		r.Language = "python"
	}
	return nil
}

type SessionSubmitRequest struct {
	Code      string `json:"code" binding:"required"`
	Language  string `json:"language"`
	HintsUsed int    `json:"hints_used"`
}

func (r *SessionSubmitRequest) ValidateRequest() error {
	if strings.TrimSpace(r.Code) == "" {
		return errors.New("code cannot be empty")
	}
	if r.HintsUsed < 0 {
		return errors.New("hints used cannot be negative")
	}
	if r.Language == "" {
		r.Language = "python"
	}
	return nil
}

type TranscriptionResponse struct {
	Transcription   string  `json:"transcription"`
	DurationSeconds float64 `json:"duration_seconds"`
}
