package models

import (
	"encoding/json"
	"time"
)

type Evaluation struct {
	ID                  int       `db:"id" json:"id"`
	SessionID           int       `db:"session_id" json:"session_id"`
	CommunicationScore  int       `db:"communication_score" json:"communication_score"`
	ProblemSolvingScore int       `db:"problem_solving_score" json:"problem_solving_score"`
	CodeQualityScore    int       `db:"code_quality_score" json:"code_quality_score"`
	OverallScore        int       `db:"overall_score" json:"overall_score"`
	Feedback            string    `db:"feedback" json:"feedback"`
	Strengths           []string  `db:"-" json:"strengths,omitempty"`
	Improvements        []string  `db:"-" json:"improvements,omitempty"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`

	StrengthsRaw    []byte `db:"strengths" json:"-"`
	ImprovementsRaw []byte `db:"improvements" json:"-"`
}

func (e *Evaluation) DecodeJSONColumns() error {
	if len(e.StrengthsRaw) > 0 {
		if err := json.Unmarshal(e.StrengthsRaw, &e.Strengths); err != nil {
			return err
		}
	}
	if len(e.ImprovementsRaw) > 0 {
		if err := json.Unmarshal(e.ImprovementsRaw, &e.Improvements); err != nil {
			return err
		}
	}
	return nil
}
