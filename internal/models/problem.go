package models

import (
	"encoding/json"
	"time"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

type ProblemListItem struct {
	ID         int    `db:"id" json:"id"`
	Title      string `db:"title" json:"title"`
	Slug       string `db:"slug" json:"slug"`
	Difficulty string `db:"difficulty" json:"difficulty"`
}

type TestCase struct {
	Input    map[string]any `json:"input"`
	Expected any            `json:"expected"`
}

type Problem struct {
	ID          int               `db:"id" json:"id"`
	Title       string            `db:"title" json:"title"`
	Slug        string            `db:"slug" json:"slug"`
	Difficulty  string            `db:"difficulty" json:"difficulty"`
	Description string            `db:"description" json:"description"`
	StarterCode map[string]string `db:"-" json:"starter_code"`
	TestCases   []TestCase        `db:"-" json:"test_cases,omitempty"`
	Hints       []string          `db:"-" json:"hints,omitempty"`
	CreatedAt   time.Time         `db:"created_at" json:"created_at"`

	// Raw JSON columns, decoded into the typed fields above by the
	// repository.
	StarterCodeRaw []byte `db:"starter_code" json:"-"`
	TestCasesRaw   []byte `db:"test_cases" json:"-"`
	HintsRaw       []byte `db:"hints" json:"-"`
}

// DecodeJSONColumns fills the typed fields from the raw JSON columns.
func (p *Problem) DecodeJSONColumns() error {
	if len(p.StarterCodeRaw) > 0 {
		if err := json.Unmarshal(p.StarterCodeRaw, &p.StarterCode); err != nil {
			return err
		}
	}
	if len(p.TestCasesRaw) > 0 {
		if err := json.Unmarshal(p.TestCasesRaw, &p.TestCases); err != nil {
			return err
		}
	}
	if len(p.HintsRaw) > 0 {
		if err := json.Unmarshal(p.HintsRaw, &p.Hints); err != nil {
			return err
		}
	}
	return nil
}
