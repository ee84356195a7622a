package models

import (
	"encoding/json"
	"time"
)

const (
	BadgeFirstSolve        = "first_solve"
	BadgePerfectScore      = "perfect_score"
	BadgeClearCommunicator = "clear_communicator"
)

type UserProgress struct {
	ID               int        `db:"id" json:"id"`
	TotalSessions    int        `db:"total_sessions" json:"total_sessions"`
	AverageScore     float64    `db:"average_score" json:"average_score"`
	StreakDays       int        `db:"streak_days" json:"streak_days"`
	LastPracticeDate *time.Time `db:"last_practice_date" json:"last_practice_date,omitempty"`
	Badges           []string   `db:"-" json:"badges"`

	BadgesRaw []byte `db:"badges" json:"-"`
}

func (p *UserProgress) DecodeJSONColumns() error {
	if len(p.BadgesRaw) > 0 {
		return json.Unmarshal(p.BadgesRaw, &p.Badges)
	}
	return nil
}

// HasBadge reports whether the badge has already been awarded.
func (p *UserProgress) HasBadge(name string) bool {
	for _, b := range p.Badges {
		if b == name {
			return true
		}
	}
	return false
}

// AwardBadge appends the badge unless it is already present.
func (p *UserProgress) AwardBadge(name string) {
	if !p.HasBadge(name) {
		p.Badges = append(p.Badges, name)
	}
}

type ScoreHistoryItem struct {
	Date           string `json:"date"`
	Overall        int    `json:"overall"`
	Communication  int    `json:"communication"`
	ProblemSolving int    `json:"problem_solving"`
	CodeQuality    int    `json:"code_quality"`
}

type DashboardStats struct {
	TotalSessions  int                `json:"total_sessions"`
	AverageScore   float64            `json:"average_score"`
	StreakDays     int                `json:"streak_days"`
	Badges         []string           `json:"badges"`
	RecentSessions []Session          `json:"recent_sessions"`
	ScoreHistory   []ScoreHistoryItem `json:"score_history"`
	SkillBreakdown map[string]float64 `json:"skill_breakdown"`
}
