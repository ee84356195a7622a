package handlers

import (
	"testing"

	"github.com/SaaiAravindhRaja/CodeCoach/internal/models"
)

func TestSkillBreakdown(t *testing.T) {
	evaluations := []models.Evaluation{
		{CommunicationScore: 8, ProblemSolvingScore: 6, CodeQualityScore: 7},
		{CommunicationScore: 6, ProblemSolvingScore: 8, CodeQualityScore: 9},
	}

	breakdown := SkillBreakdown(evaluations)

	if breakdown["communication"] != 7.0 {
		t.Errorf("communication: got %.1f, want 7.0", breakdown["communication"])
	}
	if breakdown["problem_solving"] != 7.0 {
		t.Errorf("problem_solving: got %.1f, want 7.0", breakdown["problem_solving"])
	}
	if breakdown["code_quality"] != 8.0 {
		t.Errorf("code_quality: got %.1f, want 8.0", breakdown["code_quality"])
	}
	if breakdown["speed"] != 7.0 || breakdown["edge_cases"] != 6.5 {
		t.Error("placeholder dimensions missing")
	}
}

func TestSkillBreakdownEmpty(t *testing.T) {
	breakdown := SkillBreakdown(nil)
	for skill, score := range breakdown {
		if score != 0 {
			t.Errorf("%s: expected 0 with no evaluations, got %.1f", skill, score)
		}
	}
	if len(breakdown) != 5 {
		t.Errorf("expected all 5 dimensions present, got %d", len(breakdown))
	}
}
