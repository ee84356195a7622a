package main

import (
	"strings"
	"testing"

	"github.com/SaaiAravindhRaja/CodeCoach/pkg/client"
)

func TestScorecard(t *testing.T) {
	session := &client.Session{
		ID:     7,
		Status: "completed",
		Evaluation: &client.Evaluation{
			CommunicationScore:  8,
			ProblemSolvingScore: 7,
			CodeQualityScore:    9,
			OverallScore:        9,
			Feedback:            "Well reasoned.",
			Strengths:           []string{"clear narration"},
			Improvements:        []string{"discuss complexity"},
		},
	}

	out := scorecard(session, true)
	for _, want := range []string{"8/10", "Well reasoned.", "+ clear narration", "- discuss complexity", "outstanding performance"} {
		if !strings.Contains(out, want) {
			t.Errorf("scorecard missing %q:\n%s", want, out)
		}
	}
}

func TestScorecardWithoutEvaluation(t *testing.T) {
	out := scorecard(&client.Session{ID: 7, Status: "completed"}, false)
	if !strings.Contains(out, "no evaluation") {
		t.Errorf("expected graceful message for missing evaluation, got %q", out)
	}

	out = scorecard(nil, false)
	if !strings.Contains(out, "no evaluation") {
		t.Errorf("expected graceful message for nil session, got %q", out)
	}
}
