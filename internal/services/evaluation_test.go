package services

import (
	"strings"
	"testing"
)

func TestMockEvaluationDeterministic(t *testing.T) {
	code := strings.Repeat("x = 1\n", 20)
	transcription := "My approach uses a hash map. " + strings.Repeat("I check each element. ", 10)

	first := MockEvaluation(code, transcription, 0)
	second := MockEvaluation(code, transcription, 0)
	if first.OverallScore != second.OverallScore ||
		first.CommunicationScore != second.CommunicationScore ||
		first.Feedback != second.Feedback {
		t.Error("mock evaluation must be deterministic for identical input")
	}
}

func TestMockEvaluationScoring(t *testing.T) {
	longCode := strings.Repeat("def solve():\n    pass\n", 5)
	longTalk := strings.Repeat("I explain my approach and the edge cases and the complexity. ", 5)

	tests := []struct {
		name          string
		code          string
		transcription string
		hintsUsed     int
		wantComm      int
		wantProbSolve int
		wantQuality   int
		wantOverall   int
	}{
		{
			name:          "full effort with keywords",
			code:          longCode,
			transcription: longTalk,
			wantComm:      8, // 7 base + approach bonus
			wantProbSolve: 8, // 6 base + edge + complexity
			wantQuality:   7,
			wantOverall:   7, // (8+8+7)/3
		},
		{
			name:          "code only",
			code:          longCode,
			transcription: "ok",
			wantComm:      3,
			wantProbSolve: 6,
			wantQuality:   7,
			wantOverall:   5,
		},
		{
			name:          "minimal everything",
			code:          "x",
			transcription: "",
			wantComm:      3,
			wantProbSolve: 6,
			wantQuality:   4,
			wantOverall:   4,
		},
		{
			name:          "hints penalize overall only",
			code:          longCode,
			transcription: longTalk,
			hintsUsed:     2,
			wantComm:      8,
			wantProbSolve: 8,
			wantQuality:   7,
			wantOverall:   5,
		},
		{
			name:          "overall floors at one",
			code:          "x",
			transcription: "",
			hintsUsed:     9,
			wantComm:      3,
			wantProbSolve: 6,
			wantQuality:   4,
			wantOverall:   1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := MockEvaluation(tc.code, tc.transcription, tc.hintsUsed)
			if result.CommunicationScore != tc.wantComm {
				t.Errorf("communication: got %d, want %d", result.CommunicationScore, tc.wantComm)
			}
			if result.ProblemSolvingScore != tc.wantProbSolve {
				t.Errorf("problem solving: got %d, want %d", result.ProblemSolvingScore, tc.wantProbSolve)
			}
			if result.CodeQualityScore != tc.wantQuality {
				t.Errorf("code quality: got %d, want %d", result.CodeQualityScore, tc.wantQuality)
			}
			if result.OverallScore != tc.wantOverall {
				t.Errorf("overall: got %d, want %d", result.OverallScore, tc.wantOverall)
			}
			if result.Feedback == "" || len(result.Strengths) == 0 || len(result.Improvements) == 0 {
				t.Error("mock evaluation must always include feedback, strengths and improvements")
			}
		})
	}
}

func TestParseEvaluationJSON(t *testing.T) {
	clean := `{"communication_score": 8, "problem_solving_score": 7, "code_quality_score": 9, "overall_score": 8, "feedback": "Solid.", "strengths": ["clear"], "improvements": ["edge cases"]}`

	t.Run("strict json", func(t *testing.T) {
		result, err := parseEvaluationJSON(clean)
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if result.OverallScore != 8 || result.Feedback != "Solid." {
			t.Errorf("unexpected result: %+v", result)
		}
	})

	t.Run("json wrapped in prose", func(t *testing.T) {
		result, err := parseEvaluationJSON("Here is my evaluation:\n" + clean + "\nHope this helps!")
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if result.CommunicationScore != 8 {
			t.Errorf("unexpected result: %+v", result)
		}
	})

	t.Run("no json at all", func(t *testing.T) {
		if _, err := parseEvaluationJSON("I cannot evaluate this."); err == nil {
			t.Error("expected an error for a reply without JSON")
		}
	})
}

func TestClamp(t *testing.T) {
	result := EvaluationResult{
		CommunicationScore:  -3,
		ProblemSolvingScore: 15,
		CodeQualityScore:    7,
		OverallScore:        11,
	}
	result.Clamp()
	if result.CommunicationScore != 0 || result.ProblemSolvingScore != 10 ||
		result.CodeQualityScore != 7 || result.OverallScore != 10 {
		t.Errorf("scores not clamped to [0, 10]: %+v", result)
	}
}
