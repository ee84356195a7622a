package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/SaaiAravindhRaja/CodeCoach/internal/logger"
	"github.com/SaaiAravindhRaja/CodeCoach/internal/models"

	"go.uber.org/zap"
)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"
	evaluationModel      = "claude-sonnet-4-20250514"
)

const evaluationPrompt = `You are an expert technical interviewer evaluating a coding interview practice session.

PROBLEM: %s
DIFFICULTY: %s
DESCRIPTION: %s

CANDIDATE'S CODE (%s):
` + "```%s\n%s\n```" + `

CANDIDATE'S VERBAL EXPLANATION (transcribed):
"%s"

TIME TAKEN: %.1f minutes
HINTS USED: %d

Evaluate this interview session on these dimensions:

1. COMMUNICATION CLARITY (1-10):
   - Did they explain their approach before/while coding?
   - Did they think aloud effectively?
   - Was their explanation clear and structured?
   - Did they discuss trade-offs?

2. PROBLEM-SOLVING METHODOLOGY (1-10):
   - Did they clarify the problem or verbalize assumptions?
   - Did they discuss edge cases?
   - Did they consider multiple approaches?
   - Did they optimize their solution?

3. CODE QUALITY (1-10):
   - Is the code correct for the given problem?
   - Is it efficient (time/space complexity)?
   - Is it readable (naming, structure)?
   - Does it handle edge cases?

4. OVERALL INTERVIEW READINESS (1-10):
   - Holistic score considering all factors
   - Apply a penalty if hints were used: reduce by %d points (minimum 1)

Provide detailed, constructive feedback that helps the candidate improve.

Respond ONLY with valid JSON in this exact format:
{
  "communication_score": <1-10>,
  "problem_solving_score": <1-10>,
  "code_quality_score": <1-10>,
  "overall_score": <1-10>,
  "feedback": "<2-3 paragraph detailed feedback>",
  "strengths": ["strength 1", "strength 2", "strength 3"],
  "improvements": ["improvement 1", "improvement 2", "improvement 3"]
}`

// EvaluationInput carries everything the evaluator needs about a session.
type EvaluationInput struct {
	Problem         *models.Problem
	Code            string
	Transcription   string
	Language        string
	DurationSeconds int
	HintsUsed       int
}

type EvaluationResult struct {
	CommunicationScore  int      `json:"communication_score"`
	ProblemSolvingScore int      `json:"problem_solving_score"`
	CodeQualityScore    int      `json:"code_quality_score"`
	OverallScore        int      `json:"overall_score"`
	Feedback            string   `json:"feedback"`
	Strengths           []string `json:"strengths"`
	Improvements        []string `json:"improvements"`
}

type EvaluationService struct {
	fallbackKey string
	httpClient  *http.Client
}

func NewEvaluationService(fallbackKey string) *EvaluationService {
	return &EvaluationService{
		fallbackKey: fallbackKey,
		httpClient:  &http.Client{Timeout: 90 * time.Second},
	}
}

// Evaluate scores a session with Claude. The per-request key takes
// precedence over the server fallback; with no key, or on provider error,
// a deterministic mock evaluation is returned instead.
func (s *EvaluationService) Evaluate(ctx context.Context, input EvaluationInput, apiKey string) *EvaluationResult {
	effectiveKey := apiKey
	if effectiveKey == "" {
		effectiveKey = s.fallbackKey
	}

	if effectiveKey == "" {
		return MockEvaluation(input.Code, input.Transcription, input.HintsUsed)
	}

	result, err := s.callProvider(ctx, input, effectiveKey)
	if err != nil {
		logger.Log.Error("Evaluation request failed", zap.Error(err))
		return MockEvaluation(input.Code, input.Transcription, input.HintsUsed)
	}

	result.Clamp()
	return result
}

func (s *EvaluationService) callProvider(ctx context.Context, input EvaluationInput, apiKey string) (*EvaluationResult, error) {
	durationMinutes := float64(input.DurationSeconds) / 60

	prompt := fmt.Sprintf(evaluationPrompt,
		input.Problem.Title,
		input.Problem.Difficulty,
		input.Problem.Description,
		input.Language,
		input.Language,
		input.Code,
		input.Transcription,
		durationMinutes,
		input.HintsUsed,
		input.HintsUsed,
	)

	reqBody, err := json.Marshal(map[string]any{
		"model":      evaluationModel,
		"max_tokens": 1500,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, anthropicMessagesURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	var payload struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(payload.Content) == 0 {
		return nil, fmt.Errorf("empty response content")
	}

	return parseEvaluationJSON(payload.Content[0].Text)
}

// parseEvaluationJSON decodes the model's reply, tolerating prose around the
// JSON object by falling back to the outermost brace pair.
func parseEvaluationJSON(text string) (*EvaluationResult, error) {
	var result EvaluationResult
	if err := json.Unmarshal([]byte(text), &result); err == nil {
		return &result, nil
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("could not locate JSON in response")
	}

	if err := json.Unmarshal([]byte(text[start:end+1]), &result); err != nil {
		return nil, fmt.Errorf("failed to parse evaluation JSON: %w", err)
	}

	return &result, nil
}

// Clamp forces every score into [0, 10].
func (r *EvaluationResult) Clamp() {
	r.CommunicationScore = clampScore(r.CommunicationScore)
	r.ProblemSolvingScore = clampScore(r.ProblemSolvingScore)
	r.CodeQualityScore = clampScore(r.CodeQualityScore)
	r.OverallScore = clampScore(r.OverallScore)
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}

// MockEvaluation scores a session heuristically for development and demo
// use: substantial code and a substantial explanation earn higher bases,
// certain keywords in the transcript earn bonuses, and each hint used
// subtracts a point from the overall score (floored at 1).
func MockEvaluation(code, transcription string, hintsUsed int) *EvaluationResult {
	hasCode := len(strings.TrimSpace(code)) > 50
	hasExplanation := len(strings.TrimSpace(transcription)) > 100

	baseCodeScore := 4
	if hasCode {
		baseCodeScore = 7
	}
	baseCommScore := 3
	if hasExplanation {
		baseCommScore = 7
	}

	lower := strings.ToLower(transcription)

	communication := baseCommScore
	if strings.Contains(lower, "approach") {
		communication++
	}

	problemSolving := 6
	if strings.Contains(lower, "edge") {
		problemSolving++
	}
	if strings.Contains(lower, "complexity") {
		problemSolving++
	}

	communication = boundScore(communication)
	problemSolving = boundScore(problemSolving)
	codeQuality := boundScore(baseCodeScore)

	overall := (communication + problemSolving + codeQuality) / 3
	overall -= hintsUsed
	if overall < 1 {
		overall = 1
	}

	result := &EvaluationResult{
		CommunicationScore:  communication,
		ProblemSolvingScore: problemSolving,
		CodeQualityScore:    codeQuality,
		OverallScore:        overall,
	}

	switch {
	case hasExplanation && hasCode:
		result.Feedback = "Good effort on this problem! You demonstrated a solid understanding of the approach " +
			"and communicated your thought process while coding. Your explanation showed awareness " +
			"of the algorithm's logic.\n\n" +
			"To improve, try to be more explicit about time and space complexity upfront. " +
			"Also, consider walking through a specific example before diving into code - this " +
			"helps interviewers follow your reasoning and catches edge cases early.\n\n" +
			"Keep practicing! Your communication skills are developing well."
		result.Strengths = []string{
			"Explained approach while coding",
			"Code structure is readable",
			"Showed problem-solving initiative",
		}
		result.Improvements = []string{
			"Discuss time/space complexity more explicitly",
			"Walk through an example before coding",
			"Consider more edge cases verbally",
		}
	case hasCode:
		result.Feedback = "Your code shows understanding of the problem, but your verbal explanation was limited. " +
			"In real interviews, thinking aloud is crucial - interviewers want to understand your " +
			"thought process, not just see the final code.\n\n" +
			"Try to narrate what you're doing as you code: 'I'm using a hash map here because...', " +
			"'This loop handles the case where...' This gives interviewers insight into your reasoning.\n\n" +
			"Practice explaining your approach BEFORE writing code to build this habit."
		result.Strengths = []string{
			"Code demonstrates problem understanding",
			"Solution approach is reasonable",
		}
		result.Improvements = []string{
			"Explain your approach before coding",
			"Think aloud while implementing",
			"Discuss why you chose this approach over alternatives",
			"Verbalize edge cases you're handling",
		}
	default:
		result.Feedback = "This session needs more development. A strong interview performance requires both " +
			"working code AND clear communication. Start by reading the problem carefully, then " +
			"explain your initial thoughts before writing any code.\n\n" +
			"Try this structure: 1) Clarify the problem, 2) Discuss your approach, 3) Identify " +
			"edge cases, 4) Write code while explaining, 5) Test with examples.\n\n" +
			"Don't worry - interview skills improve with practice. Keep at it!"
		result.Strengths = []string{
			"Attempting the problem is the first step",
		}
		result.Improvements = []string{
			"Complete your code solution",
			"Practice explaining your thought process",
			"Structure your approach before coding",
			"Take time to understand the problem fully",
		}
	}

	return result
}

func boundScore(score int) int {
	if score < 1 {
		return 1
	}
	if score > 10 {
		return 10
	}
	return score
}
