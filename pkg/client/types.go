package client

// ProblemListItem is the slim problem shape returned by the list endpoint
// and attached to sessions.
type ProblemListItem struct {
	ID         int    `json:"id"`
	Slug       string `json:"slug"`
	Title      string `json:"title"`
	Difficulty string `json:"difficulty"`
}

// TestCase is a single example input/output pair shown alongside a problem.
type TestCase struct {
	Input    map[string]any `json:"input"`
	Expected any            `json:"expected"`
}

// Problem is the full problem detail, including per-language starter code
// and the ordered hint ladder.
type Problem struct {
	ID          int               `json:"id"`
	Slug        string            `json:"slug"`
	Title       string            `json:"title"`
	Difficulty  string            `json:"difficulty"`
	Description string            `json:"description"`
	StarterCode map[string]string `json:"starter_code"`
	TestCases   []TestCase        `json:"test_cases"`
	Hints       []string          `json:"hints"`
}

// Evaluation is the AI scorecard attached to a completed session. Scores
// are on a 1-10 scale.
type Evaluation struct {
	ID                  int      `json:"id"`
	SessionID           int      `json:"session_id"`
	CommunicationScore  int      `json:"communication_score"`
	ProblemSolvingScore int      `json:"problem_solving_score"`
	CodeQualityScore    int      `json:"code_quality_score"`
	OverallScore        int      `json:"overall_score"`
	Feedback            string   `json:"feedback"`
	Strengths           []string `json:"strengths,omitempty"`
	Improvements        []string `json:"improvements,omitempty"`
	CreatedAt           string   `json:"created_at"`
}

// Session is a single practice attempt at a problem.
type Session struct {
	ID              int              `json:"id"`
	ProblemID       int              `json:"problem_id"`
	StartedAt       string           `json:"started_at"`
	CompletedAt     string           `json:"completed_at,omitempty"`
	DurationSeconds int              `json:"duration_seconds,omitempty"`
	Code            string           `json:"code,omitempty"`
	Language        string           `json:"language"`
	Transcription   string           `json:"transcription,omitempty"`
	HintsUsed       int              `json:"hints_used"`
	Status          string           `json:"status"`
	Evaluation      *Evaluation      `json:"evaluation,omitempty"`
	Problem         *ProblemListItem `json:"problem,omitempty"`
}

// Transcription is the result of uploading a recorded explanation.
type Transcription struct {
	Transcription   string  `json:"transcription"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// ScoreHistoryItem is one point in the dashboard score chart.
type ScoreHistoryItem struct {
	Date           string `json:"date"`
	Overall        int    `json:"overall"`
	Communication  int    `json:"communication"`
	ProblemSolving int    `json:"problem_solving"`
	CodeQuality    int    `json:"code_quality"`
}

// DashboardStats is the aggregate progress view for the dashboard.
type DashboardStats struct {
	TotalSessions  int                `json:"total_sessions"`
	AverageScore   float64            `json:"average_score"`
	StreakDays     int                `json:"streak_days"`
	Badges         []string           `json:"badges"`
	RecentSessions []Session          `json:"recent_sessions"`
	ScoreHistory   []ScoreHistoryItem `json:"score_history"`
	SkillBreakdown map[string]float64 `json:"skill_breakdown"`
}
