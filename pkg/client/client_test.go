package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SaaiAravindhRaja/CodeCoach/pkg/client"
)

type staticKeys struct {
	anthropic  string
	elevenlabs string
}

func (k staticKeys) AnthropicKey() string  { return k.anthropic }
func (k staticKeys) ElevenLabsKey() string { return k.elevenlabs }

func TestProviderKeyHeaders(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		json.NewEncoder(w).Encode([]client.ProblemListItem{})
	}))
	defer server.Close()

	t.Run("attached when configured", func(t *testing.T) {
		api := client.New(server.URL, client.WithKeys(staticKeys{anthropic: "sk-ant-test", elevenlabs: "el-test"}))
		if _, err := api.ListProblems(context.Background()); err != nil {
			t.Fatalf("ListProblems failed: %v", err)
		}
		if got.Get(client.AnthropicKeyHeader) != "sk-ant-test" {
			t.Errorf("missing anthropic key header, got %q", got.Get(client.AnthropicKeyHeader))
		}
		if got.Get(client.ElevenLabsKeyHeader) != "el-test" {
			t.Errorf("missing elevenlabs key header, got %q", got.Get(client.ElevenLabsKeyHeader))
		}
	})

	t.Run("omitted when absent", func(t *testing.T) {
		api := client.New(server.URL, client.WithKeys(staticKeys{}))
		if _, err := api.ListProblems(context.Background()); err != nil {
			t.Fatalf("ListProblems failed: %v", err)
		}
		if _, ok := got[client.AnthropicKeyHeader]; ok {
			t.Error("anthropic header must be omitted when no key is set")
		}
		if _, ok := got[client.ElevenLabsKeyHeader]; ok {
			t.Error("elevenlabs header must be omitted when no key is set")
		}
	})
}

func TestErrorDetailNormalization(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"detail body", http.StatusNotFound, `{"detail": "Problem not found"}`, "Problem not found"},
		{"empty body", http.StatusInternalServerError, "", "Request failed"},
		{"non-json body", http.StatusBadGateway, "<html>upstream</html>", "Request failed"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				io.WriteString(w, tc.body)
			}))
			defer server.Close()

			api := client.New(server.URL)
			_, err := api.GetProblem(context.Background(), 99)
			var reqErr *client.RequestError
			if !errors.As(err, &reqErr) {
				t.Fatalf("expected RequestError, got %v", err)
			}
			if reqErr.Status != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, reqErr.Status)
			}
			if reqErr.Message != tc.message {
				t.Errorf("expected message %q, got %q", tc.message, reqErr.Message)
			}
		})
	}
}

func TestListProblems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/problems" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]client.ProblemListItem{
			{ID: 1, Slug: "two-sum", Title: "Two Sum", Difficulty: "easy"},
			{ID: 2, Slug: "valid-parentheses", Title: "Valid Parentheses", Difficulty: "easy"},
		})
	}))
	defer server.Close()

	api := client.New(server.URL)
	problems, err := api.ListProblems(context.Background())
	if err != nil {
		t.Fatalf("ListProblems failed: %v", err)
	}
	if len(problems) != 2 || problems[0].Slug != "two-sum" {
		t.Errorf("unexpected problems: %+v", problems)
	}
}

func TestCreateAndSubmitSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/sessions":
			var payload map[string]interface{}
			json.NewDecoder(r.Body).Decode(&payload)
			if payload["problem_id"].(float64) != 1 || payload["language"] != "python" {
				t.Errorf("unexpected create payload: %v", payload)
			}
			json.NewEncoder(w).Encode(client.Session{ID: 7, ProblemID: 1, Status: "in_progress"})
		case "/api/sessions/7/submit":
			var payload map[string]interface{}
			json.NewDecoder(r.Body).Decode(&payload)
			if payload["code"] != "print(1)" || payload["hints_used"].(float64) != 2 {
				t.Errorf("unexpected submit payload: %v", payload)
			}
			json.NewEncoder(w).Encode(client.Session{
				ID:         7,
				Status:     "completed",
				Evaluation: &client.Evaluation{OverallScore: 8},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	api := client.New(server.URL)
	session, err := api.CreateSession(context.Background(), 1, "python")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if session.ID != 7 {
		t.Fatalf("expected session 7, got %d", session.ID)
	}

	completed, err := api.SubmitSession(context.Background(), session.ID, "print(1)", "python", 2)
	if err != nil {
		t.Fatalf("SubmitSession failed: %v", err)
	}
	if completed.Evaluation == nil || completed.Evaluation.OverallScore != 8 {
		t.Errorf("expected evaluation on completed session: %+v", completed.Evaluation)
	}
}

func TestUploadAudioMultipart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/sessions/7/audio" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		file, header, err := r.FormFile("audio")
		if err != nil {
			t.Fatalf("missing audio part: %v", err)
		}
		defer file.Close()
		if header.Filename != "recording.webm" {
			t.Errorf("unexpected filename %q", header.Filename)
		}
		data, _ := io.ReadAll(file)
		if string(data) != "fake-audio" {
			t.Errorf("unexpected audio payload %q", data)
		}
		json.NewEncoder(w).Encode(client.Transcription{Transcription: "I iterate once", DurationSeconds: 30})
	}))
	defer server.Close()

	api := client.New(server.URL)
	result, err := api.UploadAudio(context.Background(), 7, "recording.webm", strings.NewReader("fake-audio"))
	if err != nil {
		t.Fatalf("UploadAudio failed: %v", err)
	}
	if result.Transcription != "I iterate once" {
		t.Errorf("unexpected transcription %q", result.Transcription)
	}
}
