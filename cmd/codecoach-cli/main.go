// Command codecoach-cli is a terminal practice client for the CodeCoach
// API: browse problems, run a practice session with a recorded explanation
// and review dashboard stats.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/SaaiAravindhRaja/CodeCoach/pkg/client"
	"github.com/SaaiAravindhRaja/CodeCoach/pkg/keystore"
	"github.com/SaaiAravindhRaja/CodeCoach/pkg/practice"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		usage()
		return nil
	}

	store, err := keystore.New()
	if err != nil {
		return err
	}

	baseURL := os.Getenv("CODECOACH_URL")
	api := client.New(baseURL, client.WithKeys(store))
	ctx := context.Background()

	switch args[0] {
	case "keys":
		return runKeys(store, args[1:])
	case "problems":
		return runProblems(ctx, api)
	case "stats":
		return runStats(ctx, api)
	case "practice":
		return runPractice(ctx, api, args[1:])
	case "help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func usage() {
	fmt.Println(`usage: codecoach-cli <command>

commands:
  keys anthropic <key>    store your Anthropic API key
  keys elevenlabs <key>   store your ElevenLabs API key
  keys show               show which keys are configured
  keys clear              delete stored keys
  problems                list the problem catalog
  practice -problem <id>  start an interactive practice session
  stats                   show your dashboard stats

set CODECOACH_URL to point at a non-local server`)
}

func runKeys(store *keystore.Store, args []string) error {
	if len(args) == 0 {
		return errors.New("keys: missing subcommand")
	}
	switch args[0] {
	case "anthropic":
		if len(args) < 2 {
			return errors.New("keys anthropic: missing key")
		}
		return store.SetAnthropicKey(args[1])
	case "elevenlabs":
		if len(args) < 2 {
			return errors.New("keys elevenlabs: missing key")
		}
		return store.SetElevenLabsKey(args[1])
	case "show":
		fmt.Printf("anthropic:  %s\nelevenlabs: %s\n",
			configured(store.HasAnthropicKey()), configured(store.HasElevenLabsKey()))
		return nil
	case "clear":
		return store.ClearKeys()
	default:
		return fmt.Errorf("keys: unknown subcommand %q", args[0])
	}
}

func configured(ok bool) string {
	if ok {
		return "configured"
	}
	return "not set (server will use mock responses)"
}

func runProblems(ctx context.Context, api *client.Client) error {
	problems, err := api.ListProblems(ctx)
	if err != nil {
		return err
	}
	for _, p := range problems {
		fmt.Printf("%3d  %-8s %s\n", p.ID, p.Difficulty, p.Title)
	}
	return nil
}

func runStats(ctx context.Context, api *client.Client) error {
	stats, err := api.GetStats(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("sessions: %d   average: %.1f   streak: %d day(s)\n",
		stats.TotalSessions, stats.AverageScore, stats.StreakDays)
	if len(stats.Badges) > 0 {
		fmt.Println("badges:", strings.Join(stats.Badges, ", "))
	}
	for skill, score := range stats.SkillBreakdown {
		fmt.Printf("  %-15s %.1f\n", skill, score)
	}
	return nil
}

func runPractice(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("practice", flag.ContinueOnError)
	problemID := fs.Int("problem", 0, "problem id")
	language := fs.String("language", "python", "starting language")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *problemID == 0 {
		return errors.New("practice: -problem is required")
	}

	capture := &fileCapture{}
	recorder := practice.NewRecorder(capture, nil, nil)
	controller := practice.NewController(api, recorder, nil)

	if err := controller.Initialize(ctx, *problemID, *language); err != nil {
		return err
	}

	problem := controller.Problem()
	fmt.Printf("\n%s  [%s]\n\n%s\n", problem.Title, problem.Difficulty, problem.Description)
	for i, tc := range problem.TestCases {
		fmt.Printf("  example %d: %v => %v\n", i+1, tc.Input, tc.Expected)
	}
	fmt.Println("\ncommands: code <file>, lang <name>, hint, record <audio-file>, status, submit, quit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "code":
			if len(fields) < 2 {
				fmt.Println("usage: code <file>")
				continue
			}
			data, err := os.ReadFile(fields[1])
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			controller.SetCode(string(data))
			fmt.Printf("loaded %d bytes\n", len(data))
		case "lang":
			if len(fields) < 2 {
				fmt.Println("usage: lang <name>")
				continue
			}
			controller.SetLanguage(fields[1])
			fmt.Println("switched to", fields[1], "(code buffer reset to starter code)")
		case "hint":
			hint, err := controller.RevealHint(controller.HintsUsed())
			if err != nil {
				fmt.Println("no more hints")
				continue
			}
			fmt.Printf("hint %d: %s\n", controller.HintsUsed(), hint)
		case "record":
			if len(fields) < 2 {
				fmt.Println("usage: record <audio-file>")
				continue
			}
			capture.path = fields[1]
			if err := controller.StartRecording(ctx); err != nil {
				fmt.Println("error:", err)
				continue
			}
			if err := controller.StopRecording(); err != nil {
				fmt.Println("error:", err)
				continue
			}
			fmt.Println("recording attached")
		case "status":
			fmt.Printf("phase=%s elapsed=%s hints=%d recording=%v\n",
				controller.Phase(), controller.Elapsed().Round(time.Second), controller.HintsUsed(), controller.HasRecording())
		case "submit":
			if err := controller.Submit(ctx); err != nil {
				fmt.Println("submit failed:", err)
				continue
			}
			fmt.Print(scorecard(controller.Session(), controller.Celebrate()))
			return nil
		case "quit":
			return nil
		default:
			fmt.Println("unknown command:", fields[0])
		}
	}
}

func scorecard(session *client.Session, celebrate bool) string {
	if session == nil || session.Evaluation == nil {
		return "session completed, but no evaluation came back; check it later with the stats command\n"
	}
	eval := session.Evaluation

	var b strings.Builder
	fmt.Fprintf(&b, `
results
  communication:    %d/10
  problem solving:  %d/10
  code quality:     %d/10
  overall:          %d/10

%s
`, eval.CommunicationScore, eval.ProblemSolvingScore, eval.CodeQualityScore, eval.OverallScore, eval.Feedback)
	for _, s := range eval.Strengths {
		fmt.Fprintln(&b, "  +", s)
	}
	for _, s := range eval.Improvements {
		fmt.Fprintln(&b, "  -", s)
	}
	if celebrate {
		fmt.Fprintln(&b, "\noutstanding performance, keep it up!")
	}
	return b.String()
}

// fileCapture satisfies practice.AudioCapture by reading a pre-recorded
// audio file, since a terminal has no microphone of its own.
type fileCapture struct {
	path string
	ch   chan practice.AudioChunk
}

func (f *fileCapture) Start(ctx context.Context) (<-chan practice.AudioChunk, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return nil, fmt.Errorf("%s: %w", f.path, practice.ErrPermissionDenied)
		}
		return nil, err
	}
	f.ch = make(chan practice.AudioChunk, 1)
	f.ch <- practice.AudioChunk{Data: data, Amplitude: 0.5}
	return f.ch, nil
}

func (f *fileCapture) Stop() error {
	close(f.ch)
	return nil
}
