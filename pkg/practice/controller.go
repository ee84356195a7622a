// Package practice implements the client-side practice session flow: it
// loads a problem, tracks the code buffer, hints and timer, records the
// spoken explanation and walks a submit through transcription and
// evaluation against the CodeCoach API.
package practice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/SaaiAravindhRaja/CodeCoach/pkg/client"
)

// CelebrationThreshold is the overall score at or above which a completed
// session is celebrated.
const CelebrationThreshold = 9

// Phase is the controller's lifecycle stage. Recording is tracked
// separately and can overlap the ready phase.
type Phase string

const (
	PhaseUninitialized Phase = "uninitialized"
	PhaseLoading       Phase = "loading"
	PhaseReady         Phase = "ready"
	PhaseTranscribing  Phase = "transcribing"
	PhaseEvaluating    Phase = "evaluating"
	PhaseCompleted     Phase = "completed"
	PhaseFailed        Phase = "failed"
)

// API is the server surface the controller depends on. *client.Client
// satisfies it.
type API interface {
	GetProblem(ctx context.Context, id int) (*client.Problem, error)
	CreateSession(ctx context.Context, problemID int, language string) (*client.Session, error)
	UploadAudio(ctx context.Context, sessionID int, filename string, audio io.Reader) (*client.Transcription, error)
	SubmitSession(ctx context.Context, sessionID int, code, language string, hintsUsed int) (*client.Session, error)
}

// Controller owns one practice session's state. Methods are safe for
// concurrent use; network calls do not hold the lock, and responses that
// arrive after a Reset are discarded.
type Controller struct {
	api      API
	recorder *Recorder
	clock    Clock

	mu            sync.Mutex
	epoch         int
	phase         Phase
	problem       *client.Problem
	session       *client.Session
	language      string
	code          string
	revealed      map[int]bool
	artifact      *Artifact
	transcription string
	startedAt     time.Time
}

// NewController builds a controller over the given API and recorder. A nil
// clock uses the system clock.
func NewController(api API, recorder *Recorder, clock Clock) *Controller {
	if clock == nil {
		clock = SystemClock()
	}
	return &Controller{
		api:      api,
		recorder: recorder,
		clock:    clock,
		phase:    PhaseUninitialized,
		revealed: make(map[int]bool),
	}
}

// Phase returns the current lifecycle stage.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Problem returns the loaded problem, nil before initialization.
func (c *Controller) Problem() *client.Problem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.problem
}

// Session returns the current session. After a successful submit it carries
// the evaluation.
func (c *Controller) Session() *client.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Code returns the current contents of the code buffer.
func (c *Controller) Code() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.code
}

// Language returns the active language.
func (c *Controller) Language() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.language
}

// HasRecording reports whether an unsubmitted recording is held.
func (c *Controller) HasRecording() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.artifact != nil
}

// Transcription returns the transcript of the held recording, "" until the
// upload during submit succeeds.
func (c *Controller) Transcription() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transcription
}

// Initialize loads the problem and opens a session for it. The code buffer
// is seeded with the starter code for language.
func (c *Controller) Initialize(ctx context.Context, problemID int, language string) error {
	c.mu.Lock()
	if c.phase == PhaseLoading {
		c.mu.Unlock()
		return errors.New("initialization already in progress")
	}
	c.resetLocked()
	c.phase = PhaseLoading
	epoch := c.epoch
	c.mu.Unlock()

	problem, err := c.api.GetProblem(ctx, problemID)
	if err == nil {
		var session *client.Session
		session, err = c.api.CreateSession(ctx, problemID, language)
		if err == nil {
			c.mu.Lock()
			if c.epoch != epoch {
				c.mu.Unlock()
				return nil
			}
			c.problem = problem
			c.session = session
			c.language = language
			c.code = problem.StarterCode[language]
			c.startedAt = c.clock.Now()
			c.phase = PhaseReady
			c.mu.Unlock()
			return nil
		}
	}

	c.mu.Lock()
	if c.epoch == epoch {
		c.phase = PhaseFailed
	}
	c.mu.Unlock()
	return &LoadError{ProblemID: problemID, Err: err}
}

// SetCode replaces the code buffer.
func (c *Controller) SetCode(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseReady {
		return
	}
	c.code = code
}

// SetLanguage switches the active language and resets the code buffer to
// that language's starter code, discarding any edits.
func (c *Controller) SetLanguage(language string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseReady || c.problem == nil {
		return
	}
	c.language = language
	c.code = c.problem.StarterCode[language]
}

// RevealHint reveals the hint at index and returns its text. Revealing the
// same hint twice does not increase the hint count.
func (c *Controller) RevealHint(index int) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.problem == nil {
		return "", errors.New("no problem loaded")
	}
	if index < 0 || index >= len(c.problem.Hints) {
		return "", fmt.Errorf("hint index %d out of range", index)
	}
	c.revealed[index] = true
	return c.problem.Hints[index], nil
}

// HintsUsed returns the number of distinct hints revealed.
func (c *Controller) HintsUsed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.revealed)
}

// Elapsed returns time since the session opened, measured from the single
// instant captured at initialization.
func (c *Controller) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.startedAt.IsZero() {
		return 0
	}
	return c.clock.Now().Sub(c.startedAt)
}

// Recording reports whether the microphone is live.
func (c *Controller) Recording() bool {
	return c.recorder != nil && c.recorder.Recording()
}

// StartRecording begins capturing the spoken explanation. Starting while
// already recording is a no-op.
func (c *Controller) StartRecording(ctx context.Context) error {
	c.mu.Lock()
	if c.phase != PhaseReady {
		c.mu.Unlock()
		return errors.New("no active session")
	}
	c.mu.Unlock()
	if c.recorder == nil {
		return errors.New("no recorder configured")
	}
	return c.recorder.Start(ctx)
}

// StopRecording finishes the capture and holds the artifact for the next
// submit, replacing any previous recording and its transcript.
func (c *Controller) StopRecording() error {
	if c.recorder == nil {
		return errors.New("no recorder configured")
	}
	artifact, err := c.recorder.Stop()
	if err != nil {
		return err
	}
	if artifact == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.artifact = artifact
	c.transcription = ""
	return nil
}

// Submit validates the code buffer locally, uploads any untranscribed
// recording, then sends the code for evaluation. On success the controller
// enters the completed phase with the scored session.
//
// A failure at either stage aborts the submit and returns the controller
// to ready with the code, recording and any transcript intact, so a second
// Submit retries with the same inputs. A failed upload re-sends the same
// artifact; a successful upload's transcript is reused without uploading
// the audio again.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if strings.TrimSpace(c.code) == "" {
		c.mu.Unlock()
		return &ValidationError{Reason: "Please write some code before submitting"}
	}
	if c.phase != PhaseReady {
		c.mu.Unlock()
		return fmt.Errorf("cannot submit in phase %q", c.phase)
	}
	epoch := c.epoch
	session := c.session
	artifact := c.artifact
	transcribed := c.transcription != ""
	code := c.code
	language := c.language
	hintsUsed := len(c.revealed)

	if artifact != nil && !transcribed {
		c.phase = PhaseTranscribing
		c.mu.Unlock()

		result, err := c.api.UploadAudio(ctx, session.ID, artifact.Filename(), bytes.NewReader(artifact.Data))
		c.mu.Lock()
		if c.epoch != epoch {
			c.mu.Unlock()
			return nil
		}
		if err != nil {
			c.phase = PhaseReady
			c.mu.Unlock()
			return fmt.Errorf("transcription failed: %w", err)
		}
		c.transcription = result.Transcription
	}

	c.phase = PhaseEvaluating
	c.mu.Unlock()

	completed, err := c.api.SubmitSession(ctx, session.ID, code, language, hintsUsed)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch {
		return nil
	}
	if err != nil {
		c.phase = PhaseReady
		return fmt.Errorf("evaluation failed: %w", err)
	}
	c.session = completed
	c.phase = PhaseCompleted
	return nil
}

// Celebrate reports whether the completed session earned a celebration.
func (c *Controller) Celebrate() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase == PhaseCompleted &&
		c.session != nil &&
		c.session.Evaluation != nil &&
		c.session.Evaluation.OverallScore >= CelebrationThreshold
}

// Reset abandons the current session and returns to the uninitialized
// phase. In-flight responses for the old session are discarded.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

func (c *Controller) resetLocked() {
	c.epoch++
	c.phase = PhaseUninitialized
	c.problem = nil
	c.session = nil
	c.language = ""
	c.code = ""
	c.revealed = make(map[int]bool)
	c.artifact = nil
	c.transcription = ""
	c.startedAt = time.Time{}
}
