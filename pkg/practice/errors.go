package practice

import (
	"errors"
	"fmt"
)

// ErrPermissionDenied is returned by AudioCapture implementations when the
// user or OS refuses microphone access.
var ErrPermissionDenied = errors.New("microphone permission denied")

// LoadError reports a failure to load a problem or start a session during
// initialization.
type LoadError struct {
	ProblemID int
	Err       error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load problem %d: %v", e.ProblemID, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ValidationError reports a submit rejected locally, before any network
// call is made.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// PermissionError reports a recording start rejected for lack of
// microphone access.
type PermissionError struct {
	Err error
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("recording unavailable: %v", e.Err)
}

func (e *PermissionError) Unwrap() error {
	return e.Err
}
