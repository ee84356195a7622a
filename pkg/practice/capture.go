package practice

import (
	"context"
	"time"
)

// AudioChunk is one slice of encoded audio plus the peak amplitude observed
// while it was captured, normalized to [0, 1].
type AudioChunk struct {
	Data      []byte
	Amplitude float64
}

// AudioCapture is the platform capability behind the Recorder. Start begins
// capture and returns a channel of chunks; the channel must be closed after
// Stop, even when Stop fails, once the final chunk has been delivered.
// Start returns an error wrapping ErrPermissionDenied when microphone
// access is refused.
type AudioCapture interface {
	Start(ctx context.Context) (<-chan AudioChunk, error)
	Stop() error
}

// Artifact is a finished recording: the encoded audio plus how long the
// capture ran. A session holds at most one artifact at a time; a new
// recording replaces it.
type Artifact struct {
	Data     []byte
	MIMEType string
	Duration time.Duration
}

// Filename returns the upload name for the artifact.
func (a *Artifact) Filename() string {
	return "recording.webm"
}
