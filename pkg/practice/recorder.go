package practice

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"time"
)

// levelInterval bounds how often the amplitude callback fires regardless of
// how fast the capture device delivers chunks.
const levelInterval = 100 * time.Millisecond

// Recorder drives an AudioCapture through start/stop cycles and assembles
// each cycle's chunks into a single Artifact. Repeated Start or Stop calls
// in the same state are no-ops.
type Recorder struct {
	capture AudioCapture
	clock   Clock
	onLevel func(float64)

	mu          sync.Mutex
	recording   bool
	chunks      [][]byte
	done        chan struct{}
	startedAt   time.Time
	lastLevelAt time.Time
}

// NewRecorder wraps capture. onLevel may be nil; when set it receives
// amplitude samples at most once per levelInterval while recording.
func NewRecorder(capture AudioCapture, clock Clock, onLevel func(float64)) *Recorder {
	if clock == nil {
		clock = SystemClock()
	}
	return &Recorder{
		capture: capture,
		clock:   clock,
		onLevel: onLevel,
	}
}

// Recording reports whether a capture cycle is active.
func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// Start begins a capture cycle. Starting while already recording is a
// no-op. A refused microphone surfaces as *PermissionError.
func (r *Recorder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recording {
		return nil
	}

	chunks, err := r.capture.Start(ctx)
	if err != nil {
		if errors.Is(err, ErrPermissionDenied) {
			return &PermissionError{Err: err}
		}
		return err
	}

	r.recording = true
	r.chunks = nil
	r.startedAt = r.clock.Now()
	r.lastLevelAt = time.Time{}
	r.done = make(chan struct{})
	go r.collect(chunks, r.done)
	return nil
}

// Stop ends the capture cycle and returns the finished artifact. Stopping
// while not recording is a no-op returning nil. The collector is always
// joined before returning so a failed stop cannot leak chunks into the
// next cycle.
func (r *Recorder) Stop() (*Artifact, error) {
	r.mu.Lock()
	if !r.recording {
		r.mu.Unlock()
		return nil, nil
	}
	r.recording = false
	done := r.done
	startedAt := r.startedAt
	r.mu.Unlock()

	stopErr := r.capture.Stop()
	<-done

	r.mu.Lock()
	defer r.mu.Unlock()
	data := bytes.Join(r.chunks, nil)
	r.chunks = nil
	if stopErr != nil {
		return nil, stopErr
	}
	return &Artifact{
		Data:     data,
		MIMEType: "audio/webm",
		Duration: r.clock.Now().Sub(startedAt),
	}, nil
}

func (r *Recorder) collect(chunks <-chan AudioChunk, done chan struct{}) {
	defer close(done)
	for chunk := range chunks {
		r.mu.Lock()
		if len(chunk.Data) > 0 {
			r.chunks = append(r.chunks, chunk.Data)
		}
		emit := false
		now := r.clock.Now()
		if r.onLevel != nil && now.Sub(r.lastLevelAt) >= levelInterval {
			r.lastLevelAt = now
			emit = true
		}
		r.mu.Unlock()
		if emit {
			r.onLevel(chunk.Amplitude)
		}
	}
}
