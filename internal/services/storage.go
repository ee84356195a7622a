package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// AudioStorage writes uploaded recordings to the uploads directory with
// collision-free names.
type AudioStorage struct {
	dir string
}

func NewAudioStorage(dir string) (*AudioStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &AudioStorage{dir: dir}, nil
}

// Save stores the audio stream as {sessionID}_{uuid}.{ext} and returns the
// file path. The extension comes from the uploaded filename, defaulting to
// webm (what browser recorders produce).
func (s *AudioStorage) Save(sessionID int, originalName string, data io.Reader) (string, error) {
	ext := "webm"
	if i := strings.LastIndex(originalName, "."); i != -1 && i < len(originalName)-1 {
		ext = originalName[i+1:]
	}

	name := fmt.Sprintf("%d_%s.%s", sessionID, uuid.New().String(), ext)
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create audio file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, data); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}

	return path, nil
}
