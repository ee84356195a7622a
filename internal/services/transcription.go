package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/SaaiAravindhRaja/CodeCoach/internal/logger"

	"go.uber.org/zap"
)

const elevenLabsSTTURL = "https://api.elevenlabs.io/v1/speech-to-text"

// mockTranscription stands in when no ElevenLabs key is configured so the
// rest of the pipeline can be exercised without a provider account.
const mockTranscription = "[Transcription will appear here when an ElevenLabs API key is configured. " +
	"For now, using placeholder text.]\n\n" +
	"So for this problem, I'm thinking we can use a hash map approach. " +
	"First, I'll iterate through the array and for each element, check if " +
	"the complement exists in our map. The complement would be target minus " +
	"the current number. If it exists, we found our pair. If not, we add the " +
	"current number to the map. This gives us O(n) time complexity since we " +
	"only pass through the array once, and O(n) space for the hash map."

type TranscriptionResult struct {
	Text     string
	Duration float64
}

type TranscriptionService struct {
	fallbackKey string
	httpClient  *http.Client
}

func NewTranscriptionService(fallbackKey string) *TranscriptionService {
	return &TranscriptionService{
		fallbackKey: fallbackKey,
		httpClient:  &http.Client{Timeout: 60 * time.Second},
	}
}

// Transcribe sends the audio file to ElevenLabs speech-to-text. The
// per-request key takes precedence over the server fallback. Provider
// failures degrade to placeholder text rather than failing the upload.
func (s *TranscriptionService) Transcribe(ctx context.Context, filePath, apiKey string) *TranscriptionResult {
	effectiveKey := apiKey
	if effectiveKey == "" {
		effectiveKey = s.fallbackKey
	}

	if effectiveKey == "" {
		return &TranscriptionResult{Text: mockTranscription, Duration: 45.0}
	}

	result, err := s.callProvider(ctx, filePath, effectiveKey)
	if err != nil {
		logger.Log.Error("Transcription request failed",
			zap.String("file", filePath),
			zap.Error(err))
		return &TranscriptionResult{
			Text: fmt.Sprintf("[Transcription error: %v. Please check your API configuration.]", err),
		}
	}

	return result
}

func (s *TranscriptionService) callProvider(ctx context.Context, filePath, apiKey string) (*TranscriptionResult, error) {
	audioFile, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer audioFile.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, audioFile); err != nil {
		return nil, fmt.Errorf("failed to copy audio data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, elevenLabsSTTURL, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("xi-api-key", apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &TranscriptionResult{
			Text: fmt.Sprintf("[Transcription failed: %d. Using recorded audio for evaluation.]", resp.StatusCode),
		}, nil
	}

	var payload struct {
		Text     string  `json:"text"`
		Duration float64 `json:"duration"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &TranscriptionResult{Text: payload.Text, Duration: payload.Duration}, nil
}
