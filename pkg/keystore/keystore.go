// Package keystore persists user-supplied provider API keys on the local
// machine. Keys live only in a plain JSON file in the user's config
// directory and are sent directly to the AI providers - there is no
// server-side storage and no encryption; treat the file like a password.
package keystore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	defaultDirName  = "codecoach"
	defaultFileName = "keys.json"
)

type keyFile struct {
	AnthropicKey  string `json:"anthropic_key,omitempty"`
	ElevenLabsKey string `json:"elevenlabs_key,omitempty"`
}

// Store reads and writes the two provider keys. The zero value is not
// usable; construct with New or Open.
type Store struct {
	path string
}

// New returns a store backed by the default location under the user's
// config directory.
func New() (*Store, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to locate config directory: %w", err)
	}
	return Open(filepath.Join(dir, defaultDirName, defaultFileName)), nil
}

// Open returns a store backed by the given file path.
func Open(path string) *Store {
	return &Store{path: path}
}

// AnthropicKey returns the stored Anthropic key, or "" if unset.
func (s *Store) AnthropicKey() string {
	return s.load().AnthropicKey
}

// ElevenLabsKey returns the stored ElevenLabs key, or "" if unset.
func (s *Store) ElevenLabsKey() string {
	return s.load().ElevenLabsKey
}

func (s *Store) SetAnthropicKey(key string) error {
	kf := s.load()
	kf.AnthropicKey = key
	return s.save(kf)
}

func (s *Store) SetElevenLabsKey(key string) error {
	kf := s.load()
	kf.ElevenLabsKey = key
	return s.save(kf)
}

// ClearKeys removes both keys and the backing file.
func (s *Store) ClearKeys() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove key file: %w", err)
	}
	return nil
}

func (s *Store) HasAnthropicKey() bool {
	return s.AnthropicKey() != ""
}

func (s *Store) HasElevenLabsKey() bool {
	return s.ElevenLabsKey() != ""
}

// HasKeys reports whether both provider keys are configured.
func (s *Store) HasKeys() bool {
	kf := s.load()
	return kf.AnthropicKey != "" && kf.ElevenLabsKey != ""
}

// load tolerates a missing or unreadable file: absent keys read as empty,
// never as an error.
func (s *Store) load() keyFile {
	var kf keyFile
	data, err := os.ReadFile(s.path)
	if err != nil {
		return kf
	}
	_ = json.Unmarshal(data, &kf)
	return kf
}

func (s *Store) save(kf keyFile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create key directory: %w", err)
	}

	data, err := json.MarshalIndent(kf, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal keys: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write key file: %w", err)
	}
	return nil
}
