package keystore

import (
	"os"
	"path/filepath"
	"testing"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return Open(filepath.Join(t.TempDir(), "keys.json"))
}

func TestMissingFileReadsAsEmpty(t *testing.T) {
	store := tempStore(t)
	if store.AnthropicKey() != "" || store.ElevenLabsKey() != "" {
		t.Error("absent key file must read as empty keys, not an error")
	}
	if store.HasKeys() {
		t.Error("HasKeys must be false with no file")
	}
}

func TestSetAndGetKeys(t *testing.T) {
	store := tempStore(t)

	if err := store.SetAnthropicKey("sk-ant-test"); err != nil {
		t.Fatalf("SetAnthropicKey failed: %v", err)
	}
	if err := store.SetElevenLabsKey("el-test"); err != nil {
		t.Fatalf("SetElevenLabsKey failed: %v", err)
	}

	if store.AnthropicKey() != "sk-ant-test" {
		t.Errorf("unexpected anthropic key %q", store.AnthropicKey())
	}
	if store.ElevenLabsKey() != "el-test" {
		t.Errorf("unexpected elevenlabs key %q", store.ElevenLabsKey())
	}
	if !store.HasKeys() {
		t.Error("HasKeys must be true with both keys set")
	}
}

func TestSetOneKeyKeepsTheOther(t *testing.T) {
	store := tempStore(t)
	if err := store.SetAnthropicKey("sk-ant-test"); err != nil {
		t.Fatalf("SetAnthropicKey failed: %v", err)
	}
	if err := store.SetElevenLabsKey("el-test"); err != nil {
		t.Fatalf("SetElevenLabsKey failed: %v", err)
	}
	if err := store.SetAnthropicKey("sk-ant-rotated"); err != nil {
		t.Fatalf("SetAnthropicKey failed: %v", err)
	}

	if store.AnthropicKey() != "sk-ant-rotated" {
		t.Errorf("expected rotated key, got %q", store.AnthropicKey())
	}
	if store.ElevenLabsKey() != "el-test" {
		t.Error("rotating one key must not clobber the other")
	}
}

func TestClearKeys(t *testing.T) {
	store := tempStore(t)
	if err := store.SetAnthropicKey("sk-ant-test"); err != nil {
		t.Fatalf("SetAnthropicKey failed: %v", err)
	}

	if err := store.ClearKeys(); err != nil {
		t.Fatalf("ClearKeys failed: %v", err)
	}
	if store.AnthropicKey() != "" {
		t.Error("expected empty key after clear")
	}
	if _, err := os.Stat(store.path); !os.IsNotExist(err) {
		t.Error("expected backing file removed")
	}

	// Clearing again is a no-op.
	if err := store.ClearKeys(); err != nil {
		t.Errorf("second ClearKeys failed: %v", err)
	}
}

func TestKeyFilePermissions(t *testing.T) {
	store := tempStore(t)
	if err := store.SetAnthropicKey("sk-ant-test"); err != nil {
		t.Fatalf("SetAnthropicKey failed: %v", err)
	}
	info, err := os.Stat(store.path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("key file must be private, got mode %o", info.Mode().Perm())
	}
}
