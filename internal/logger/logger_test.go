package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestInitLogger(t *testing.T) {
	t.Run("development by default", func(t *testing.T) {
		t.Setenv("APP_ENV", "")
		InitLogger()
		if Log == nil {
			t.Fatal("expected logger to be initialized")
		}
		if !Log.Core().Enabled(zapcore.DebugLevel) {
			t.Error("development logger must enable debug level")
		}
	})

	t.Run("production", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		InitLogger()
		if Log == nil {
			t.Fatal("expected logger to be initialized")
		}
		if Log.Core().Enabled(zapcore.DebugLevel) {
			t.Error("production logger must not enable debug level")
		}
	})
}
