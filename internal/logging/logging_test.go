package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	quiet, err := New(false)
	if err != nil {
		t.Fatalf("New(false): %v", err)
	}
	if quiet.Core().Enabled(zapcore.DebugLevel) {
		t.Error("default logger should not log debug")
	}
	if !quiet.Core().Enabled(zapcore.InfoLevel) {
		t.Error("default logger should log info")
	}

	verbose, err := New(true)
	if err != nil {
		t.Fatalf("New(true): %v", err)
	}
	if !verbose.Core().Enabled(zapcore.DebugLevel) {
		t.Error("verbose logger should log debug")
	}
}
