package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		mode, level string
		want        zapcore.Level
	}{
		{"dev", "", zapcore.WarnLevel},
		{"dev", "debug", zapcore.DebugLevel},
		{"prod", "INFO", zapcore.InfoLevel},
		{"production", "error", zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		l, err := New(tt.mode, tt.level)
		if err != nil {
			t.Fatalf("New(%q, %q): %v", tt.mode, tt.level, err)
		}
		if got := l.SugaredLogger.Level(); got != tt.want {
			t.Errorf("New(%q, %q) level = %v, want %v", tt.mode, tt.level, got, tt.want)
		}
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, err := New("dev", "loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestNopAndWith(t *testing.T) {
	l := Nop().With("component", "test")
	l.Info("ignored", "k", 1)
	l.Sync()
}
