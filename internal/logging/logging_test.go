package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"", zapcore.InfoLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
	if _, err := ParseLevel("chatty"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNew(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		log, err := New("warn", format)
		if err != nil {
			t.Fatalf("New(%s): %v", format, err)
		}
		if log.Core().Enabled(zapcore.InfoLevel) {
			t.Fatalf("%s logger enabled info at warn level", format)
		}
		if !log.Core().Enabled(zapcore.ErrorLevel) {
			t.Fatalf("%s logger disabled error at warn level", format)
		}
	}
	if _, err := New("info", "xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
