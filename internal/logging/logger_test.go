package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"DEBUG", slog.LevelDebug, true},
		{"debug", slog.LevelDebug, true},
		{"Info", slog.LevelInfo, true},
		{"warn", slog.LevelWarn, true},
		{"WARNING", slog.LevelWarn, true},
		{" error ", slog.LevelError, true},
		{"", slog.LevelInfo, false},
		{"verbose", slog.LevelInfo, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, slog.LevelWarn)

	l.Info("hidden")
	l.Warn("shown", "particle", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info record written at warn level")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "particle=3") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("nop logger must be disabled at every level")
	}
	if OrNop(nil) == nil {
		t.Error("OrNop(nil) returned nil")
	}
	if got := OrNop(l); got != l {
		t.Error("OrNop must return a non-nil logger unchanged")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvLevel, "debug")
	if !FromEnv(slog.LevelError).Enabled(context.Background(), slog.LevelDebug) {
		t.Error("env level not applied")
	}

	t.Setenv(EnvLevel, "nonsense")
	if FromEnv(slog.LevelError).Enabled(context.Background(), slog.LevelWarn) {
		t.Error("fallback level not applied")
	}
}
