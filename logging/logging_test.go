package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew_AppendsToRunLog(t *testing.T) {
	dir := t.TempDir()

	log, closeFn, err := New(slog.LevelInfo, dir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	log.Info("first run", "rows", 3)
	closeFn()

	log, closeFn, err = New(slog.LevelInfo, dir)
	if err != nil {
		t.Fatal(err)
	}
	log.Info("second run")
	closeFn()

	data, err := os.ReadFile(filepath.Join(dir, "extractor.log"))
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, "first run") || !strings.Contains(out, "second run") {
		t.Errorf("run log is not append-only across runs:\n%s", out)
	}
}

func TestNew_LevelFiltersRecords(t *testing.T) {
	dir := t.TempDir()

	log, closeFn, err := New(slog.LevelWarn, dir)
	if err != nil {
		t.Fatal(err)
	}
	log.Info("too quiet")
	log.Warn("loud enough")
	closeFn()

	data, err := os.ReadFile(filepath.Join(dir, "extractor.log"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "too quiet") {
		t.Error("info record passed a warn-level logger")
	}
	if !strings.Contains(string(data), "loud enough") {
		t.Error("warn record missing")
	}
}
