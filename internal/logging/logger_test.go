package logging

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

type captureWriter struct {
	lines []string
}

func (w *captureWriter) Write(p []byte) (int, error) {
	w.lines = append(w.lines, string(p))
	return len(p), nil
}

func newConsole(level slog.Level, w *captureWriter) *slog.Logger {
	levelVar := new(slog.LevelVar)
	levelVar.Set(level)
	return slog.New(&consoleHandler{writer: w, level: levelVar})
}

func TestConsoleHandlerFoldsComponentIntoPrefix(t *testing.T) {
	w := &captureWriter{}
	logger := WithComponent(newConsole(slog.LevelInfo, w), "splicer")

	logger.Info("replacing segment", slog.Int("offset_ms", 10000))

	if len(w.lines) != 1 {
		t.Fatalf("expected one line, got %d", len(w.lines))
	}
	line := w.lines[0]
	if !strings.Contains(line, " INFO splicer: replacing segment") {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "offset_ms=10000") {
		t.Fatalf("missing attribute: %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component leaked as attribute: %q", line)
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	w := &captureWriter{}
	logger := newConsole(slog.LevelWarn, w)

	logger.Info("hidden")
	logger.Warn("visible")

	if len(w.lines) != 1 || !strings.Contains(w.lines[0], "WARN") {
		t.Fatalf("unexpected output: %v", w.lines)
	}
}

func TestConsoleHandlerQuotesAwkwardValues(t *testing.T) {
	w := &captureWriter{}
	logger := newConsole(slog.LevelInfo, w)

	logger.Info("msg", slog.String("path", "a b.wav"), slog.Duration("took", 1500*time.Millisecond))

	line := w.lines[0]
	if !strings.Contains(line, `path="a b.wav"`) {
		t.Fatalf("expected quoted value: %q", line)
	}
	if !strings.Contains(line, "took=1.5s") {
		t.Fatalf("expected duration formatting: %q", line)
	}
}

func TestConsoleHandlerGroupsFlattenWithDots(t *testing.T) {
	w := &captureWriter{}
	logger := newConsole(slog.LevelInfo, w)

	logger.Info("msg", slog.Group("voice", slog.String("name", "Amy")))

	if !strings.Contains(w.lines[0], "voice.name=Amy") {
		t.Fatalf("unexpected line: %q", w.lines[0])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestParseLevel(t *testing.T) {
	if parseLevel("debug") != slog.LevelDebug {
		t.Fatal("debug")
	}
	if parseLevel("") != slog.LevelInfo {
		t.Fatal("default")
	}
	if parseLevel("ERROR") != slog.LevelError {
		t.Fatal("error")
	}
}
