// Package logger implements ports.Logger on top of log/slog.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"

	"go.trai.ch/depclean/internal/core/domain"
)

// Logger writes human-readable lines to stderr, or JSON records when switched with SetJSON.
// It is safe for concurrent use; lines from different goroutines never interleave.
type Logger struct {
	mu     sync.Mutex
	slog   *slog.Logger
	level  slog.LevelVar
	json   bool
	output io.Writer
}

// New creates a Logger writing pretty output to stderr at info level.
func New() *Logger {
	l := &Logger{output: os.Stderr}
	l.rebuild()
	return l
}

// rebuild swaps the slog handler. Callers hold mu, except New.
func (l *Logger) rebuild() {
	opts := &slog.HandlerOptions{Level: &l.level}
	if l.json {
		l.slog = slog.New(slog.NewJSONHandler(l.output, opts))
		return
	}
	l.slog = slog.New(NewPrettyHandler(l.output, opts))
}

// SetOutput redirects log lines to w. A nil w means os.Stderr.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.rebuild()
}

// SetJSON switches between JSON and pretty output.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.json == enable {
		return
	}
	l.json = enable
	l.rebuild()
}

// SetLevel drops every line below level. It takes effect immediately for both output modes.
func (l *Logger) SetLevel(level domain.LogLevel) {
	l.level.Set(slog.Level(level))
}

// Debug logs a diagnostic message, hidden unless the level is debug.
func (l *Logger) Debug(msg string) {
	l.log(slog.LevelDebug, msg)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.log(slog.LevelInfo, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.log(slog.LevelWarn, msg)
}

func (l *Logger) log(level slog.Level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.slog.Log(context.Background(), level, msg)
}

// Error logs err with its cause chain. In JSON mode the chain is a structured field.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entries := collectErrorEntries(err)
	if l.json {
		l.slog.Error("operation failed", "error", err.Error(), "chain", chainAttrs(entries))
		return
	}
	l.slog.Error(formatErrorEntries(entries))
}
