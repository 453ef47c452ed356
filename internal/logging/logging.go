// Package logging provides the slog-backed implementation of the
// simenv.Logger collaborator. Loggers are constructed explicitly and
// injected into worlds; there is no process-wide default.
package logging

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/robokit/simenv/internal/simenv"
)

// Logger filters by a settable minimum level and tags every record with
// the caller-supplied prefix. Safe for concurrent use.
type Logger struct {
	mu    sync.Mutex
	level simenv.LogLevel
	out   *slog.Logger
}

// New builds a logger writing text records to w. Records below level are
// suppressed.
func New(w io.Writer, level simenv.LogLevel) *Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	return &Logger{level: level, out: slog.New(h)}
}

// Discard returns a logger that drops everything, for tests and defaults.
func Discard() *Logger {
	return New(io.Discard, simenv.LevelError)
}

func (l *Logger) SetLevel(lvl simenv.LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = lvl
}

func (l *Logger) Level() simenv.LogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

func (l *Logger) Log(lvl simenv.LogLevel, msg, prefix string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if lvl < l.level {
		return
	}
	if prefix != "" {
		l.out.Log(context.Background(), slogLevel(lvl), msg, "prefix", prefix)
		return
	}
	l.out.Log(context.Background(), slogLevel(lvl), msg)
}

func (l *Logger) Debug(msg, prefix string) { l.Log(simenv.LevelDebug, msg, prefix) }
func (l *Logger) Info(msg, prefix string)  { l.Log(simenv.LevelInfo, msg, prefix) }
func (l *Logger) Warn(msg, prefix string)  { l.Log(simenv.LevelWarn, msg, prefix) }
func (l *Logger) Error(msg, prefix string) { l.Log(simenv.LevelError, msg, prefix) }

func slogLevel(lvl simenv.LogLevel) slog.Level {
	switch lvl {
	case simenv.LevelDebug:
		return slog.LevelDebug
	case simenv.LevelInfo:
		return slog.LevelInfo
	case simenv.LevelWarn:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
