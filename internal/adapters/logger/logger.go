// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"sync"

	"go.trai.ch/capigrow/internal/core/domain"
	"go.trai.ch/capigrow/internal/core/ports"
)

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger *slog.Logger
	level  *slog.LevelVar
	mu     sync.RWMutex
}

// New creates a new Logger instance writing to stderr at info level.
func New() ports.Logger {
	return NewWithWriter(os.Stderr)
}

// NewWithWriter creates a Logger writing to w at info level.
func NewWithWriter(w io.Writer) *Logger {
	level := new(slog.LevelVar)
	level.Set(slog.LevelInfo)
	return &Logger{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})),
		level:  level,
	}
}

// SetOutput updates the logger's output destination, keeping its level.
func (l *Logger) SetOutput(w io.Writer) {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: l.level})
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger = slog.New(handler)
}

// SetLevel changes the minimum level written.
func (l *Logger) SetLevel(level domain.LogLevel) {
	l.level.Set(slog.Level(level))
}

// Debug logs a diagnostic message.
func (l *Logger) Debug(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Debug(msg)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error. Failures from the remote API carry their kind and HTTP status
// as attributes.
func (l *Logger) Error(err error) {
	msg, attrs := "operation failed", []any{"error", err}
	var gwErr *domain.GatewayError
	if errors.As(err, &gwErr) {
		msg = "request failed"
		attrs = append(attrs, "kind", string(gwErr.Kind))
		if gwErr.Status != 0 {
			attrs = append(attrs, "status", gwErr.Status)
		}
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Error(msg, attrs...)
}
