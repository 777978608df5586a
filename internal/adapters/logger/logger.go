// Package logger implements ports.Logger on log/slog. Records go to stderr
// and, once AttachFile is called, to a plain text log file.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"go.trai.ch/lift/internal/core/domain"
	"go.trai.ch/lift/internal/core/ports"
	"go.trai.ch/zerr"
)

// Logger implements ports.Logger.
type Logger struct {
	mu       sync.RWMutex
	logger   *slog.Logger
	jsonMode bool
	output   io.Writer
	file     io.WriteCloser
	writeMu  sync.Mutex
}

// New returns a Logger writing pretty records to stderr.
func New() *Logger {
	l := &Logger{output: os.Stderr}
	l.rebuild()
	return l
}

var _ ports.Logger = (*Logger)(nil)

// SetOutput redirects console records to w. A nil w means stderr.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.rebuild()
}

// Output returns the console writer.
func (l *Logger) Output() io.Writer {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.output
}

// SetJSON switches console records between JSON and pretty output.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable
	l.rebuild()
}

// AttachFile appends every record to the file at path as well.
func (l *Logger) AttachFile(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, domain.FilePerm) //nolint:gosec // log path
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open log file"), "path", path)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		_ = l.file.Close()
	}
	l.file = f
	l.rebuild()
	return nil
}

// Close closes the log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.rebuild()
	return err
}

// rebuild must be called with mu held.
func (l *Logger) rebuild() {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	out := lockedWriter{mu: &l.writeMu, w: l.output}
	var console slog.Handler = NewPrettyHandler(out, opts)
	if l.jsonMode {
		console = slog.NewJSONHandler(out, opts)
	}
	if l.file == nil {
		l.logger = slog.New(console)
		return
	}
	l.logger = slog.New(fanout{console, slog.NewTextHandler(lockedWriter{mu: &l.writeMu, w: l.file}, opts)})
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs err with its cause chain.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.jsonMode {
		l.logger.Error("operation failed", "error", err)
		return
	}
	l.logger.Error(formatErrorEntries(collectErrorEntries(err)))
}

// lockedWriter serializes records written from concurrent operations.
type lockedWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (w lockedWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.w.Write(p)
}
