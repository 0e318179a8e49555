package log

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// TeeHandler duplicates log records to multiple slog handlers.
// It is how a crawl's log stream reaches both the terminal and the
// log file without the call sites knowing about either.
//
// Design decision: We tee at the handler level rather than with an
// io.MultiWriter because the two destinations may want different
// handlers entirely (a terminal-friendly text handler on stderr, a
// JSON handler in the file for tooling).
type TeeHandler struct {
	// handlers receive every record in order.
	handlers []slog.Handler
}

// NewTeeHandler creates a TeeHandler fanning out to the given
// handlers. Nil handlers are skipped.
func NewTeeHandler(handlers ...slog.Handler) *TeeHandler {
	kept := make([]slog.Handler, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			kept = append(kept, h)
		}
	}
	return &TeeHandler{handlers: kept}
}

// Enabled reports whether any underlying handler handles records at
// the given level.
func (h *TeeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle passes the record to every underlying handler that accepts
// its level. All handlers see the record even if an earlier one
// fails; the errors are joined.
func (h *TeeHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, r.Level) {
			continue
		}
		if err := handler.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WithAttrs returns a new handler with the given attributes added to
// every underlying handler.
func (h *TeeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithAttrs(attrs)
	}
	return &TeeHandler{handlers: handlers}
}

// WithGroup returns a new handler with the given group name applied
// to every underlying handler.
func (h *TeeHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithGroup(name)
	}
	return &TeeHandler{handlers: handlers}
}

// NewTeeLogger creates a slog.Logger writing to both terminal and
// logFile. logFile may be nil, in which case only terminal receives
// records.
//
// Parameters:
//   - terminal: writer for the human-facing stream (typically os.Stderr)
//   - logFile: writer for the persistent stream, or nil
//   - verbose: if true, sets log level to Debug; otherwise Info
//
// The terminal gets a text handler; the log file gets a JSON handler
// so the persisted stream stays machine-readable.
func NewTeeLogger(terminal io.Writer, logFile io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	var fileHandler slog.Handler
	if logFile != nil {
		fileHandler = slog.NewJSONHandler(logFile, opts)
	}

	return slog.New(NewTeeHandler(
		slog.NewTextHandler(terminal, opts),
		fileHandler,
	))
}

// OpenLogFile creates or truncates "<stem>.log" for a crawl's
// persistent log stream. The caller owns the returned file.
func OpenLogFile(stem string) (*os.File, error) {
	path := stem + ".log"
	f, err := os.Create(path) //nolint:gosec // Path derives from the user's output flag
	if err != nil {
		return nil, fmt.Errorf("failed to create log file %s: %w", path, err)
	}
	return f, nil
}
