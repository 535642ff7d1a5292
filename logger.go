package lookups

import (
	"log/slog"
	"os"

	"github.com/lima1909/lookups/index"
)

// Logger wraps slog.Logger with lookups-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithKind adds the index strategy kind to the logger.
func (l *Logger) WithKind(kind index.Kind) *Logger {
	return &Logger{
		Logger: l.Logger.With("kind", kind.String()),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogInsert logs an insert operation.
func (l *Logger) LogInsert(kind index.Kind, pos any, err error) {
	if err != nil {
		l.Error("insert failed",
			"kind", kind.String(),
			"error", err,
		)
	} else {
		l.Debug("insert completed",
			"kind", kind.String(),
			"pos", pos,
		)
	}
}

// LogRemove logs a remove operation.
func (l *Logger) LogRemove(kind index.Kind, pos any, err error) {
	if err != nil {
		l.Error("remove failed",
			"kind", kind.String(),
			"pos", pos,
			"error", err,
		)
	} else {
		l.Debug("remove completed",
			"kind", kind.String(),
			"pos", pos,
		)
	}
}

// LogUpdate logs an update operation.
func (l *Logger) LogUpdate(kind index.Kind, pos any, err error) {
	if err != nil {
		l.Error("update failed",
			"kind", kind.String(),
			"pos", pos,
			"error", err,
		)
	} else {
		l.Debug("update completed",
			"kind", kind.String(),
			"pos", pos,
		)
	}
}

// LogBulkLoad logs the construction-time bulk load.
func (l *Logger) LogBulkLoad(kind index.Kind, count int, err error) {
	if err != nil {
		l.Error("bulk load failed",
			"kind", kind.String(),
			"count", count,
			"error", err,
		)
	} else {
		l.Info("bulk load completed",
			"kind", kind.String(),
			"count", count,
		)
	}
}

// LogCreateView logs a view creation.
func (l *Logger) LogCreateView(kind index.Kind, keys, positions int) {
	l.Debug("view created",
		"kind", kind.String(),
		"keys", keys,
		"positions", positions,
	)
}
