package log

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"os"

	"github.com/felixgeelhaar/epistep/internal/analysis"
	"github.com/felixgeelhaar/epistep/internal/errors"
)

// Logger provides structured logging with slog
type Logger struct {
	slog   *slog.Logger
	config Config
}

// New creates a new Logger with the given configuration
func New(config Config) *Logger {
	opts := &slog.HandlerOptions{
		Level:     config.Level.ToSlogLevel(),
		AddSource: config.AddSource,
	}

	var out io.Writer = os.Stderr
	if config.Output != nil {
		out = config.Output
	}

	var handler slog.Handler
	switch config.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(out, opts)
	default:
		handler = slog.NewTextHandler(out, opts)
	}

	logger := slog.New(handler)
	if config.Component != "" {
		logger = logger.With("component", config.Component)
	}

	return &Logger{
		slog:   logger,
		config: config,
	}
}

// Default creates a logger with default configuration
func Default() *Logger {
	return New(DefaultConfig())
}

// Development creates a logger with development configuration
func Development() *Logger {
	return New(DevelopmentConfig())
}

// Discard creates a logger that drops every entry
func Discard() *Logger {
	return New(Config{Level: LevelError, Output: io.Discard})
}

// With returns a new Logger with the given attributes added to all log entries
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		slog:   l.slog.With(args...),
		config: l.config,
	}
}

// WithGroup returns a new Logger with a group name that prefixes all attributes
func (l *Logger) WithGroup(name string) *Logger {
	return &Logger{
		slog:   l.slog.WithGroup(name),
		config: l.config,
	}
}

// WithError adds error details to the logger.
// Coded errors contribute error_code and suggestions.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return l.With(errorArgs(err)...)
}

// WithSnapshot adds the identifying attributes of an analysis result
func (l *Logger) WithSnapshot(snap *analysis.Snapshot) *Logger {
	if snap == nil {
		return l
	}
	args := []any{
		"steps", snap.StepCount,
		"loops", snap.LoopTree.Len(),
		"valid", snap.IsValid,
		"total_duration", snap.TotalDuration.String(),
	}
	if id, err := snap.Recipe.ID(); err == nil {
		args = append([]any{"recipe_id", id.String()}, args...)
	}
	if names := snap.Flags.Names(); len(names) > 0 {
		args = append(args, "flags", names)
	}
	return l.With(args...)
}

// LogSnapshot writes a summary at info and each reason at debug
func (l *Logger) LogSnapshot(ctx context.Context, snap *analysis.Snapshot) {
	if snap == nil {
		return
	}
	logger := l.WithSnapshot(snap)
	logger.InfoContext(ctx, "recipe analyzed",
		"errors", len(snap.Errors()),
		"warnings", len(snap.Warnings()),
	)
	for _, r := range snap.Reasons {
		logger.DebugContext(ctx, "diagnostic",
			"severity", r.Severity.String(),
			"code", string(r.Code),
			"step", r.StepIndex,
			"message", r.Message,
		)
	}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, args ...any) {
	l.slog.Debug(msg, args...)
}

// DebugContext logs a debug message with context
func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.slog.DebugContext(ctx, msg, args...)
}

// Info logs an info message
func (l *Logger) Info(msg string, args ...any) {
	l.slog.Info(msg, args...)
}

// InfoContext logs an info message with context
func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.slog.InfoContext(ctx, msg, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, args ...any) {
	l.slog.Warn(msg, args...)
}

// WarnContext logs a warning message with context
func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.slog.WarnContext(ctx, msg, args...)
}

// Error logs an error message
func (l *Logger) Error(msg string, args ...any) {
	l.slog.Error(msg, args...)
}

// ErrorContext logs an error message with context
func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.slog.ErrorContext(ctx, msg, args...)
}

// LogError logs an error with its code, suggestions and cause
func (l *Logger) LogError(ctx context.Context, err error) {
	if err == nil {
		return
	}
	l.ErrorContext(ctx, "operation failed", errorArgs(err)...)
}

func errorArgs(err error) []any {
	var re *errors.RecipeError
	if !stderrors.As(err, &re) {
		return []any{"error", err.Error()}
	}

	args := []any{
		"error", re.Message,
		"error_code", string(re.Code),
	}
	if len(re.Suggestions) > 0 {
		args = append(args, "suggestions", re.Suggestions)
	}
	if re.DocsURL != "" {
		args = append(args, "docs_url", re.DocsURL)
	}
	if re.Cause != nil {
		args = append(args, "cause", re.Cause.Error())
	}
	return args
}

// Enabled returns whether the logger is enabled for the given level
func (l *Logger) Enabled(ctx context.Context, level Level) bool {
	return l.slog.Enabled(ctx, level.ToSlogLevel())
}

// Handler returns the underlying slog.Handler
func (l *Logger) Handler() slog.Handler {
	return l.slog.Handler()
}

// Config returns the logger configuration
func (l *Logger) Config() Config {
	return l.config
}
