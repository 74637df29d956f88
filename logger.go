package xmeans

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with xmeans-specific context.
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

// LogRefinement logs a parameter refinement pass.
func (l *Logger) LogRefinement(ctx context.Context, clusters, iterations int, converged bool) {
	if !converged {
		l.WarnContext(ctx, "refinement hit iteration cap",
			"clusters", clusters,
			"iterations", iterations,
		)
	} else {
		l.DebugContext(ctx, "refinement converged",
			"clusters", clusters,
			"iterations", iterations,
		)
	}
}

// LogSplit logs a single split decision during structural search.
func (l *Logger) LogSplit(ctx context.Context, cluster int, parentScore, childScore float64, accepted bool) {
	l.DebugContext(ctx, "split evaluated",
		"cluster", cluster,
		"parent_score", parentScore,
		"child_score", childScore,
		"accepted", accepted,
	)
}

// LogRun logs a completed clustering run.
func (l *Logger) LogRun(ctx context.Context, clusters int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "run failed",
			"clusters", clusters,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "run completed",
			"clusters", clusters,
		)
	}
}
