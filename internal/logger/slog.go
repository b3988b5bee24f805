package logger

import (
	"context"
	"fmt"
	"log/slog"
)

// slogLogger implements Logger on top of log/slog, mirroring the teacher's
// SlogLogger (pkg/logger in the waugzee server).
type slogLogger struct {
	logger *slog.Logger
}

// NewWithConfig builds a Logger from an explicit Config, used by New and by
// callers (cmd/dgkit) that want to route output to a specific writer.
func NewWithConfig(cfg Config) Logger {
	writer := cfg.Writer
	if writer == nil {
		writer = defaultWriter
	}

	opts := &slog.HandlerOptions{Level: slog.Level(cfg.Level), AddSource: cfg.AddSource}

	var handler slog.Handler
	switch cfg.Format {
	case FormatText:
		handler = slog.NewTextHandler(writer, opts)
	default:
		handler = slog.NewJSONHandler(writer, opts)
	}

	name := cfg.Name
	if name == "" {
		name = "dgkit"
	}
	return &slogLogger{logger: slog.New(handler).With("component", name)}
}

func (l *slogLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *slogLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *slogLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }

func (l *slogLogger) Er(msg string, err error, args ...any) {
	l.logger.Error(msg, append([]any{"error", err}, args...)...)
}

func (l *slogLogger) Err(msg string, err error, args ...any) error {
	l.logger.Error(msg, append([]any{"error", err}, args...)...)
	return err
}

func (l *slogLogger) Error(msg string, args ...any) error {
	l.logger.Error(msg, args...)
	return fmt.Errorf("%s", msg)
}

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{logger: l.logger.With(args...)}
}

func (l *slogLogger) Function(name string) Logger {
	return l.With("function", name)
}

func (l *slogLogger) WithTraceID(traceID string) Logger {
	return l.With("traceID", traceID)
}

func (l *slogLogger) TraceFromContext(ctx context.Context) Logger {
	traceID := TraceIDFromContext(ctx)
	if traceID == "" {
		return l
	}
	return l.WithTraceID(traceID)
}
