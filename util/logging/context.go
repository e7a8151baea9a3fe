package logging

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

type contextKey int

const (
	loggerKey contextKey = iota
	requestIDKey
)

var ErrNoLoggerInContext = errors.New("no logger in context")

func ContextWithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

func LoggerFromContext(ctx context.Context) (*zap.Logger, error) {
	if logger, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return logger, nil
	}

	return nil, ErrNoLoggerInContext
}

// LoggerFromContextOrNop returns the logger stored in ctx, or a no-op
// logger if there is none.
func LoggerFromContextOrNop(ctx context.Context) *zap.Logger {
	if logger, err := LoggerFromContext(ctx); err == nil {
		return logger
	}

	return zap.NewNop()
}

func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok && id != ""
}

// WithRequestID returns log with the request id stored in ctx attached, or
// log itself if ctx carries no request id.
func WithRequestID(ctx context.Context, log *zap.Logger) *zap.Logger {
	if id, ok := RequestIDFromContext(ctx); ok {
		return log.With(zap.String("request_id", id))
	}

	return log
}
