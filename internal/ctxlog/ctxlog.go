// Package ctxlog threads the command's slog.Logger down to the sweep.
package ctxlog

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns slog.Default() for a context that never got a logger.
func FromContext(ctx context.Context) *slog.Logger {
	logger, _ := ctx.Value(ctxKey{}).(*slog.Logger)
	if logger == nil {
		return slog.Default()
	}
	return logger
}
