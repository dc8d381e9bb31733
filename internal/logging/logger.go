package logging

import (
	"context"
	"log/slog"
	"os"
)

// Setup initializes the global slog logger with JSON output to stdout.
// Development environments log at DEBUG. Records logged with a request
// context carry its request_id.
func Setup(appEnv string) {
	slog.SetDefault(slog.New(NewMultiHandler(NewStdoutHandler(appEnv))))
}

func NewStdoutHandler(appEnv string) slog.Handler {
	level := slog.LevelInfo
	if appEnv == "development" {
		level = slog.LevelDebug
	}
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
}

type ctxKey struct{}

// WithRequestID stores the request id so handlers can stamp it on records
// logged with the *Context slog functions.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, requestID)
}

func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
