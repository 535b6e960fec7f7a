// Package log builds the process logger and carries request scoped ids
// through contexts so every line of a request can be joined up.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/investmatch/investmatch/internal/config"
)

// ContextKey names a context value that is copied onto log records.
type ContextKey string

// Keys copied from the context onto every record.
const (
	CorrelationIDKey ContextKey = "correlation_id"
	RequestIDKey     ContextKey = "request_id"
	UserIDKey        ContextKey = "user_id"
)

var contextKeys = [...]ContextKey{CorrelationIDKey, RequestIDKey, UserIDKey}

// New returns a logger writing to stdout in the configured format.
func New(cfg config.AppConfig) *slog.Logger {
	return NewWithWriter(os.Stdout, cfg.LogFormat(), cfg.LogLevel())
}

// NewWithWriter returns a logger writing to w. The pretty format renders
// through zerolog's console writer; anything else is one JSON object per line.
func NewWithWriter(w io.Writer, format config.LogFormat, level string) *slog.Logger {
	console := format != config.LogFormatJSON
	return slog.New(contextHandler{Handler: newZerologHandler(w, parseLevel(level), console)})
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	switch s := strings.ToUpper(strings.TrimSpace(level)); s {
	case "WARNING":
		return slog.LevelWarn
	default:
		if err := l.UnmarshalText([]byte(s)); err != nil {
			return slog.LevelInfo
		}
		return l
	}
}

// WithCorrelationID stores the correlation id in ctx.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationIDKey, id)
}

// WithRequestID stores the request id in ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// WithUserID stores the authenticated user id in ctx.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, UserIDKey, id)
}

// CorrelationID returns the correlation id in ctx, if any.
func CorrelationID(ctx context.Context) string { return value(ctx, CorrelationIDKey) }

// RequestID returns the request id in ctx, if any.
func RequestID(ctx context.Context) string { return value(ctx, RequestIDKey) }

func value(ctx context.Context, key ContextKey) string {
	v, _ := ctx.Value(key).(string)
	return v
}

// contextHandler appends the ids found in the record's context.
type contextHandler struct {
	slog.Handler
}

func (h contextHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, key := range contextKeys {
		if v := value(ctx, key); v != "" {
			r.AddAttrs(slog.String(string(key), v))
		}
	}
	return h.Handler.Handle(ctx, r)
}

func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return contextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h contextHandler) WithGroup(name string) slog.Handler {
	return contextHandler{Handler: h.Handler.WithGroup(name)}
}
