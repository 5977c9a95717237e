// Package logging provides a context-scoped structured logger on top of
// log/slog.
//
// Loggers travel in a context.Context so that fields attached once (dataset
// name, input file) show up on every line logged further down:
//
//	ctx = logging.With(ctx, "dataset", name)
//	logging.From(ctx).Info("processed", "matches", n)
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
)

var (
	mu      sync.RWMutex
	current = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// Init installs a text logger writing to w at the given level.
func Init(w io.Writer, level slog.Level) {
	l := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	mu.Lock()
	current = l
	mu.Unlock()
}

// Default returns the process logger.
func Default() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// ParseLevel maps a level name to a slog.Level. Unknown names map to Info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type ctxLogger struct{}

// From returns the logger carried by ctx, or the process logger, with
// keyvals attached.
func From(ctx context.Context, keyvals ...any) *slog.Logger {
	l, ok := ctx.Value(ctxLogger{}).(*slog.Logger)
	if !ok {
		l = Default()
	}
	if len(keyvals) == 0 {
		return l
	}
	return l.With(keyvals...)
}

// With returns a context whose logger carries keyvals.
func With(ctx context.Context, keyvals ...any) context.Context {
	if len(keyvals) == 0 {
		return ctx
	}
	return context.WithValue(ctx, ctxLogger{}, From(ctx, keyvals...))
}
