// Package logging defines the structured-logging interface used across the
// engine, with adapters for log/slog and zap.
package logging

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "draft finalized", "id", id, "ship", shipName)
type Logger interface {
	// Debug logs diagnostic detail.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a recoverable, unusual condition.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs a failure.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Options select and tune a logger backend.
type Options struct {
	Backend string // "slog" (default) or "zap"
	Level   string // debug, info, warn, error
	Format  string // text (default) or json
}

// New builds a Logger writing to w.
func New(opts Options, w io.Writer) (Logger, error) {
	switch strings.ToLower(opts.Backend) {
	case "", "slog":
		return NewSlogLoggerFor(w, opts.Level, opts.Format), nil
	case "zap":
		return NewZapLoggerFor(w, opts.Level, opts.Format)
	default:
		return nil, fmt.Errorf("unknown log backend %q", opts.Backend)
	}
}
