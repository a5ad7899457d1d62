// Package logging defines the structured-logging interface used across the
// server. Backends wrap log/slog or zap.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "file stored", "project_id", projectID, "filename", name)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

const (
	BackendSlog = "slog"
	BackendZap  = "zap"

	FormatJSON = "json"
	FormatText = "text"
)

// New builds a Logger for the given backend ("slog" or "zap") writing to w in
// the given format ("json" or "text").
func New(backend, format string, w io.Writer) (Logger, error) {
	format = strings.ToLower(format)
	if format != FormatJSON && format != FormatText {
		return nil, fmt.Errorf("unknown log format %q", format)
	}

	switch strings.ToLower(backend) {
	case "", BackendSlog:
		var h slog.Handler
		if format == FormatText {
			h = slog.NewTextHandler(w, nil)
		} else {
			h = slog.NewJSONHandler(w, nil)
		}
		return NewSlogLogger(slog.New(h)), nil
	case BackendZap:
		return NewZapLogger(w, format), nil
	default:
		return nil, fmt.Errorf("unknown log backend %q", backend)
	}
}

// Nop returns a Logger that drops everything. Handy in tests.
func Nop() Logger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
