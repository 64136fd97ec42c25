package logger

import (
	"context"
	"log/slog"
	"runtime"
)

// sourceFromLevelHandler attaches the caller's source location to records at or
// above a threshold level. The wrapped handler must not set AddSource itself.
type sourceFromLevelHandler struct {
	handler slog.Handler
	from    slog.Level
}

func NewSourceFromLevelHandler(handler slog.Handler, from slog.Level) slog.Handler {
	return &sourceFromLevelHandler{handler: handler, from: from}
}

func (h *sourceFromLevelHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= h.from && r.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		r.AddAttrs(slog.Any(slog.SourceKey, &slog.Source{
			Function: frame.Function,
			File:     frame.File,
			Line:     frame.Line,
		}))
	}
	return h.handler.Handle(ctx, r)
}

func (h *sourceFromLevelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &sourceFromLevelHandler{handler: h.handler.WithAttrs(attrs), from: h.from}
}

func (h *sourceFromLevelHandler) WithGroup(name string) slog.Handler {
	return &sourceFromLevelHandler{handler: h.handler.WithGroup(name), from: h.from}
}

func (h *sourceFromLevelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}
