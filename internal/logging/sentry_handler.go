package logging

import (
	"context"
	"errors"
	"log/slog"

	"github.com/getsentry/sentry-go"
)

// SentryHandler reports records at or above its level to the current Sentry hub.
// An "error" attribute holding an error value is captured as an exception,
// anything else becomes a message event.
type SentryHandler struct {
	level  slog.Leveler
	attrs  []slog.Attr
	prefix string
}

func NewSentryHandler(level slog.Leveler) *SentryHandler {
	return &SentryHandler{level: level}
}

func (h *SentryHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level() && sentry.CurrentHub().Client() != nil
}

func (h *SentryHandler) Handle(_ context.Context, record slog.Record) error {
	hub := sentry.CurrentHub().Clone()

	var captured error
	extras := make(map[string]any, record.NumAttrs()+len(h.attrs))
	collect := func(a slog.Attr) {
		if err, ok := a.Value.Any().(error); ok && a.Key == "error" {
			captured = err
			return
		}
		extras[h.prefix+a.Key] = a.Value.String()
	}
	for _, a := range h.attrs {
		collect(a)
	}
	record.Attrs(func(a slog.Attr) bool {
		collect(a)
		return true
	})

	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(sentryLevel(record.Level))
		scope.SetContext("log", extras)
		if captured != nil {
			hub.CaptureException(errors.Join(errors.New(record.Message), captured))
			return
		}
		hub.CaptureMessage(record.Message)
	})
	return nil
}

func (h *SentryHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &next
}

func (h *SentryHandler) WithGroup(name string) slog.Handler {
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

func sentryLevel(l slog.Level) sentry.Level {
	switch {
	case l >= slog.LevelError:
		return sentry.LevelError
	case l >= slog.LevelWarn:
		return sentry.LevelWarning
	case l >= slog.LevelInfo:
		return sentry.LevelInfo
	}
	return sentry.LevelDebug
}
