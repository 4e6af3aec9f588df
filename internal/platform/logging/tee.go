package logging

import (
	"context"
	"errors"
	"log/slog"
)

// teeHandler sends every record to each of its handlers.
// The terminal handler and the rolling file handler sit behind one.
type teeHandler []slog.Handler

// Tee returns a handler that writes to all non-nil handlers.
// With a single handler it returns that handler unchanged.
func Tee(handlers ...slog.Handler) slog.Handler {
	t := make(teeHandler, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			t = append(t, h)
		}
	}

	if len(t) == 1 {
		return t[0]
	}

	return t
}

// Enabled reports whether any handler accepts level.
func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

// Handle writes r to every handler enabled for its level. One failing
// destination does not stop the others; all errors are joined.
func (t teeHandler) Handle(ctx context.Context, r slog.Record) error { //nolint:gocritic // slog.Handler interface requires value
	var errs []error
	for _, h := range t {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return t.each(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	return t.each(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (t teeHandler) each(f func(slog.Handler) slog.Handler) teeHandler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = f(h)
	}

	return out
}
