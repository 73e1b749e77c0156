package logging

import (
	"context"
	"errors"
	"log/slog"
)

// multiHandler 将同一条日志分发到多个 Handler，单个目标写入失败不影响其它目标。
type multiHandler struct {
	handlers []slog.Handler
}

func newMultiHandler(handlers ...slog.Handler) slog.Handler {
	return &multiHandler{handlers: handlers}
}

func (h *multiHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, lvl) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, record.Level) {
			continue
		}
		if err := handler.Handle(ctx, record.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.apply(func(handler slog.Handler) slog.Handler { return handler.WithAttrs(attrs) })
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	return h.apply(func(handler slog.Handler) slog.Handler { return handler.WithGroup(name) })
}

func (h *multiHandler) apply(fn func(slog.Handler) slog.Handler) slog.Handler {
	handlers := make([]slog.Handler, 0, len(h.handlers))
	for _, handler := range h.handlers {
		handlers = append(handlers, fn(handler))
	}
	return &multiHandler{handlers: handlers}
}
