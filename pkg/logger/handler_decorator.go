package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor extracts a slog attribute from context.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// handlerDecorator wraps a slog.Handler and injects attributes from context.
// Extraction happens per log call so request-scoped values stay fresh.
type handlerDecorator struct {
	next       slog.Handler
	extractors []ContextExtractor
}

func newHandlerDecorator(next slog.Handler, extractors ...ContextExtractor) slog.Handler {
	clean := make([]ContextExtractor, 0, len(extractors))
	for _, ex := range extractors {
		if ex != nil {
			clean = append(clean, ex)
		}
	}
	return &handlerDecorator{next: next, extractors: clean}
}

func (h *handlerDecorator) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *handlerDecorator) Handle(ctx context.Context, rec slog.Record) error {
	if len(h.extractors) == 0 {
		return h.next.Handle(ctx, rec)
	}
	for _, ex := range h.extractors {
		if attr, ok := ex(ctx); ok {
			rec.AddAttrs(attr)
		}
	}
	return h.next.Handle(ctx, rec)
}

func (h *handlerDecorator) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &handlerDecorator{
		next:       h.next.WithAttrs(attrs),
		extractors: h.extractors,
	}
}

func (h *handlerDecorator) WithGroup(name string) slog.Handler {
	return &handlerDecorator{
		next:       h.next.WithGroup(name),
		extractors: h.extractors,
	}
}
