package telemetry

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
)

// NewLogHandler - keeps writing to next and also emits every record through the global
// logger provider.
func NewLogHandler(next slog.Handler) slog.Handler {
	return newLogHandler(next, global.GetLoggerProvider())
}

func newLogHandler(next slog.Handler, provider log.LoggerProvider) slog.Handler {
	return &teeHandler{
		handlers: []slog.Handler{
			next,
			otelslog.NewHandler(InstrumentationName, otelslog.WithLoggerProvider(provider)),
		},
	}
}

type teeHandler struct {
	handlers []slog.Handler
}

func (that *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range that.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

func (that *teeHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, handler := range that.handlers {
		if !handler.Enabled(ctx, record.Level) {
			continue
		}

		if err := handler.Handle(ctx, record.Clone()); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (that *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(that.handlers))
	for i, handler := range that.handlers {
		handlers[i] = handler.WithAttrs(attrs)
	}

	return &teeHandler{handlers: handlers}
}

func (that *teeHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(that.handlers))
	for i, handler := range that.handlers {
		handlers[i] = handler.WithGroup(name)
	}

	return &teeHandler{handlers: handlers}
}
