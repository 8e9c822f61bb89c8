// Package log provides slog handlers.
package log

import (
	"context"
	"io"
	"log/slog"

	"github.com/dhis2-sre/im-events/internal/middleware"
)

// ContextHandler adds values from the [context.Context] to the [slog.Record]. It has to use the
// same attribute keys as the Gin [middleware.RequestLogger] so logs of the middleware and of the
// context aware [slog.Logger] methods can be correlated. Logs written outside of an HTTP request,
// like the reference data load at startup, don't carry a correlation id.
type ContextHandler struct {
	slog.Handler
}

func New(handler slog.Handler) *ContextHandler {
	return &ContextHandler{
		Handler: handler,
	}
}

// NewLogger creates the application logger writing JSON to w.
func NewLogger(w io.Writer, level slog.Level, pretty bool) *slog.Logger {
	handler := NewPrettyJSONHandler(w, &PrettyJSONHandlerOptions{
		HandlerOptions: slog.HandlerOptions{Level: level},
		PrettyPrint:    pretty,
	})
	return slog.New(New(handler))
}

func (rh *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if id, ok := middleware.GetCorrelationID(ctx); ok {
		r.AddAttrs(slog.String(middleware.RequestLoggerKeyCorrelationID, id))
	}

	return rh.Handler.Handle(ctx, r)
}

func (rh *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return New(rh.Handler.WithAttrs(attrs))
}

func (rh *ContextHandler) WithGroup(name string) slog.Handler {
	return New(rh.Handler.WithGroup(name))
}
