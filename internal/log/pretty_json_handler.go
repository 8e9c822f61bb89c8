package log

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
)

type PrettyJSONHandlerOptions struct {
	slog.HandlerOptions
	PrettyPrint bool
}

// NewPrettyJSONHandler returns a JSON handler which indents every record if PrettyPrint is set.
func NewPrettyJSONHandler(w io.Writer, opts *PrettyJSONHandlerOptions) slog.Handler {
	if opts == nil {
		opts = &PrettyJSONHandlerOptions{}
	}

	if !opts.PrettyPrint {
		return slog.NewJSONHandler(w, &opts.HandlerOptions)
	}

	buf := &bytes.Buffer{}
	return &prettyHandler{
		Handler: slog.NewJSONHandler(buf, &opts.HandlerOptions),
		writer:  w,
		buf:     buf,
		mu:      &sync.Mutex{},
	}
}

// prettyHandler lets the embedded JSON handler write into buf and indents the result. Handlers
// derived through WithAttrs and WithGroup share buf and mu.
type prettyHandler struct {
	slog.Handler
	writer io.Writer
	buf    *bytes.Buffer
	mu     *sync.Mutex
}

func (h *prettyHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.buf.Reset()
	if err := h.Handler.Handle(ctx, r); err != nil {
		return err
	}

	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, h.buf.Bytes(), "", "  "); err != nil {
		return err
	}

	_, err := h.writer.Write(prettyJSON.Bytes())
	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyHandler{Handler: h.Handler.WithAttrs(attrs), writer: h.writer, buf: h.buf, mu: h.mu}
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	return &prettyHandler{Handler: h.Handler.WithGroup(name), writer: h.writer, buf: h.buf, mu: h.mu}
}
