package telemetry

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"github.com/bookswap-hub/bookswap/shared/shell"
)

const (
	logAttrTraceID = "trace_id"
	logAttrSpanID  = "span_id"
)

// NewJSONLogger returns a slog JSON logger at the given level whose records carry
// the trace and span ids of the context they were logged with.
func NewJSONLogger(w io.Writer, level string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})

	return slog.New(&traceCorrelationHandler{Handler: handler})
}

// ParseLevel maps debug, info, warn and error to slog levels, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type traceCorrelationHandler struct {
	slog.Handler
}

func (h *traceCorrelationHandler) Handle(ctx context.Context, record slog.Record) error {
	if spanContext := trace.SpanContextFromContext(ctx); spanContext.IsValid() {
		record.AddAttrs(
			slog.String(logAttrTraceID, spanContext.TraceID().String()),
			slog.String(logAttrSpanID, spanContext.SpanID().String()),
		)
	}

	return h.Handler.Handle(ctx, record)
}

func (h *traceCorrelationHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &traceCorrelationHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *traceCorrelationHandler) WithGroup(name string) slog.Handler {
	return &traceCorrelationHandler{Handler: h.Handler.WithGroup(name)}
}

// *slog.Logger satisfies both logger interfaces.
var (
	_ shell.ContextualLogger = (*slog.Logger)(nil)
	_ shell.Logger           = (*slog.Logger)(nil)
)
