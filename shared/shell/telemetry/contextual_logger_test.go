package telemetry_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/bookswap-hub/bookswap/shared/shell/telemetry"
)

func Test_JSONLogger_AddsTraceCorrelation(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	logger := telemetry.NewJSONLogger(&buf, "info")
	provider := sdktrace.NewTracerProvider()
	ctx, span := provider.Tracer("bookswap-test").Start(context.Background(), "op")
	defer span.End()

	// act
	logger.InfoContext(ctx, "command handler completed", "command_type", "ListBook")

	// assert
	assert.Contains(t, buf.String(), `"trace_id":"`+span.SpanContext().TraceID().String()+`"`)
	assert.Contains(t, buf.String(), `"span_id":"`+span.SpanContext().SpanID().String()+`"`)
	assert.Contains(t, buf.String(), `"command_type":"ListBook"`)
}

func Test_JSONLogger_WithoutSpan_HasNoTraceID(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	logger := telemetry.NewJSONLogger(&buf, "debug")

	// act
	logger.With("component", "http").DebugContext(context.Background(), "request")

	// assert
	assert.NotContains(t, buf.String(), "trace_id")
	assert.Contains(t, buf.String(), `"component":"http"`)
}

func Test_ParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, telemetry.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, telemetry.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, telemetry.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, telemetry.ParseLevel("nonsense"))
}
