package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/bookswap-hub/bookswap/shared/shell"
	"github.com/bookswap-hub/bookswap/shared/shell/telemetry"
)

func givenTracingCollector(t *testing.T) (*telemetry.TracingCollector, *tracetest.InMemoryExporter) {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	return telemetry.NewTracingCollector(provider.Tracer("bookswap-test")), exporter
}

func Test_TracingCollector_FinishSpan_ExportsAttributesAndStatus(t *testing.T) {
	tests := []struct {
		status string
		code   codes.Code
	}{
		{shell.StatusSuccess, codes.Ok},
		{shell.StatusIdempotent, codes.Ok},
		{shell.StatusError, codes.Error},
		{shell.StatusTimeout, codes.Error},
		{shell.StatusConcurrencyConflict, codes.Error},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			// arrange
			collector, exporter := givenTracingCollector(t)
			ctx, span := collector.StartSpan(context.Background(), shell.SpanNameCommandHandle, map[string]string{
				shell.LogAttrCommandType: "ProposeSwap",
			})
			require.NotNil(t, ctx)

			// act
			collector.FinishSpan(span, tt.status, map[string]string{shell.LogAttrDurationMS: "1.00"})

			// assert
			spans := exporter.GetSpans()
			require.Len(t, spans, 1)
			assert.Equal(t, shell.SpanNameCommandHandle, spans[0].Name)
			assert.Equal(t, tt.code, spans[0].Status.Code)
			assert.Contains(t, spans[0].Attributes, attribute.String(shell.LogAttrCommandType, "ProposeSwap"))
			assert.Contains(t, spans[0].Attributes, attribute.String(shell.LogAttrDurationMS, "1.00"))
		})
	}
}

func Test_TracingCollector_ChildSpansShareTheTrace(t *testing.T) {
	// arrange
	collector, exporter := givenTracingCollector(t)
	ctx, parent := collector.StartSpan(context.Background(), "parent", nil)

	// act
	_, child := collector.StartSpan(ctx, "child", nil)
	collector.FinishSpan(child, shell.StatusSuccess, nil)
	collector.FinishSpan(parent, shell.StatusSuccess, nil)

	// assert
	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, spans[0].SpanContext.TraceID(), spans[1].SpanContext.TraceID())
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())
}
