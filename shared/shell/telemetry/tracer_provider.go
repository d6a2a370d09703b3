package telemetry

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// ErrCreatingTraceExporterFailed is returned when the OTLP exporter cannot be created.
var ErrCreatingTraceExporterFailed = errors.New("creating trace exporter failed")

const shutdownTimeout = 5 * time.Second

// TracerProviderConfig configures NewTracerProvider.
// With an empty OTLPEndpoint spans are recorded but never exported.
type TracerProviderConfig struct {
	ServiceName    string
	ServiceVersion string
	OTLPEndpoint   string
	Insecure       bool
}

// NewTracerProvider builds an SDK TracerProvider, installs it and the W3C propagators globally,
// and returns a shutdown function that flushes pending spans.
func NewTracerProvider(ctx context.Context, cfg TracerProviderConfig) (*sdktrace.TracerProvider, func() error, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.ServiceName),
			semconv.ServiceVersionKey.String(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	providerOptions := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}

	if cfg.OTLPEndpoint != "" {
		exporterOptions := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint)}
		if cfg.Insecure {
			exporterOptions = append(exporterOptions, otlptracegrpc.WithInsecure())
		}

		exporter, exporterErr := otlptracegrpc.New(ctx, exporterOptions...)
		if exporterErr != nil {
			return nil, nil, errors.Join(ErrCreatingTraceExporterFailed, exporterErr)
		}

		providerOptions = append(providerOptions, sdktrace.WithBatcher(exporter))
	}

	tracerProvider := sdktrace.NewTracerProvider(providerOptions...)

	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	shutdown := func() error {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return tracerProvider.Shutdown(shutdownCtx)
	}

	return tracerProvider, shutdown, nil
}
