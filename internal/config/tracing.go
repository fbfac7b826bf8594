package config

import (
	"context"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

// TracerProvider is set by InitTracing and nil while tracing is off.
var TracerProvider *sdktrace.TracerProvider

// InitTracing installs a batching tracer provider that writes spans to stdout.
func InitTracing() {
	tp, err := newTracerProvider(os.Stdout)
	if err != nil {
		Logger.Fatal("Failed to create trace exporter", zap.Error(err))
	}
	TracerProvider = tp
	otel.SetTracerProvider(tp)
	Logger.Info("Tracing enabled")
}

// ShutdownTracing flushes pending spans. It is a no-op when tracing is off.
func ShutdownTracing(ctx context.Context) error {
	if TracerProvider == nil {
		return nil
	}
	return TracerProvider.Shutdown(ctx)
}

func newTracerProvider(w io.Writer) (*sdktrace.TracerProvider, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, err
	}
	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", "board"))),
	), nil
}
