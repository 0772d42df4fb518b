// Package tracing configures an OpenTelemetry tracer for the assistant.
// By default the provider has no exporter; spans still carry timing and
// attributes for any processor wired in at startup.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "zero-touch-cx"

// Init installs the SDK tracer provider and returns a shutdown function to be
// deferred by the caller.
func Init() func(context.Context) error {
	provider := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(provider)
	return provider.Shutdown
}

// Tracer returns the shared tracer for this service.
func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// Span starts a span with optional attributes. Callers must End the span.
func Span(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, sp := Tracer().Start(ctx, name)
	if len(attrs) > 0 {
		sp.SetAttributes(attrs...)
	}
	return ctx, sp
}
