// Package trace wires OpenTelemetry spans around deployment API requests.
//
// Export is opt-in: spans only leave the process when
// OTEL_EXPORTER_OTLP_ENDPOINT is set. Everything else degrades to no-ops,
// and nothing here ever writes to stdout/stderr (that corrupts the TUI).
package trace

import (
	"context"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const tracerName = "flowdeploy/api"

// Shutdown flushes and closes the provider. Safe to call when tracing is
// disabled.
type Shutdown func(context.Context) error

// Init configures the global tracer provider from the environment.
// Returns a no-op shutdown when OTEL_EXPORTER_OTLP_ENDPOINT is unset.
func Init(ctx context.Context) (Shutdown, error) {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(), // local collectors; TLS endpoints can front this
	)
	if err != nil {
		return nil, err
	}

	serviceName := os.Getenv("OTEL_SERVICE_NAME")
	if serviceName == "" {
		serviceName = "flowdeploy"
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)

	return provider.Shutdown, nil
}

// StartRequest opens a span for one deployment API request. The returned
// end function records the outcome; err may be nil.
func StartRequest(ctx context.Context, operation, flowID string) (context.Context, func(err error)) {
	tracer := otel.GetTracerProvider().Tracer(tracerName)
	ctx, span := tracer.Start(ctx, operation,
		oteltrace.WithSpanKind(oteltrace.SpanKindClient),
		oteltrace.WithAttributes(attribute.String("flow.id", flowID)),
	)
	return ctx, func(err error) {
		if err != nil {
			span.SetAttributes(attribute.String("error.message", err.Error()))
		}
		span.End()
	}
}
