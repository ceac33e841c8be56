// Package observability wires OpenTelemetry tracing for simulation and
// benchmark runs. Tracing is off unless enabled in configuration; spans go
// to stdout, which is enough to inspect pool behavior per frame or phase.
package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/martinwells/objects/pkg/objerrors"
)

var tracer trace.Tracer = noop.NewTracerProvider().Tracer("objects")

// InitTracing installs a stdout span exporter for the named service and
// returns a shutdown function that flushes pending spans. When enabled is
// false it leaves the no-op tracer in place.
func InitTracing(ctx context.Context, serviceName, serviceVersion string, enabled bool) (func(context.Context) error, error) {
	if !enabled {
		return func(context.Context) error { return nil }, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(serviceVersion),
		),
	)
	if err != nil {
		return nil, objerrors.Wrap(err, objerrors.ErrorTypeInternal, "failed to create trace resource")
	}

	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, objerrors.Wrap(err, objerrors.ErrorTypeInternal, "failed to create stdout exporter")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(exporter),
	)

	otel.SetTracerProvider(tp)
	tracer = tp.Tracer(serviceName)

	return tp.Shutdown, nil
}

// StartSpan starts a span under the configured tracer. With tracing
// disabled this is a cheap no-op.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, opts...)
}
