package observability

import (
	"context"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// InitTracing initializes OpenTelemetry tracing with a Jaeger exporter. If
// OTEL_EXPORTER_JAEGER_ENDPOINT is unset, tracing is a no-op and the
// returned shutdown function does nothing — this lets a Master run
// without requiring a Jaeger collector in development.
func InitTracing(ctx context.Context, serviceName string) (func(context.Context) error, error) {
	endpoint := os.Getenv("OTEL_EXPORTER_JAEGER_ENDPOINT")
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}

	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(endpoint)))
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceName(serviceName),
	))
	if err != nil {
		return nil, err
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exp, trace.WithMaxExportBatchSize(512), trace.WithBatchTimeout(5*time.Second)),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}

// OtelTracer adapts the global OpenTelemetry tracer provider to this
// package's Tracer interface, so a Master can be traced through the same
// PoolWithTracing decorator a NoopTracer or a test's mockTracer uses.
type OtelTracer struct {
	tracer oteltrace.Tracer
}

// NewOtelTracer returns a Tracer backed by the named OpenTelemetry tracer.
// Call InitTracing first to wire a real exporter; otherwise spans are
// created against the global no-op provider.
func NewOtelTracer(name string) *OtelTracer {
	return &OtelTracer{tracer: otel.Tracer(name)}
}

// StartSpan implements Tracer.
func (t *OtelTracer) StartSpan(ctx context.Context, name string) (context.Context, Span) {
	ctx, span := t.tracer.Start(ctx, name)
	return ctx, &otelSpan{span: span}
}

type otelSpan struct {
	span oteltrace.Span
}

func (s *otelSpan) End() { s.span.End() }

func (s *otelSpan) SetTag(key, value string) {
	s.span.SetAttributes(attribute.String(key, value))
}

func (s *otelSpan) RecordError(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}
