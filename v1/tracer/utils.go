package tracer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	traceSpan "go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/Aleph-Alpha/prediction"

// StartSpan starts a span named name as a child of the span in ctx.
// The caller must End the returned span.
func (t *Tracer) StartSpan(ctx context.Context, name string) (context.Context, traceSpan.Span) {
	return t.tracer.Tracer(instrumentationName).Start(ctx, name)
}

// RecordErrorOnSpan records err on span and marks the span as failed.
func (t *Tracer) RecordErrorOnSpan(span traceSpan.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// SetAttributes converts attrs into OpenTelemetry attributes and sets them on span.
// Unsupported value types are stored as their fmt.Sprint form.
func (t *Tracer) SetAttributes(span traceSpan.Span, attrs map[string]interface{}) {
	if len(attrs) == 0 {
		return
	}

	attributes := make([]attribute.KeyValue, 0, len(attrs))

	for k, v := range attrs {
		switch val := v.(type) {
		case string:
			attributes = append(attributes, attribute.String(k, val))
		case int:
			attributes = append(attributes, attribute.Int(k, val))
		case int64:
			attributes = append(attributes, attribute.Int64(k, val))
		case float64:
			attributes = append(attributes, attribute.Float64(k, val))
		case bool:
			attributes = append(attributes, attribute.Bool(k, val))
		default:
			attributes = append(attributes, attribute.String(k, fmt.Sprint(val)))
		}
	}

	span.SetAttributes(attributes...)
}

// GetCarrier returns the propagation headers (traceparent, baggage) for ctx.
func (t *Tracer) GetCarrier(ctx context.Context) map[string]string {
	carrier := propagation.MapCarrier{}
	t.textMapPropagator().Inject(ctx, carrier)
	return carrier
}

// SetCarrierOnContext returns a copy of ctx carrying the remote span context found in carrier.
func (t *Tracer) SetCarrierOnContext(ctx context.Context, carrier map[string]string) context.Context {
	return t.textMapPropagator().Extract(ctx, propagation.MapCarrier(carrier))
}

func (t *Tracer) textMapPropagator() propagation.TextMapPropagator {
	if t.propagator != nil {
		return t.propagator
	}
	return propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{})
}
