package tracer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// Logger is the subset of the logger package used by the tracer.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
}

// Tracer owns the OpenTelemetry tracer provider for the process.
type Tracer struct {
	tracer     *trace.TracerProvider
	propagator propagation.TextMapPropagator
	logger     Logger
}

// NewClient creates the tracer provider and installs it, together with the
// TraceContext and Baggage propagators, as the global OpenTelemetry defaults.
//
// When cfg.EnableExport is false spans are still created (so trace IDs show
// up in logs and outbound headers) but nothing is exported.
func NewClient(cfg Config, logger Logger) (*Tracer, error) {
	var options []trace.TracerProviderOption

	if cfg.EnableExport {
		client := otlptracehttp.NewClient()
		exporter, err := otlptrace.New(context.Background(), client)
		if err != nil {
			return nil, fmt.Errorf("tracer: cannot create otlp exporter: %w", err)
		}
		options = append(options, trace.WithBatcher(exporter))
	}

	options = append(options, trace.WithResource(resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.DeploymentEnvironment(cfg.AppEnv),
		attribute.String("environment", cfg.AppEnv),
	)))

	tp := trace.NewTracerProvider(options...)
	propagator := propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{})

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagator)

	logger.Info("tracer initialized", nil, map[string]interface{}{
		"service":        cfg.ServiceName,
		"environment":    cfg.AppEnv,
		"export_enabled": cfg.EnableExport,
	})

	return &Tracer{tracer: tp, propagator: propagator, logger: logger}, nil
}

// Shutdown flushes pending spans and stops the provider.
func (t *Tracer) Shutdown(ctx context.Context) error {
	t.logger.Info("shutting down tracer...", nil, nil)
	if t.tracer == nil {
		t.logger.Warn("tracer was nil during shutdown", nil, nil)
		return nil
	}
	return t.tracer.Shutdown(ctx)
}
