// Package tracer configures OpenTelemetry distributed tracing.
//
// NewClient builds an SDK tracer provider, optionally exporting over OTLP/HTTP,
// and installs it as the global provider with W3C TraceContext and Baggage
// propagation. The helpers wrap the common span operations:
//
//	ctx, span := t.StartSpan(ctx, "prediction.GetPrediction")
//	defer span.End()
//	for k, v := range t.GetCarrier(ctx) {
//	    req.Header.Set(k, v)
//	}
//
// Configuration:
//
//	TRACER_SERVICE_NAME=predict
//	APP_ENV=production
//	TRACER_ENABLE_EXPORT=true
//	OTEL_EXPORTER_OTLP_ENDPOINT=http://collector:4318
package tracer
