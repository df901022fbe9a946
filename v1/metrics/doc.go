// Package metrics provides Prometheus-based metrics collection and exposure.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - MetricsCollector interface: the contract for metrics operations
//   - Metrics struct: the Prometheus-backed implementation
//   - NewMetrics constructor: returns *Metrics
//   - FXModule: provides *Metrics, MetricsCollector and observability.Observer
//
// *Metrics implements observability.Observer, so any client with a
// WithObserver method can report into it:
//
//	m := metrics.NewMetrics(metrics.NewConfig())
//	client := prediction.NewClient(cfg, log).WithObserver(m)
//
// Every observed operation produces:
//
//	operations_total{component, operation, status="success"|"error", service}
//	operation_duration_seconds{component, operation, service}
//	operation_payload_bytes{component, operation, service}
//
// # Configuration
//
//	METRICS_ADDRESS=:9090
//	METRICS_ENABLE_DEFAULT_COLLECTORS=true
//	METRICS_NAMESPACE=ml_gateway
//	METRICS_SERVICE_NAME=predict
//
// Metrics are served at http://<address>/metrics.
package metrics
