package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics encapsulates the Prometheus registry and HTTP server responsible
// for exposing application metrics.
type Metrics struct {
	// Server defines the HTTP server used to expose the /metrics endpoint.
	Server *http.Server

	// Registry is the Prometheus registry where all metrics are registered.
	// Each service maintains its own isolated registry to prevent metric name collisions.
	Registry *prometheus.Registry

	// registerer wraps Registry with the constant service label.
	registerer prometheus.Registerer
	namespace  string

	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	operationBytes    *prometheus.HistogramVec
}

// NewMetrics initializes and returns a new instance of the Metrics struct.
// It sets up a dedicated Prometheus registry, wraps all metrics with a constant
// `service` label, registers the operation metrics fed by ObserveOperation and
// creates an HTTP server exposing the /metrics endpoint.
//
// Example:
//
//	m := metrics.NewMetrics(metrics.Config{
//	    Address:                 ":9090",
//	    ServiceName:             "predict",
//	    EnableDefaultCollectors: true,
//	})
//	go m.Server.ListenAndServe()
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	// All metrics emitted by this service carry service="<cfg.ServiceName>".
	wrappedRegistry := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{
		Registry:   registry,
		registerer: wrappedRegistry,
		namespace:  cfg.Namespace,
	}

	m.operationsTotal = createCounterVec(cfg.Namespace, "operations_total",
		"Total number of client operations by outcome", []string{"component", "operation", "status"})
	m.operationDuration = createHistogramVec(cfg.Namespace, "operation_duration_seconds",
		"Duration of client operations in seconds", []string{"component", "operation"}, prometheus.DefBuckets)
	m.operationBytes = createHistogramVec(cfg.Namespace, "operation_payload_bytes",
		"Size of payloads received by client operations", []string{"component", "operation"},
		prometheus.ExponentialBuckets(64, 4, 8))

	wrappedRegistry.MustRegister(
		m.operationsTotal,
		m.operationDuration,
		m.operationBytes,
	)

	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	m.Server = &http.Server{
		Addr:    cfg.Address,
		Handler: mux,
	}
	return m
}
