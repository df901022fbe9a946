package metrics

import (
	"os"
	"strconv"
)

// Default port for metrics server if none is specified.
const DefaultMetricsAddress = ":9090"

// Config defines the configuration structure for the Prometheus metrics server.
type Config struct {
	// Address determines the network address where the Prometheus
	// metrics HTTP server listens, e.g. ":9090" or "127.0.0.1:9100".
	//
	// Environment variable: METRICS_ADDRESS
	// Default: ":9090"
	Address string

	// EnableDefaultCollectors registers the Go runtime, process and build info collectors.
	//
	// Environment variable: METRICS_ENABLE_DEFAULT_COLLECTORS
	// Default: true
	EnableDefaultCollectors bool

	// Namespace is prepended to every metric registered by this package.
	//
	// Example:
	//   Namespace: "ml_gateway"
	//   → "ml_gateway_operations_total"
	//
	// Environment variable: METRICS_NAMESPACE
	Namespace string

	// ServiceName is added as a constant "service" label to all metrics.
	//
	// Environment variable: METRICS_SERVICE_NAME
	ServiceName string
}

// NewConfig reads the metrics configuration from environment variables.
func NewConfig() Config {
	address := os.Getenv("METRICS_ADDRESS")
	if address == "" {
		address = DefaultMetricsAddress
	}

	collectorsEnabled := true
	if v := os.Getenv("METRICS_ENABLE_DEFAULT_COLLECTORS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			collectorsEnabled = b
		}
	}

	return Config{
		Address:                 address,
		EnableDefaultCollectors: collectorsEnabled,
		Namespace:               os.Getenv("METRICS_NAMESPACE"),
		ServiceName:             os.Getenv("METRICS_SERVICE_NAME"),
	}
}
