package tracer

import (
	"os"
	"strconv"
)

// Config defines the tracer configuration.
type Config struct {
	// ServiceName is reported as the service.name resource attribute.
	ServiceName string

	// AppEnv is reported as deployment.environment, e.g. "production".
	AppEnv string

	// EnableExport sends spans to an OTLP/HTTP collector. The exporter reads
	// the standard OTEL_EXPORTER_OTLP_* variables for endpoint and headers.
	EnableExport bool
}

// NewConfig reads the tracer configuration from TRACER_SERVICE_NAME, APP_ENV
// and TRACER_ENABLE_EXPORT.
func NewConfig() Config {
	export, _ := strconv.ParseBool(os.Getenv("TRACER_ENABLE_EXPORT"))

	serviceName := os.Getenv("TRACER_SERVICE_NAME")
	if serviceName == "" {
		serviceName = "prediction-client"
	}

	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
	}

	return Config{
		ServiceName:  serviceName,
		AppEnv:       appEnv,
		EnableExport: export,
	}
}
