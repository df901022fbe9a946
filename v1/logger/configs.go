package logger

import (
	"os"
	"strconv"
)

// Supported log levels.
const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Config defines the configuration for the logger.
type Config struct {
	// Level is the minimum level that is written.
	// One of "debug", "info", "warning", "error". Anything else means "info".
	Level string

	// EnableTracing adds trace_id and span_id from the OpenTelemetry span
	// in the context to every *WithContext log entry.
	EnableTracing bool

	// ServiceName is attached to every entry as the "service" field.
	ServiceName string
}

// NewConfig reads the logger configuration from environment variables:
//
//	ZAP_LOGGER_LEVEL       (default "info")
//	LOGGER_ENABLE_TRACING  (default false)
//	SERVICE_NAME           (default "prediction-client")
func NewConfig() Config {
	level := os.Getenv("ZAP_LOGGER_LEVEL")
	if level == "" {
		level = Info
	}

	tracing, _ := strconv.ParseBool(os.Getenv("LOGGER_ENABLE_TRACING"))

	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "prediction-client"
	}

	return Config{
		Level:         level,
		EnableTracing: tracing,
		ServiceName:   serviceName,
	}
}
