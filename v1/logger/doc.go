// Package logger provides structured logging on top of Uber's Zap.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - Logger interface: the contract for logging operations
//   - LoggerClient struct: the Zap-backed implementation
//   - NewLoggerClient constructor: returns *LoggerClient
//   - FXModule: provides both *LoggerClient and Logger
//
// Every method takes a message, an optional error and any number of field maps:
//
//	log := logger.NewLoggerClient(logger.Config{Level: logger.Info, ServiceName: "predict"})
//	log.Info("Prediction received", nil, map[string]interface{}{"status_code": 200})
//	log.ErrorWithContext(ctx, "Error getting prediction from upstream", err, nil)
//
// # Configuration
//
//	ZAP_LOGGER_LEVEL=debug          # debug, info, warning, error
//	LOGGER_ENABLE_TRACING=true      # add trace_id/span_id to *WithContext entries
//	SERVICE_NAME=predict            # value of the "service" field
//
// # Tracing Integration
//
// When tracing is enabled the *WithContext methods read the OpenTelemetry span
// from ctx and add its trace_id and span_id to the entry.
//
// All methods are safe for concurrent use.
package logger
