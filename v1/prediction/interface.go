package prediction

import "context"

// Logger is the logging contract the prediction client needs.
// *logger.LoggerClient satisfies it.
//
//go:generate mockgen -source=interface.go -destination=mock_logger.go -package=prediction
type Logger interface {
	// ErrorWithContext logs an error message with trace context.
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}
