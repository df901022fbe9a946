package logger

import "context"

// Logger is the logging contract implemented by *LoggerClient.
// Packages that only need a subset should declare their own narrower interface.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})

	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

var _ Logger = (*LoggerClient)(nil)
