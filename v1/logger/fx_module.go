package logger

import (
	"context"

	"go.uber.org/fx"
)

// FXModule defines the Fx module for the logger package.
//
// The module provides:
//   - Config        (NewConfig, read from the environment)
//   - *LoggerClient (NewLoggerClient)
//   - Logger        (the same instance, as the interface)
//
// and syncs the underlying Zap logger on shutdown.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    // other modules...
//	)
var FXModule = fx.Module("logger",
	fx.Provide(
		NewConfig,
		NewLoggerClient,
		func(client *LoggerClient) Logger { return client },
	),
	fx.Invoke(RegisterLoggerLifecycle),
)

// RegisterLoggerLifecycle handles cleanup (sync) of the Zap logger.
func RegisterLoggerLifecycle(lc fx.Lifecycle, client *LoggerClient) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			// Sync on stderr returns EINVAL/ENOTTY on some platforms; nothing was lost.
			_ = client.Zap.Sync()
			return nil
		},
	})
}
