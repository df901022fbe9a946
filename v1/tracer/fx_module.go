package tracer

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/prediction/v1/logger"
)

// FXModule provides Config (from the environment) and *Tracer, and shuts the
// tracer provider down when the application stops so pending spans are flushed.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    tracer.FXModule,
//	    // other modules...
//	)
var FXModule = fx.Module("tracer",
	fx.Provide(
		NewConfig,
		func(l *logger.LoggerClient) Logger { return l },
		NewClient,
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// RegisterTracerLifecycle registers the shutdown hook for the tracer.
func RegisterTracerLifecycle(lc fx.Lifecycle, tracer *Tracer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return tracer.Shutdown(ctx)
		},
	})
}
