package metrics

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/prediction/v1/logger"
	"github.com/Aleph-Alpha/prediction/v1/observability"
)

// FXModule defines the Fx module for the metrics package.
//
// The module provides Config (from the environment), *Metrics, and the same
// instance as MetricsCollector and observability.Observer, then starts and
// stops the /metrics server with the application.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    metrics.FXModule,
//	    // other modules...
//	)
//
// Dependencies required by this module:
// - A *logger.LoggerClient for startup/shutdown logs
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewConfig,
		NewMetrics,
		func(m *Metrics) MetricsCollector { return m },
		func(m *Metrics) observability.Observer { return m },
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

// RegisterMetricsLifecycle manages the startup and shutdown lifecycle
// of the Prometheus metrics HTTP server.
//
// OnStart launches the server in a background goroutine; OnStop shuts it down gracefully.
func RegisterMetricsLifecycle(lc fx.Lifecycle, m *Metrics, log *logger.LoggerClient) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("Starting Prometheus metrics server", nil, map[string]interface{}{
					"address": m.Server.Addr,
				})

				if err := m.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("Error starting Prometheus metrics server", err, nil)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down Prometheus metrics server", nil, nil)
			return m.Server.Shutdown(ctx)
		},
	})
}
