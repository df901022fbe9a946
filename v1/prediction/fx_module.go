package prediction

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/prediction/v1/logger"
	"github.com/Aleph-Alpha/prediction/v1/observability"
	"github.com/Aleph-Alpha/prediction/v1/tracer"
)

// FXModule wires the prediction client into Fx.
//
// It provides:
//   - *Config  (NewConfig, read once from the environment)
//   - *Client  (observer and tracer attached when they are in the graph)
//   - Lifecycle hook (RegisterPredictionLifecycle)
//
// It requires a *logger.LoggerClient.
var FXModule = fx.Module(
	"prediction",

	fx.Provide(
		NewConfig, // -> *Config
		newFXClient,
	),

	fx.Invoke(RegisterPredictionLifecycle),
)

type clientParams struct {
	fx.In

	Config   *Config
	Logger   *logger.LoggerClient
	Observer observability.Observer `optional:"true"`
	Tracer   *tracer.Tracer         `optional:"true"`
}

func newFXClient(p clientParams) *Client {
	client := NewClient(p.Config, p.Logger)
	if p.Observer != nil {
		client.WithObserver(p.Observer)
	}
	if p.Tracer != nil {
		client.WithTracer(p.Tracer)
	}
	return client
}

// RegisterPredictionLifecycle closes the client's idle connections on shutdown.
func RegisterPredictionLifecycle(lc fx.Lifecycle, client *Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
}
