// Package prediction forwards JSON payloads to a remote HTTP prediction
// endpoint and returns the decoded response.
//
// # Usage
//
//	cfg := prediction.NewConfig() // FLASK_URL, FLASK_SECRET_TOKEN
//	client := prediction.NewClient(cfg, log)
//
//	result, err := client.GetPrediction(ctx, map[string]any{"x": 1, "y": 2})
//	if prediction.IsPredictionRequestFailed(err) {
//	    // the cause is in the log, not in err
//	}
//
// Every call performs exactly one POST with
//
//	Authorization: Bearer <FLASK_SECRET_TOKEN>
//	Content-Type: application/json
//
// and the JSON encoding of the input as body. The response body is decoded into
// an `any` and returned unchanged.
//
// # Errors
//
// Connection failures, non-2xx statuses and bodies that are not JSON all
// produce ErrPredictionRequestFailed. The upstream body (or, when there is
// none, the error message) is logged once under the "detail" field; it is not
// part of the returned error. There are no retries and no client-side timeout.
//
// # Observability
//
// WithObserver reports each call as an observability.OperationContext with
// Component "prediction" and Operation "get_prediction". WithTracer wraps each
// call in a "prediction.GetPrediction" span and sends the W3C traceparent
// header upstream.
//
// # FX
//
//	app := fx.New(
//	    logger.FXModule,
//	    tracer.FXModule,
//	    metrics.FXModule,
//	    prediction.FXModule,
//	)
package prediction
