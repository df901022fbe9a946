// Package observability defines the hook contract that clients in this module
// use to report completed operations to metrics and tracing backends.
//
// A client exposes WithObserver and calls ObserveOperation once per operation:
//
//	client := prediction.NewClient(cfg, log).WithObserver(metricsInstance)
//
// The metrics package provides a Prometheus-backed implementation.
package observability
