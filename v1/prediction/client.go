package prediction

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/Aleph-Alpha/prediction/v1/logger"
	"github.com/Aleph-Alpha/prediction/v1/observability"
)

const spanName = "prediction.GetPrediction"

// Tracer is the subset of *tracer.Tracer used to trace upstream calls.
type Tracer interface {
	StartSpan(ctx context.Context, name string) (context.Context, trace.Span)
	RecordErrorOnSpan(span trace.Span, err error)
	SetAttributes(span trace.Span, attrs map[string]interface{})
	GetCarrier(ctx context.Context) map[string]string
}

// Client forwards JSON payloads to the upstream prediction endpoint.
//
// The endpoint and token are copied from Config at construction and never
// change afterwards, so a Client is safe for concurrent use.
type Client struct {
	endpoint   string
	token      string
	resource   string
	httpClient *http.Client
	logger     Logger
	observer   observability.Observer
	tracer     Tracer
}

// NewClient constructs a Client from cfg.
//
// No timeout is configured on the default HTTP client; a call is bounded only
// by ctx and the transport defaults. A nil log falls back to a stderr zap
// logger so failures are never silent.
func NewClient(cfg *Config, log Logger) *Client {
	if log == nil {
		log = logger.NewLoggerClient(logger.NewConfig())
	}
	c := &Client{
		httpClient: &http.Client{},
		logger:     log,
	}
	if cfg != nil {
		c.endpoint = cfg.Endpoint
		c.token = cfg.Token
	}
	c.resource = resourceName(c.endpoint)
	return c
}

// WithObserver sets the observer for this client and returns the client for method chaining.
// The observer receives one event per GetPrediction call.
func (c *Client) WithObserver(observer observability.Observer) *Client {
	c.observer = observer
	return c
}

// WithTracer makes every call run inside its own span and propagate the
// trace context to the upstream.
func (c *Client) WithTracer(tracer Tracer) *Client {
	c.tracer = tracer
	return c
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	if httpClient != nil {
		c.httpClient = httpClient
	}
	return c
}

// GetPrediction POSTs input as JSON to the configured endpoint and returns the
// decoded response body.
//
// Exactly one request is made. On any failure a single diagnostic is logged,
// carrying the upstream response body when there is one and the error message
// otherwise, and ErrPredictionRequestFailed is returned.
//
// A 2xx response with an empty body yields (nil, nil). JSON numbers are
// decoded as float64, so integers beyond 2^53 lose precision.
func (c *Client) GetPrediction(ctx context.Context, input any) (any, error) {
	start := time.Now()

	var span trace.Span
	if c.tracer != nil {
		ctx, span = c.tracer.StartSpan(ctx, spanName)
		defer span.End()
	}

	var out any
	res, err := c.postJSON(ctx, input, &out)

	c.observeOperation(time.Since(start), res, err)
	if span != nil {
		attrs := map[string]interface{}{
			"http.method":    http.MethodPost,
			"server.address": c.resource,
		}
		if res.statusCode != 0 {
			attrs["http.status_code"] = res.statusCode
		}
		c.tracer.SetAttributes(span, attrs)
	}

	if err != nil {
		if span != nil {
			c.tracer.RecordErrorOnSpan(span, err)
		}
		c.logFailure(ctx, res, err)
		return nil, ErrPredictionRequestFailed
	}

	return out, nil
}

// Close releases idle connections held by the HTTP client.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func (c *Client) logFailure(ctx context.Context, res response, err error) {
	detail := err.Error()
	var upstream *upstreamError
	if errors.As(err, &upstream) {
		if body := strings.TrimSpace(string(upstream.Body)); body != "" {
			detail = body
		}
	}

	fields := map[string]interface{}{
		"endpoint": c.endpoint,
		"detail":   detail,
	}
	if res.statusCode != 0 {
		fields["status_code"] = res.statusCode
	}

	c.logger.ErrorWithContext(ctx, "Error getting prediction from upstream", err, fields)
}

// resourceName returns the host of endpoint, or endpoint itself when it does not parse.
func resourceName(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return endpoint
	}
	return u.Host
}
