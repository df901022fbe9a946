package tracer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

type nopLogger struct{}

func (nopLogger) Info(string, error, ...map[string]interface{}) {}
func (nopLogger) Warn(string, error, ...map[string]interface{}) {}

func newRecordingTracer() (*Tracer, *tracetest.SpanRecorder) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	return &Tracer{tracer: tp, logger: nopLogger{}}, recorder
}

func TestStartSpanAndRecordError(t *testing.T) {
	tr, recorder := newRecordingTracer()

	_, span := tr.StartSpan(context.Background(), "op")
	tr.RecordErrorOnSpan(span, errors.New("boom"))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "op", ended[0].Name())
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "boom", ended[0].Status().Description)
	require.Len(t, ended[0].Events(), 1)
}

func TestSetAttributesConvertsTypes(t *testing.T) {
	tr, recorder := newRecordingTracer()

	_, span := tr.StartSpan(context.Background(), "attrs")
	tr.SetAttributes(span, map[string]interface{}{
		"s": "v",
		"i": 3,
		"f": 0.5,
		"b": true,
		"o": []int{1},
	})
	span.End()

	got := map[attribute.Key]attribute.Value{}
	for _, kv := range recorder.Ended()[0].Attributes() {
		got[kv.Key] = kv.Value
	}
	assert.Equal(t, "v", got["s"].AsString())
	assert.Equal(t, int64(3), got["i"].AsInt64())
	assert.Equal(t, 0.5, got["f"].AsFloat64())
	assert.True(t, got["b"].AsBool())
	assert.Equal(t, "[1]", got["o"].AsString())
}

func TestCarrierRoundTrip(t *testing.T) {
	tr, _ := newRecordingTracer()

	ctx, span := tr.StartSpan(context.Background(), "parent")
	defer span.End()

	carrier := tr.GetCarrier(ctx)
	require.Contains(t, carrier, "traceparent")

	remote := trace.SpanContextFromContext(tr.SetCarrierOnContext(context.Background(), carrier))
	assert.Equal(t, span.SpanContext().TraceID(), remote.TraceID())
	assert.True(t, remote.IsRemote())
}

func TestNewClientWithoutExport(t *testing.T) {
	tr, err := NewClient(Config{ServiceName: "test", AppEnv: "test"}, nopLogger{})
	require.NoError(t, err)
	require.NoError(t, tr.Shutdown(context.Background()))
}

func TestShutdownNilProvider(t *testing.T) {
	tr := &Tracer{logger: nopLogger{}}
	assert.NoError(t, tr.Shutdown(context.Background()))
}
