package prediction

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Aleph-Alpha/prediction/v1/logger"
	"github.com/Aleph-Alpha/prediction/v1/observability"
)

const failureMessage = "Error getting prediction from upstream"

// capturedRequest is what the fake upstream saw.
type capturedRequest struct {
	Method        string
	Authorization string
	ContentType   string
	TraceParent   string
	Body          []byte
}

type fakeUpstream struct {
	*httptest.Server
	mu       sync.Mutex
	requests []capturedRequest
	calls    atomic.Int32
}

func newFakeUpstream(t *testing.T, status int, body string) *fakeUpstream {
	t.Helper()
	u := &fakeUpstream{}
	u.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.calls.Add(1)
		b, _ := io.ReadAll(r.Body)
		u.mu.Lock()
		u.requests = append(u.requests, capturedRequest{
			Method:        r.Method,
			Authorization: r.Header.Get("Authorization"),
			ContentType:   r.Header.Get("Content-Type"),
			TraceParent:   r.Header.Get("traceparent"),
			Body:          b,
		})
		u.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(u.Close)
	return u
}

func (u *fakeUpstream) lastRequest(t *testing.T) capturedRequest {
	t.Helper()
	u.mu.Lock()
	defer u.mu.Unlock()
	require.NotEmpty(t, u.requests)
	return u.requests[len(u.requests)-1]
}

// fieldsCapture is a gomock matcher that records the log fields it is matched against.
type fieldsCapture struct {
	got map[string]interface{}
}

func (f *fieldsCapture) Matches(x any) bool {
	m, ok := x.(map[string]interface{})
	if ok {
		f.got = m
	}
	return ok
}

func (f *fieldsCapture) String() string { return "is a log field map" }

func expectFailureLog(mockLogger *MockLogger) *fieldsCapture {
	capture := &fieldsCapture{}
	mockLogger.EXPECT().
		ErrorWithContext(gomock.Any(), failureMessage, gomock.Not(gomock.Nil()), capture).
		Times(1)
	return capture
}

func newTestClient(t *testing.T, endpoint, token string) (*Client, *MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := NewMockLogger(ctrl)
	return NewClient(&Config{Endpoint: endpoint, Token: token}, mockLogger), mockLogger
}

func TestGetPrediction_Success(t *testing.T) {
	upstream := newFakeUpstream(t, http.StatusOK, `{"prediction": 0.87}`)
	client, _ := newTestClient(t, upstream.URL, "secret")

	result, err := client.GetPrediction(context.Background(), map[string]any{"x": 1, "y": 2})

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"prediction": 0.87}, result)
	assert.EqualValues(t, 1, upstream.calls.Load())

	req := upstream.lastRequest(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "Bearer secret", req.Authorization)
	assert.Equal(t, "application/json", req.ContentType)
	assert.JSONEq(t, `{"x": 1, "y": 2}`, string(req.Body))
}

func TestGetPrediction_ReturnsBodyUnchanged(t *testing.T) {
	bodies := []string{
		`{"prediction": 1, "probability": 0.412, "threshold_used": 0.35}`,
		`[1, 2, {"a": null}]`,
		`"plain string"`,
		`{"nested": {"list": [true, false], "n": -3.5}}`,
	}

	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			upstream := newFakeUpstream(t, http.StatusOK, body)
			client, _ := newTestClient(t, upstream.URL, "secret")

			result, err := client.GetPrediction(context.Background(), map[string]any{})
			require.NoError(t, err)

			var want any
			require.NoError(t, json.Unmarshal([]byte(body), &want))
			assert.Equal(t, want, result)
		})
	}
}

func TestGetPrediction_HeadersIndependentOfInput(t *testing.T) {
	inputs := []any{
		map[string]any{},
		map[string]any{"Authorization": "Bearer other", "Content-Type": "text/plain"},
		[]int{1, 2, 3},
		nil,
	}

	upstream := newFakeUpstream(t, http.StatusOK, `{}`)
	client, _ := newTestClient(t, upstream.URL, "tok")

	for _, in := range inputs {
		_, err := client.GetPrediction(context.Background(), in)
		require.NoError(t, err)

		req := upstream.lastRequest(t)
		assert.Equal(t, "Bearer tok", req.Authorization)
		assert.Equal(t, "application/json", req.ContentType)
	}
	assert.EqualValues(t, len(inputs), upstream.calls.Load())
}

func TestGetPrediction_EmptySuccessBody(t *testing.T) {
	upstream := newFakeUpstream(t, http.StatusNoContent, "")
	client, _ := newTestClient(t, upstream.URL, "secret")

	result, err := client.GetPrediction(context.Background(), map[string]any{"x": 1})

	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestGetPrediction_ServerErrorLogsBody(t *testing.T) {
	upstream := newFakeUpstream(t, http.StatusInternalServerError, `{"error":"bad input"}`)
	client, mockLogger := newTestClient(t, upstream.URL, "secret")
	capture := expectFailureLog(mockLogger)

	result, err := client.GetPrediction(context.Background(), map[string]any{"x": 1})

	assert.Nil(t, result)
	require.ErrorIs(t, err, ErrPredictionRequestFailed)
	assert.Equal(t, `{"error":"bad input"}`, capture.got["detail"])
	assert.Equal(t, http.StatusInternalServerError, capture.got["status_code"])
	assert.EqualValues(t, 1, upstream.calls.Load(), "no retries")
}

func TestGetPrediction_UnauthorizedLogsBody(t *testing.T) {
	upstream := newFakeUpstream(t, http.StatusUnauthorized, `{"error":"invalid token"}`)
	client, mockLogger := newTestClient(t, upstream.URL, "wrong")
	capture := expectFailureLog(mockLogger)

	_, err := client.GetPrediction(context.Background(), map[string]any{})

	require.ErrorIs(t, err, ErrPredictionRequestFailed)
	assert.Equal(t, `{"error":"invalid token"}`, capture.got["detail"])
}

func TestGetPrediction_NonJSONBodyLogsParseError(t *testing.T) {
	upstream := newFakeUpstream(t, http.StatusOK, "not json")
	client, mockLogger := newTestClient(t, upstream.URL, "secret")
	capture := expectFailureLog(mockLogger)

	_, err := client.GetPrediction(context.Background(), map[string]any{"x": 1})

	require.ErrorIs(t, err, ErrPredictionRequestFailed)
	assert.Contains(t, capture.got["detail"], "decode response")
	assert.Contains(t, capture.got["detail"], "invalid character")
}

func TestGetPrediction_ConnectionRefusedLogsError(t *testing.T) {
	upstream := newFakeUpstream(t, http.StatusOK, `{}`)
	endpoint := upstream.URL
	upstream.Close()

	client, mockLogger := newTestClient(t, endpoint, "secret")
	capture := expectFailureLog(mockLogger)

	_, err := client.GetPrediction(context.Background(), map[string]any{"x": 1})

	require.ErrorIs(t, err, ErrPredictionRequestFailed)
	assert.Contains(t, capture.got["detail"], "connection refused")
	_, hasStatus := capture.got["status_code"]
	assert.False(t, hasStatus)
}

func TestGetPrediction_ErrorHidesUpstreamDetail(t *testing.T) {
	upstream := newFakeUpstream(t, http.StatusBadGateway, `{"error":"secret internals"}`)
	client, mockLogger := newTestClient(t, upstream.URL, "secret")
	expectFailureLog(mockLogger)

	_, err := client.GetPrediction(context.Background(), map[string]any{})

	assert.Same(t, ErrPredictionRequestFailed, err)
	assert.NotContains(t, err.Error(), "502")
	assert.NotContains(t, err.Error(), "secret internals")
	assert.True(t, IsPredictionRequestFailed(err))
}

func TestGetPrediction_UnencodableInput(t *testing.T) {
	upstream := newFakeUpstream(t, http.StatusOK, `{}`)
	client, mockLogger := newTestClient(t, upstream.URL, "secret")
	capture := expectFailureLog(mockLogger)

	_, err := client.GetPrediction(context.Background(), map[string]any{"f": func() {}})

	require.ErrorIs(t, err, ErrPredictionRequestFailed)
	assert.Contains(t, capture.got["detail"], "encode request")
	assert.EqualValues(t, 0, upstream.calls.Load())
}

func TestGetPrediction_MissingConfigFailsAtCallTime(t *testing.T) {
	client, mockLogger := newTestClient(t, "", "")
	capture := expectFailureLog(mockLogger)

	_, err := client.GetPrediction(context.Background(), map[string]any{})

	require.ErrorIs(t, err, ErrPredictionRequestFailed)
	assert.NotEmpty(t, capture.got["detail"])
}

func TestGetPrediction_ConfigReadOnce(t *testing.T) {
	first := newFakeUpstream(t, http.StatusOK, `{"from": "first"}`)
	second := newFakeUpstream(t, http.StatusOK, `{"from": "second"}`)

	t.Setenv(EnvURL, first.URL)
	t.Setenv(EnvSecretToken, "token-one")
	client := NewClient(NewConfig(), NewMockLogger(gomock.NewController(t)))

	t.Setenv(EnvURL, second.URL)
	t.Setenv(EnvSecretToken, "token-two")

	result, err := client.GetPrediction(context.Background(), map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"from": "first"}, result)
	assert.Equal(t, "Bearer token-one", first.lastRequest(t).Authorization)
	assert.EqualValues(t, 0, second.calls.Load())

	restarted := NewClient(NewConfig(), NewMockLogger(gomock.NewController(t)))
	result, err = restarted.GetPrediction(context.Background(), map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"from": "second"}, result)
	assert.Equal(t, "Bearer token-two", second.lastRequest(t).Authorization)
}

func TestGetPrediction_ConcurrentCallsAreIndependent(t *testing.T) {
	upstream := newFakeUpstream(t, http.StatusOK, `{"ok": true}`)
	client, _ := newTestClient(t, upstream.URL, "secret")

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := client.GetPrediction(context.Background(), map[string]any{"i": i})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.EqualValues(t, n, upstream.calls.Load())
}

func TestGetPrediction_CanceledContext(t *testing.T) {
	upstream := newFakeUpstream(t, http.StatusOK, `{}`)
	client, mockLogger := newTestClient(t, upstream.URL, "secret")
	capture := expectFailureLog(mockLogger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetPrediction(ctx, map[string]any{})

	require.ErrorIs(t, err, ErrPredictionRequestFailed)
	assert.Contains(t, capture.got["detail"], "context canceled")
}

func TestNewClient_NilLoggerFallsBackToZap(t *testing.T) {
	client := NewClient(&Config{Endpoint: "http://localhost", Token: "t"}, nil)

	_, ok := client.logger.(*logger.LoggerClient)
	assert.True(t, ok, "expected a *logger.LoggerClient, got %T", client.logger)
}

func TestGetPrediction_FailureWritesOneZapEntry(t *testing.T) {
	upstream := newFakeUpstream(t, http.StatusInternalServerError, `{"error":"x"}`)
	core, logs := observer.New(zapcore.DebugLevel)
	client := NewClient(&Config{Endpoint: upstream.URL, Token: "t"}, &logger.LoggerClient{Zap: zap.New(core)})

	_, err := client.GetPrediction(context.Background(), map[string]any{})
	require.ErrorIs(t, err, ErrPredictionRequestFailed)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.Equal(t, failureMessage, entry.Message)
	assert.Equal(t, `{"error":"x"}`, entry.ContextMap()["detail"])
}

func TestGetPrediction_EmptyErrorBodyLogsStatus(t *testing.T) {
	upstream := newFakeUpstream(t, http.StatusUnauthorized, "")
	client, mockLogger := newTestClient(t, upstream.URL, "wrong")
	capture := expectFailureLog(mockLogger)

	result, err := client.GetPrediction(context.Background(), map[string]any{})

	assert.Nil(t, result)
	require.ErrorIs(t, err, ErrPredictionRequestFailed)
	assert.Equal(t, "upstream returned status 401", capture.got["detail"])
	assert.Equal(t, http.StatusUnauthorized, capture.got["status_code"])
}

func TestGetPrediction_LargeIntegersDecodeAsFloat64(t *testing.T) {
	upstream := newFakeUpstream(t, http.StatusOK, `{"id": 9007199254740993}`)
	client, _ := newTestClient(t, upstream.URL, "secret")

	result, err := client.GetPrediction(context.Background(), map[string]any{})
	require.NoError(t, err)

	id, ok := result.(map[string]any)["id"].(float64)
	require.True(t, ok)
	assert.Equal(t, float64(9007199254740992), id)
}

// recordingObserver collects observed operations.
type recordingObserver struct {
	mu  sync.Mutex
	ops []observability.OperationContext
}

func (r *recordingObserver) ObserveOperation(op observability.OperationContext) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, op)
}

func TestGetPrediction_ReportsToObserver(t *testing.T) {
	upstream := newFakeUpstream(t, http.StatusOK, `{"prediction": 1}`)
	obs := &recordingObserver{}
	client, _ := newTestClient(t, upstream.URL, "secret")
	require.Same(t, client, client.WithObserver(obs))

	_, err := client.GetPrediction(context.Background(), map[string]any{})
	require.NoError(t, err)

	require.Len(t, obs.ops, 1)
	op := obs.ops[0]
	assert.Equal(t, "prediction", op.Component)
	assert.Equal(t, "get_prediction", op.Operation)
	assert.Equal(t, upstream.Listener.Addr().String(), op.Resource)
	assert.NoError(t, op.Error)
	assert.EqualValues(t, len(`{"prediction": 1}`), op.Size)
	assert.Equal(t, http.StatusOK, op.Metadata["status_code"])
}

func TestGetPrediction_ObserverSeesFailure(t *testing.T) {
	upstream := newFakeUpstream(t, http.StatusInternalServerError, `{"error":"bad input"}`)
	obs := &recordingObserver{}
	client, mockLogger := newTestClient(t, upstream.URL, "secret")
	client.WithObserver(obs)
	expectFailureLog(mockLogger)

	_, _ = client.GetPrediction(context.Background(), map[string]any{})

	require.Len(t, obs.ops, 1)
	assert.Error(t, obs.ops[0].Error)
	assert.Equal(t, http.StatusInternalServerError, obs.ops[0].Metadata["status_code"])
}

func TestWithHTTPClient(t *testing.T) {
	client := NewClient(&Config{}, nil)
	custom := &http.Client{}

	assert.Same(t, client, client.WithHTTPClient(custom))
	assert.Same(t, custom, client.httpClient)

	client.WithHTTPClient(nil)
	assert.Same(t, custom, client.httpClient)
}

func TestResourceName(t *testing.T) {
	assert.Equal(t, "ml.example.com:5000", resourceName("https://ml.example.com:5000/predict"))
	assert.Equal(t, "", resourceName(""))
	assert.Equal(t, "not a url", resourceName("not a url"))
}
