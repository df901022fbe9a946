package metrics

import "github.com/Aleph-Alpha/prediction/v1/observability"

const (
	statusSuccess = "success"
	statusError   = "error"
)

// ObserveOperation implements observability.Observer.
// Each call increments operations_total and records the duration; the payload
// size is only recorded for operations that reported one.
func (m *Metrics) ObserveOperation(op observability.OperationContext) {
	if m == nil {
		return
	}

	status := statusSuccess
	if op.Error != nil {
		status = statusError
	}

	m.operationsTotal.WithLabelValues(op.Component, op.Operation, status).Inc()
	m.operationDuration.WithLabelValues(op.Component, op.Operation).Observe(op.Duration.Seconds())
	if op.Size > 0 {
		m.operationBytes.WithLabelValues(op.Component, op.Operation).Observe(float64(op.Size))
	}
}
