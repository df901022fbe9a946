package observability

import "time"

// Observer receives a notification for every operation a client performs.
// Implementations must be safe for concurrent use.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}

// OperationContext describes a single completed operation.
type OperationContext struct {
	// Component is the package that performed the operation, e.g. "prediction".
	Component string

	// Operation is the logical operation name, e.g. "get_prediction".
	Operation string

	// Resource is the primary target of the operation (host, key, queue).
	Resource string

	// SubResource carries optional secondary context.
	SubResource string

	// Duration is the wall-clock time the operation took.
	Duration time.Duration

	// Error is nil when the operation succeeded.
	Error error

	// Size is the number of payload bytes received, when known.
	Size int64

	// Metadata holds component specific details.
	Metadata map[string]interface{}
}
