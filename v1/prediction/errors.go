package prediction

import (
	"errors"
	"fmt"
)

// ErrPredictionRequestFailed is the only error GetPrediction returns.
// Transport failures, non-2xx responses and undecodable bodies all collapse
// into it; the underlying cause is only written to the log.
var ErrPredictionRequestFailed = errors.New("prediction: error getting prediction from upstream")

// IsPredictionRequestFailed checks if err is a failed prediction request.
func IsPredictionRequestFailed(err error) bool {
	return errors.Is(err, ErrPredictionRequestFailed)
}

// upstreamError is returned internally when the upstream answered with a non-2xx status.
type upstreamError struct {
	StatusCode int
	Body       []byte
}

func (e *upstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.StatusCode)
}
