package prediction

import (
	"time"

	"github.com/Aleph-Alpha/prediction/v1/observability"
)

// observeOperation notifies the observer about a finished call if one is configured.
func (c *Client) observeOperation(duration time.Duration, res response, err error) {
	if c == nil || c.observer == nil {
		return
	}

	c.observer.ObserveOperation(observability.OperationContext{
		Component: "prediction",
		Operation: "get_prediction",
		Resource:  c.resource,
		Duration:  duration,
		Error:     err,
		Size:      res.size,
		Metadata: map[string]interface{}{
			"status_code": res.statusCode,
		},
	})
}
