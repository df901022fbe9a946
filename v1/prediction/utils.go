package prediction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// response describes what came back from the upstream, as far as we got.
type response struct {
	statusCode int
	size       int64
}

// postJSON sends one HTTP POST to the endpoint.
// It marshals body as JSON, attaches the content type, bearer token and any
// trace propagation headers, treats non-2xx as an upstreamError and decodes a
// non-empty response body into out.
func (c *Client) postJSON(ctx context.Context, body any, out any) (response, error) {
	var res response

	data, err := json.Marshal(body)
	if err != nil {
		return res, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(data))
	if err != nil {
		return res, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	if c.tracer != nil {
		for k, v := range c.tracer.GetCarrier(ctx) {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return res, fmt.Errorf("http error: %w", err)
	}
	defer resp.Body.Close()

	res.statusCode = resp.StatusCode

	payload, err := io.ReadAll(resp.Body)
	res.size = int64(len(payload))
	if err != nil {
		return res, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return res, &upstreamError{StatusCode: resp.StatusCode, Body: payload}
	}

	if len(bytes.TrimSpace(payload)) == 0 {
		return res, nil
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return res, fmt.Errorf("decode response: %w", err)
	}

	return res, nil
}
